// Package efitest provides an in-memory Firmware implementation backed by
// byte slices, used by tests and by the CLI's simulated backend.
package efitest

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ostafen/efidisk/internal/efi"
)

// Device is one simulated firmware handle. Data backs the byte-addressed
// transport; reads and writes outside it fail like a dead medium would.
type Device struct {
	Path  efi.DevicePath
	Media efi.Media
	Data  []byte

	// Absence switches: a device may legitimately lack a path or one of
	// the two capabilities, and discovery must skip it silently.
	NoPath    bool
	NoBlockIO bool
	NoDiskIO  bool

	ReadErr  error
	WriteErr error
}

// Firmware implements efi.Firmware over a fixed set of devices.
type Firmware struct {
	order []efi.Handle
	devs  map[efi.Handle]*Device

	// LocateErr, when set, fails every enumeration. Models a firmware
	// whose handle database cannot be walked.
	LocateErr error

	next efi.Handle
}

func New(devices ...*Device) *Firmware {
	fw := &Firmware{devs: make(map[efi.Handle]*Device)}
	for _, d := range devices {
		fw.Add(d)
	}
	return fw
}

// Add registers a device and returns its handle.
func (f *Firmware) Add(d *Device) efi.Handle {
	f.next++
	h := f.next
	f.order = append(f.order, h)
	f.devs[h] = d
	return h
}

func (f *Firmware) LocateHandles(protocol uuid.UUID) ([]efi.Handle, error) {
	if f.LocateErr != nil {
		return nil, f.LocateErr
	}
	var out []efi.Handle
	for _, h := range f.order {
		d := f.devs[h]
		switch protocol {
		case efi.DiskIOProtocol:
			if !d.NoDiskIO {
				out = append(out, h)
			}
		case efi.BlockIOProtocol:
			if !d.NoBlockIO {
				out = append(out, h)
			}
		}
	}
	return out, nil
}

func (f *Firmware) DevicePath(h efi.Handle) (efi.DevicePath, bool) {
	d, ok := f.devs[h]
	if !ok || d.NoPath {
		return nil, false
	}
	return efi.Dup(d.Path), true
}

func (f *Firmware) OpenBlockIO(h efi.Handle) (efi.BlockIO, bool) {
	d, ok := f.devs[h]
	if !ok || d.NoBlockIO {
		return nil, false
	}
	return blockIO{d}, true
}

func (f *Firmware) OpenDiskIO(h efi.Handle) (efi.DiskIO, bool) {
	d, ok := f.devs[h]
	if !ok || d.NoDiskIO {
		return nil, false
	}
	return diskIO{d}, true
}

type blockIO struct{ d *Device }

func (b blockIO) Media() efi.Media { return b.d.Media }

type diskIO struct{ d *Device }

func (io diskIO) ReadDisk(mediaID uint32, off uint64, buf []byte) error {
	if io.d.ReadErr != nil {
		return io.d.ReadErr
	}
	if mediaID != io.d.Media.ID {
		return fmt.Errorf("%w: stale media id %d", efi.ErrTransport, mediaID)
	}
	if off+uint64(len(buf)) > uint64(len(io.d.Data)) {
		return fmt.Errorf("%w: read past end of medium", efi.ErrTransport)
	}
	copy(buf, io.d.Data[off:])
	return nil
}

func (io diskIO) WriteDisk(mediaID uint32, off uint64, buf []byte) error {
	if io.d.WriteErr != nil {
		return io.d.WriteErr
	}
	if io.d.Media.ReadOnly {
		return fmt.Errorf("%w: medium is read-only", efi.ErrTransport)
	}
	if mediaID != io.d.Media.ID {
		return fmt.Errorf("%w: stale media id %d", efi.ErrTransport, mediaID)
	}
	if off+uint64(len(buf)) > uint64(len(io.d.Data)) {
		return fmt.Errorf("%w: write past end of medium", efi.ErrTransport)
	}
	copy(io.d.Data[off:], buf)
	return nil
}
