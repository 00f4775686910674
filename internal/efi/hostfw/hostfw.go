// Package hostfw exposes the host machine's block devices through the
// firmware enumeration interface, so the discovery and resolution layer can
// be exercised against real hardware instead of boot-time firmware. The
// adapter is read-only: write calls fail like a write-protected medium.
package hostfw

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ostafen/efidisk/internal/efi"
	"github.com/ostafen/efidisk/internal/fs"
)

// Options controls host enumeration.
type Options struct {
	// All includes loop and ram pseudo-devices, normally skipped.
	All bool
}

// EISA-compressed ACPI hardware ids for synthesized paths.
const (
	hidPCIRoot uint32 = 0x0A0341D0 // PNP0A03
	hidFloppy  uint32 = 0x060441D0 // PNP0604
)

type hostDevice struct {
	name  string
	path  efi.DevicePath
	media efi.Media
	file  fs.File
}

// Firmware implements efi.Firmware over the host's devices.
type Firmware struct {
	order []efi.Handle
	devs  map[efi.Handle]*hostDevice
	next  efi.Handle
}

func newFirmware() *Firmware {
	return &Firmware{devs: make(map[efi.Handle]*hostDevice)}
}

func (f *Firmware) add(d *hostDevice) efi.Handle {
	f.next++
	h := f.next
	f.order = append(f.order, h)
	f.devs[h] = d
	return h
}

// Close releases every opened device.
func (f *Firmware) Close() error {
	var first error
	for _, d := range f.devs {
		if err := d.file.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f *Firmware) LocateHandles(protocol uuid.UUID) ([]efi.Handle, error) {
	if protocol != efi.DiskIOProtocol && protocol != efi.BlockIOProtocol {
		return nil, nil
	}
	// Every host device carries both capabilities.
	out := make([]efi.Handle, len(f.order))
	copy(out, f.order)
	return out, nil
}

func (f *Firmware) DevicePath(h efi.Handle) (efi.DevicePath, bool) {
	d, ok := f.devs[h]
	if !ok {
		return nil, false
	}
	return efi.Dup(d.path), true
}

func (f *Firmware) OpenBlockIO(h efi.Handle) (efi.BlockIO, bool) {
	d, ok := f.devs[h]
	if !ok {
		return nil, false
	}
	return hostBlockIO{d}, true
}

func (f *Firmware) OpenDiskIO(h efi.Handle) (efi.DiskIO, bool) {
	d, ok := f.devs[h]
	if !ok {
		return nil, false
	}
	return hostDiskIO{d}, true
}

type hostBlockIO struct{ d *hostDevice }

func (b hostBlockIO) Media() efi.Media { return b.d.media }

type hostDiskIO struct{ d *hostDevice }

func (io hostDiskIO) ReadDisk(mediaID uint32, off uint64, buf []byte) error {
	if mediaID != io.d.media.ID {
		return fmt.Errorf("%w: stale media id %d", efi.ErrTransport, mediaID)
	}
	if _, err := io.d.file.ReadAt(buf, int64(off)); err != nil {
		return fmt.Errorf("%w: %s: %v", efi.ErrTransport, io.d.name, err)
	}
	return nil
}

func (io hostDiskIO) WriteDisk(mediaID uint32, off uint64, buf []byte) error {
	return fmt.Errorf("%w: host devices are opened read-only", efi.ErrUnsupported)
}
