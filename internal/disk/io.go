package disk

import (
	"fmt"

	"github.com/ostafen/efidisk/internal/efi"
)

// Op selects the direction of a BIOSDisk call.
type Op int

const (
	OpRead Op = iota
	OpWrite
)

// ReadSectors reads count sectors starting at sector into buf through the
// byte-addressed disk capability. buf must hold count*blockSize bytes.
func (s *Store) ReadSectors(drive Drive, sector, count uint64, buf []byte) error {
	d := s.DeviceForDrive(drive)
	if d == nil {
		return fmt.Errorf("drive 0x%x: %w", drive, efi.ErrNotFound)
	}
	m := d.Media()
	size := count * uint64(m.BlockSize)
	if uint64(len(buf)) < size {
		return fmt.Errorf("drive 0x%x: buffer too small for %d sector(s)", drive, count)
	}
	if err := d.dio.ReadDisk(m.ID, sector*uint64(m.BlockSize), buf[:size]); err != nil {
		return fmt.Errorf("drive 0x%x: %w", drive, err)
	}
	return nil
}

// WriteSectors writes count sectors starting at sector from buf.
func (s *Store) WriteSectors(drive Drive, sector, count uint64, buf []byte) error {
	d := s.DeviceForDrive(drive)
	if d == nil {
		return fmt.Errorf("drive 0x%x: %w", drive, efi.ErrNotFound)
	}
	m := d.Media()
	size := count * uint64(m.BlockSize)
	if uint64(len(buf)) < size {
		return fmt.Errorf("drive 0x%x: buffer too small for %d sector(s)", drive, count)
	}
	if err := d.dio.WriteDisk(m.ID, sector*uint64(m.BlockSize), buf[:size]); err != nil {
		return fmt.Errorf("drive 0x%x: %w", drive, err)
	}
	return nil
}

// BIOSDisk is the legacy entry point with an operation selector.
func (s *Store) BIOSDisk(op Op, drive Drive, sector, count uint64, buf []byte) error {
	switch op {
	case OpRead:
		return s.ReadSectors(drive, sector, count, buf)
	case OpWrite:
		return s.WriteSectors(drive, sector, count, buf)
	default:
		return fmt.Errorf("unknown disk operation %d", op)
	}
}
