package disk_test

import (
	"bytes"
	"testing"

	"github.com/ostafen/efidisk/internal/disk"
	"github.com/ostafen/efidisk/internal/efi"
	"github.com/ostafen/efidisk/internal/efi/efitest"
	"github.com/stretchr/testify/require"
)

func TestReadWriteSectors(t *testing.T) {
	fw := efitest.New(diskDev(0, 8192))
	s, err := disk.Discover(fw, nil)
	require.NoError(t, err)

	drive := disk.HardDiskDrive(0)

	out := bytes.Repeat([]byte{0xA5}, 2*512)
	require.NoError(t, s.WriteSectors(drive, 10, 2, out))

	in := make([]byte, 2*512)
	require.NoError(t, s.ReadSectors(drive, 10, 2, in))
	require.Equal(t, out, in)

	// Neighboring sectors stay zero.
	require.NoError(t, s.ReadSectors(drive, 12, 1, in[:512]))
	require.Equal(t, make([]byte, 512), in[:512])
}

func TestReadSectorsErrors(t *testing.T) {
	fw := efitest.New(diskDev(0, 8192), cdromDev(1))
	s, err := disk.Discover(fw, nil)
	require.NoError(t, err)

	drive := disk.HardDiskDrive(0)
	buf := make([]byte, 512)

	require.ErrorIs(t, s.ReadSectors(disk.HardDiskDrive(3), 0, 1, buf), efi.ErrNotFound)
	require.Error(t, s.ReadSectors(drive, 0, 2, buf))
	require.Error(t, s.ReadSectors(drive, 8192, 1, buf))

	require.Error(t, s.WriteSectors(disk.CDROMDrive, 0, 1, make([]byte, 2048)))
}

func TestBIOSDisk(t *testing.T) {
	fw := efitest.New(diskDev(0, 8192))
	s, err := disk.Discover(fw, nil)
	require.NoError(t, err)

	drive := disk.HardDiskDrive(0)

	out := bytes.Repeat([]byte{0x5A}, 512)
	require.NoError(t, s.BIOSDisk(disk.OpWrite, drive, 4, 1, out))

	in := make([]byte, 512)
	require.NoError(t, s.BIOSDisk(disk.OpRead, drive, 4, 1, in))
	require.Equal(t, out, in)

	require.Error(t, s.BIOSDisk(disk.Op(42), drive, 0, 1, in))
}
