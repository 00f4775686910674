package disk_test

import (
	"errors"
	"testing"

	"github.com/ostafen/efidisk/internal/disk"
	"github.com/ostafen/efidisk/internal/efi"
	"github.com/ostafen/efidisk/internal/efi/efitest"
	"github.com/stretchr/testify/require"
)

func floppyDev(uid uint32) *efitest.Device {
	return &efitest.Device{
		Path:  efitest.FloppyPath(uid),
		Media: efi.Media{ID: 100 + uid, BlockSize: 512, LastBlock: 2879, Removable: true},
		Data:  make([]byte, 2880*512),
	}
}

func diskDev(port uint16, sectors uint64) *efitest.Device {
	return &efitest.Device{
		Path:  efitest.DiskPath(port),
		Media: efi.Media{ID: 200 + uint32(port), BlockSize: 512, LastBlock: sectors - 1},
		Data:  make([]byte, sectors*512),
	}
}

func cdromDev(port uint16) *efitest.Device {
	return &efitest.Device{
		Path:  efitest.CDROMPath(port),
		Media: efi.Media{ID: 300 + uint32(port), BlockSize: 2048, LastBlock: 1023, ReadOnly: true, Removable: true},
		Data:  make([]byte, 1024*2048),
	}
}

func TestDiscoverClassification(t *testing.T) {
	fw := efitest.New(
		cdromDev(2),
		diskDev(0, 8192),
		floppyDev(0),
		// Partition children terminate in a media node and are not
		// catalogued as drives of their own.
		&efitest.Device{
			Path: efitest.PartitionPath(0, efi.HardDriveNode{
				PartitionNumber: 1, PartitionStart: 2048, PartitionSize: 4096,
			}),
			Media: efi.Media{ID: 9, BlockSize: 512, LastBlock: 4095},
			Data:  make([]byte, 4096*512),
		},
		// Handles missing a path or a capability are skipped.
		&efitest.Device{Path: efitest.DiskPath(7), NoPath: true},
		&efitest.Device{Path: efitest.DiskPath(8), NoBlockIO: true},
		// A bare terminator describes no device.
		&efitest.Device{Path: efi.Finish(nil), Media: efi.Media{ID: 10, BlockSize: 512}},
	)

	s, err := disk.Discover(fw, nil)
	require.NoError(t, err)

	require.Len(t, s.Floppies(), 1)
	require.Len(t, s.HardDisks(), 1)
	require.Len(t, s.CDROMs(), 1)

	require.Zero(t, efi.Compare(s.Floppies()[0].Path, efitest.FloppyPath(0)))
	require.Zero(t, efi.Compare(s.HardDisks()[0].Path, efitest.DiskPath(0)))
	require.Zero(t, efi.Compare(s.CDROMs()[0].Path, efitest.CDROMPath(2)))
}

func TestDiscoverEmptyFirmware(t *testing.T) {
	s, err := disk.Discover(efitest.New(), nil)
	require.NoError(t, err)
	require.Empty(t, s.Floppies())
	require.Empty(t, s.HardDisks())
	require.Empty(t, s.CDROMs())
	require.Nil(t, s.DeviceForDrive(0))
	require.Nil(t, s.DeviceForDrive(disk.HardDiskDrive(0)))
	require.Nil(t, s.DeviceForDrive(disk.CDROMDrive))
}

func TestDiscoverEnumerationFailure(t *testing.T) {
	fw := efitest.New(diskDev(0, 8192))
	fw.LocateErr = errors.New("handle database unavailable")

	s, err := disk.Discover(fw, nil)
	require.Error(t, err)
	require.Nil(t, s)
}

func TestCatalogOrderAndDedup(t *testing.T) {
	// Registration order must not leak into drive numbering, and a path
	// seen twice yields a single catalog entry.
	fw := efitest.New(
		diskDev(2, 8192),
		diskDev(0, 8192),
		diskDev(1, 8192),
		diskDev(1, 8192),
	)

	s, err := disk.Discover(fw, nil)
	require.NoError(t, err)
	require.Len(t, s.HardDisks(), 3)

	for i := uint16(0); i < 3; i++ {
		d := s.DeviceForDrive(disk.HardDiskDrive(uint32(i)))
		require.NotNil(t, d)
		require.Zero(t, efi.Compare(d.Path, efitest.DiskPath(i)))
	}
}

func TestDeviceForDrive(t *testing.T) {
	fw := efitest.New(floppyDev(0), diskDev(0, 8192), cdromDev(1))

	s, err := disk.Discover(fw, nil)
	require.NoError(t, err)

	require.NotNil(t, s.DeviceForDrive(0))
	require.NotNil(t, s.DeviceForDrive(disk.HardDiskDrive(0)))
	require.NotNil(t, s.DeviceForDrive(disk.CDROMDrive))

	require.Nil(t, s.DeviceForDrive(1))
	require.Nil(t, s.DeviceForDrive(disk.HardDiskDrive(1)))
	require.Nil(t, s.DeviceForDrive(disk.InvalidDrive))
	require.Nil(t, s.DeviceForDrive(disk.NetworkDrive))
}
