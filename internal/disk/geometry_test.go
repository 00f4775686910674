package disk_test

import (
	"testing"

	"github.com/ostafen/efidisk/internal/disk"
	"github.com/ostafen/efidisk/internal/efi"
	"github.com/ostafen/efidisk/internal/efi/efitest"
	"github.com/stretchr/testify/require"
)

func TestGeometry(t *testing.T) {
	fw := efitest.New(
		floppyDev(0),
		// Large enough that a single head would overflow the cylinder
		// count.
		&efitest.Device{
			Path:  efitest.DiskPath(0),
			Media: efi.Media{ID: 1, BlockSize: 512, LastBlock: 2_000_000 - 1},
		},
	)
	s, err := disk.Discover(fw, nil)
	require.NoError(t, err)

	g, ok := s.Geometry(disk.HardDiskDrive(0))
	require.True(t, ok)
	require.Equal(t, uint64(2_000_000), g.TotalSectors)
	require.Equal(t, uint32(63), g.Sectors)
	require.Equal(t, uint32(255), g.Heads)
	require.Equal(t, uint64(124), g.Cylinders)
	require.Equal(t, uint32(512), g.SectorSize)
	require.True(t, g.LBA)

	// Small media keeps a single head.
	g, ok = s.Geometry(0)
	require.True(t, ok)
	require.Equal(t, uint64(2880), g.TotalSectors)
	require.Equal(t, uint32(1), g.Heads)
	require.Equal(t, uint64(45), g.Cylinders)

	_, ok = s.Geometry(disk.HardDiskDrive(5))
	require.False(t, ok)
}
