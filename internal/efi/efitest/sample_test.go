package efitest_test

import (
	"testing"

	"github.com/ostafen/efidisk/internal/disk"
	"github.com/ostafen/efidisk/internal/efi/efitest"
	"github.com/stretchr/testify/require"
)

func TestSampleSystem(t *testing.T) {
	fw := efitest.SampleSystem()

	s, err := disk.Discover(fw, nil)
	require.NoError(t, err)

	require.Len(t, s.Floppies(), 1)
	require.Len(t, s.HardDisks(), 1)
	require.Len(t, s.CDROMs(), 1)

	// The simulated disk carries one partition that resolves both ways.
	h, ok := s.HandleForPartition(fw, disk.HardDiskDrive(0), 0)
	require.True(t, ok)

	drive, part, ok := s.DriveForHandle(fw, h)
	require.True(t, ok)
	require.Equal(t, disk.HardDiskDrive(0), drive)
	require.Equal(t, uint32(0), part)
}
