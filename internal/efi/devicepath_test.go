package efi_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ostafen/efidisk/internal/efi"
	"github.com/stretchr/testify/require"
)

func diskPath() efi.DevicePath {
	p := efi.AppendACPI(nil, 0x0A0341D0, 0)
	p = efi.AppendSATA(p, 0, 0xFFFF, 0)
	return efi.Finish(p)
}

func partitionPath(num uint32, start, size uint64) efi.DevicePath {
	p := efi.AppendACPI(nil, 0x0A0341D0, 0)
	p = efi.AppendSATA(p, 0, 0xFFFF, 0)
	p = efi.AppendHardDrive(p, efi.HardDriveNode{
		PartitionNumber: num,
		PartitionStart:  start,
		PartitionSize:   size,
		PartitionFormat: efi.PartitionFormatMBR,
	})
	return efi.Finish(p)
}

func TestDup(t *testing.T) {
	p := diskPath()

	q := efi.Dup(p)
	require.NotNil(t, q)
	require.Equal(t, []byte(p), []byte(q))
	require.Zero(t, efi.Compare(p, q))

	// The copy must not share backing storage.
	q[0] = 0x55
	require.NotEqual(t, byte(0x55), p[0])
}

func TestDupTrimsTrailingBytes(t *testing.T) {
	p := append(diskPath(), 0xAB, 0xCD)

	q := efi.Dup(p)
	require.NotNil(t, q)
	require.Len(t, q, len(p)-2)
	require.Zero(t, efi.Compare(p, q))
}

func TestDupMalformed(t *testing.T) {
	// Declared node length larger than the buffer.
	require.Nil(t, efi.Dup(efi.DevicePath{0x02, 0x01, 0xFF, 0x00}))
	// No terminator.
	require.Nil(t, efi.Dup(efi.AppendACPI(nil, 0x0A0341D0, 0)))
	require.Nil(t, efi.Dup(nil))
}

func TestFindLast(t *testing.T) {
	p := diskPath()

	off, ok := efi.FindLast(p)
	require.True(t, ok)

	n, ok := p.NodeAt(off)
	require.True(t, ok)
	require.Equal(t, efi.MessagingPath, n.Type)
	require.Equal(t, efi.SATASubType, n.SubType)
}

func TestFindLastDegenerate(t *testing.T) {
	_, ok := efi.FindLast(efi.Finish(nil))
	require.False(t, ok)

	_, ok = efi.FindLast(nil)
	require.False(t, ok)
}

func TestCompareIgnoresBufferIdentity(t *testing.T) {
	a := partitionPath(1, 2048, 10240)
	b := partitionPath(1, 2048, 10240)
	require.Zero(t, efi.Compare(a, b))
}

func TestCompareOrdersByNodeFields(t *testing.T) {
	acpi := efi.Finish(efi.AppendACPI(nil, 0x0A0341D0, 0))
	sata := efi.Finish(efi.AppendSATA(nil, 0, 0xFFFF, 0))

	// Higher node types sort earlier.
	require.Positive(t, efi.Compare(acpi, sata))
	require.Negative(t, efi.Compare(sata, acpi))

	a := partitionPath(1, 2048, 10240)
	b := partitionPath(1, 4096, 10240)
	require.NotZero(t, efi.Compare(a, b))
	require.Equal(t, -efi.Compare(b, a), efi.Compare(a, b))
}

func TestComparePrefix(t *testing.T) {
	parent := diskPath()
	child := partitionPath(1, 2048, 10240)

	require.NotZero(t, efi.Compare(parent, child))
	require.NotZero(t, efi.Compare(child, parent))
	require.Equal(t, -efi.Compare(child, parent), efi.Compare(parent, child))
}

func TestCompareMalformed(t *testing.T) {
	p := diskPath()
	bad := efi.DevicePath{0x02, 0x01, 0xFF, 0x00}

	require.Equal(t, 1, efi.Compare(nil, p))
	require.Equal(t, 1, efi.Compare(p, nil))
	require.Equal(t, 1, efi.Compare(bad, p))
	require.Equal(t, 1, efi.Compare(p, bad))
}

func TestSetEndTruncatesToParent(t *testing.T) {
	child := partitionPath(1, 2048, 10240)

	trimmed := efi.Dup(child)
	off, ok := efi.FindLast(trimmed)
	require.True(t, ok)
	efi.SetEnd(trimmed, off)

	require.Zero(t, efi.Compare(trimmed, diskPath()))
	// The original child path is untouched.
	require.Zero(t, efi.Compare(child, partitionPath(1, 2048, 10240)))
}

func TestHardDriveRoundTrip(t *testing.T) {
	want := efi.HardDriveNode{
		PartitionNumber: 3,
		PartitionStart:  2048,
		PartitionSize:   1 << 21,
		PartitionFormat: efi.PartitionFormatGPT,
		SignatureType:   efi.SignatureTypeGUID,
	}
	copy(want.Signature[:], []byte{0x33, 0x22, 0x11, 0x00, 0x55, 0x44, 0x77, 0x66, 0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF})

	p := efi.Finish(efi.AppendHardDrive(nil, want))

	got, ok := efi.ParseHardDrive(p, 0)
	require.True(t, ok)
	require.Equal(t, want, got)

	_, ok = efi.ParseHardDrive(diskPath(), 0)
	require.False(t, ok)
}

func TestGUIDByteOrder(t *testing.T) {
	onDisk := []byte{0x33, 0x22, 0x11, 0x00, 0x55, 0x44, 0x77, 0x66, 0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}

	g := efi.GUIDFromBytes(onDisk)
	require.Equal(t, uuid.MustParse("00112233-4455-6677-8899-aabbccddeeff"), g)

	b := efi.GUIDBytes(g)
	require.Equal(t, onDisk, b[:])
}

func TestString(t *testing.T) {
	require.Equal(t, `\Acpi(0x0A0341D0,0x0)\Sata(0x0,0x0)`, diskPath().String())
	require.Equal(t, `\Acpi(0x0A0341D0,0x0)\Sata(0x0,0x0)\HD(1,2048,10240)`, partitionPath(1, 2048, 10240).String())
}
