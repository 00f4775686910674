package disk

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/uuid"
	"github.com/ostafen/efidisk/internal/efi"
	"github.com/ostafen/efidisk/internal/efi/efitest"
	"github.com/stretchr/testify/require"
)

// writeSlot fills one 16-byte partition record in the sector starting at the
// given byte offset and stamps the boot signature.
func writeSlot(img []byte, sectorOff uint64, slot int, typ uint8, start, size uint32) {
	off := sectorOff + mbrEntriesOffset + uint64(slot)*16
	img[off+4] = typ
	binary.LittleEndian.PutUint32(img[off+8:], start)
	binary.LittleEndian.PutUint32(img[off+12:], size)
	img[sectorOff+510] = 0x55
	img[sectorOff+511] = 0xAA
}

func storeFor(t *testing.T, img []byte) *Store {
	t.Helper()
	fw := efitest.New(&efitest.Device{
		Path:  efitest.DiskPath(0),
		Media: efi.Media{ID: 1, BlockSize: 512, LastBlock: uint64(len(img)/512 - 1)},
		Data:  img,
	})
	s, err := Discover(fw, nil)
	require.NoError(t, err)
	return s
}

func walk(t *testing.T, s *Store, drive Drive) []PartitionEntry {
	t.Helper()
	var (
		out []PartitionEntry
		cur PartitionCursor
	)
	for {
		e, ok := s.pt.Next(drive, &cur)
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

func TestWalkMBRPrimaries(t *testing.T) {
	img := make([]byte, 512)
	writeSlot(img, 0, 0, 0x83, 2048, 4096)
	writeSlot(img, 0, 2, 0x07, 8192, 1024)

	s := storeFor(t, img)
	entries := walk(t, s, HardDiskDrive(0))

	// Primary slots come out positionally, empty ones included.
	require.Len(t, entries, 4)
	require.Equal(t, PartitionEntry{Index: 0, Type: 0x83, Start: 2048, Size: 4096, Offset: mbrEntriesOffset}, entries[0])
	require.Equal(t, uint8(0), entries[1].Type)
	require.Equal(t, uint8(0x07), entries[2].Type)
	require.Equal(t, 3, entries[3].Index)
}

func TestWalkMBRLogicalChain(t *testing.T) {
	const extStart = 8192

	img := make([]byte, 13000*512)
	writeSlot(img, 0, 0, 0x83, 2048, 4096)
	writeSlot(img, 0, 1, PartitionTypeExtendedCHS, extStart, 8192)

	// First EBR: one logical partition, link to the next EBR.
	writeSlot(img, extStart*512, 0, 0x83, 63, 1000)
	writeSlot(img, extStart*512, 1, PartitionTypeExtendedLBA, 4096, 4096)
	// Second EBR: one logical partition, end of chain.
	writeSlot(img, (extStart+4096)*512, 0, 0x83, 63, 500)

	s := storeFor(t, img)
	entries := walk(t, s, HardDiskDrive(0))

	require.Len(t, entries, 6)

	// Logical partitions number from 4; starts are relative to their EBR.
	require.Equal(t, 4, entries[4].Index)
	require.Equal(t, uint64(extStart+63), entries[4].Start)
	require.Equal(t, uint64(1000), entries[4].Size)

	require.Equal(t, 5, entries[5].Index)
	require.Equal(t, uint64(extStart+4096+63), entries[5].Start)
	require.Equal(t, uint64(500), entries[5].Size)
}

func TestWalkMBRSelfReferencingChain(t *testing.T) {
	const extStart = 2048

	img := make([]byte, 4096*512)
	writeSlot(img, 0, 0, PartitionTypeExtendedLBA, extStart, 1024)
	// The EBR links back to itself; the walk must terminate.
	writeSlot(img, extStart*512, 0, 0x83, 1, 1)
	writeSlot(img, extStart*512, 1, PartitionTypeExtendedLBA, 0, 1024)

	s := storeFor(t, img)
	entries := walk(t, s, HardDiskDrive(0))
	require.Len(t, entries, 4+maxLogical)
}

func TestWalkGPT(t *testing.T) {
	typeGUID := uuid.MustParse("0fc63daf-8483-4772-8e79-3d69d8477de4")
	uniqGUID := uuid.MustParse("00112233-4455-6677-8899-aabbccddeeff")

	img := make([]byte, 8*512)
	// Protective MBR.
	writeSlot(img, 0, 0, PartitionTypeGPT, 1, uint32(len(img)/512-1))

	hdr := GPTHeader{
		Signature:  gptSignature,
		HeaderSize: gptHeaderSize,
		EntriesLBA: 2,
		EntryCount: 4,
		EntrySize:  gptEntrySize,
	}
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, &hdr))
	copy(img[512:], buf.Bytes())

	ent := GPTEntry{
		TypeGUID:   efi.GUIDBytes(typeGUID),
		UniqueGUID: efi.GUIDBytes(uniqGUID),
		FirstLBA:   2048,
		LastLBA:    10239,
	}
	buf.Reset()
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, &ent))
	// Slots 0 and 2 are used, 1 and 3 stay empty.
	copy(img[1024:], buf.Bytes())
	ent.FirstLBA, ent.LastLBA = 10240, 12287
	buf.Reset()
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, &ent))
	copy(img[1024+2*gptEntrySize:], buf.Bytes())

	s := storeFor(t, img)
	entries := walk(t, s, HardDiskDrive(0))

	require.Len(t, entries, 2)

	require.Equal(t, 0, entries[0].Index)
	require.True(t, entries[0].GPT)
	require.Equal(t, PartitionTypeGPT, entries[0].Type)
	require.Equal(t, uint64(2048), entries[0].Start)
	require.Equal(t, uint64(8192), entries[0].Size)
	require.Equal(t, typeGUID, entries[0].TypeGUID)
	require.Equal(t, uniqGUID, entries[0].UniqueGUID)
	require.Equal(t, uint64(1024), entries[0].TableOffset)
	require.Equal(t, 4, entries[0].TableEntries)

	require.Equal(t, 2, entries[1].Index)
	require.Equal(t, uint64(10240), entries[1].Start)
}

func TestWalkUnreadableTable(t *testing.T) {
	fw := efitest.New(&efitest.Device{
		Path:    efitest.DiskPath(0),
		Media:   efi.Media{ID: 1, BlockSize: 512, LastBlock: 8191},
		Data:    make([]byte, 8192*512),
		ReadErr: efi.ErrTransport,
	})
	s, err := Discover(fw, nil)
	require.NoError(t, err)

	require.Empty(t, walk(t, s, HardDiskDrive(0)))
	require.Empty(t, walk(t, s, HardDiskDrive(3)))
}

func TestWalkMissingBootSignature(t *testing.T) {
	s := storeFor(t, make([]byte, 512))
	require.Empty(t, walk(t, s, HardDiskDrive(0)))
}
