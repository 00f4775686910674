package disk

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// gptSignature is "EFI PART" as a little-endian uint64.
const gptSignature = 0x5452415020494645

// gptHeaderSize is the defined size of the fields below; firmware may
// declare a larger HeaderSize, the extra bytes are reserved.
const gptHeaderSize = 92

// GPTHeader is the partition table header at LBA 1.
type GPTHeader struct {
	Signature      uint64
	Revision       uint32
	HeaderSize     uint32
	HeaderCRC      uint32
	Reserved       uint32
	CurrentLBA     uint64
	BackupLBA      uint64
	FirstUsableLBA uint64
	LastUsableLBA  uint64
	DiskGUID       [16]byte
	EntriesLBA     uint64
	EntryCount     uint32
	EntrySize      uint32
	EntriesCRC     uint32
}

// GPTEntry is one slot of the partition entry array. An all-zero type GUID
// marks an unused slot.
type GPTEntry struct {
	TypeGUID   [16]byte
	UniqueGUID [16]byte
	FirstLBA   uint64
	LastLBA    uint64
	Attributes uint64
	Name       [72]byte
}

const gptEntrySize = 128

// IsUsed reports whether the slot describes a partition.
func (e *GPTEntry) IsUsed() bool {
	return e.TypeGUID != [16]byte{}
}

// ParseGPTHeader decodes and sanity-checks the header from a raw block.
func ParseGPTHeader(data []byte) (*GPTHeader, error) {
	if len(data) < gptHeaderSize {
		return nil, fmt.Errorf("short GPT header: %d bytes", len(data))
	}
	var hdr GPTHeader
	if err := binary.Read(bytes.NewReader(data[:gptHeaderSize]), binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	if hdr.Signature != gptSignature {
		return nil, fmt.Errorf("invalid GPT signature: 0x%016X", hdr.Signature)
	}
	if hdr.EntrySize < gptEntrySize {
		return nil, fmt.Errorf("GPT entry size too small: %d", hdr.EntrySize)
	}
	return &hdr, nil
}

// ParseGPTEntry decodes one entry array slot.
func ParseGPTEntry(data []byte) (*GPTEntry, error) {
	if len(data) < gptEntrySize {
		return nil, fmt.Errorf("short GPT entry: %d bytes", len(data))
	}
	var e GPTEntry
	if err := binary.Read(bytes.NewReader(data[:gptEntrySize]), binary.LittleEndian, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
