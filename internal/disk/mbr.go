// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package disk

import (
	"encoding/binary"
	"fmt"
)

// Partition type ids this package cares about; everything else is opaque.
const (
	PartitionTypeEmpty       uint8 = 0x00
	PartitionTypeExtendedCHS uint8 = 0x05
	PartitionTypeExtendedLBA uint8 = 0x0F
	PartitionTypeGPT         uint8 = 0xEE
)

// MBRPartitionEntry is a single 16-byte entry in the MBR's partition table.
// Multi-byte fields are kept as byte arrays to explicitly handle the
// little-endian conversion when reading from the raw sector.
type MBRPartitionEntry struct {
	BootIndicator uint8   // 0x00: 0x80 for bootable, 0x00 for inactive
	StartCHS      [3]byte // 0x01: starting Cylinder-Head-Sector address
	Type          uint8   // 0x04: partition type id
	EndCHS        [3]byte // 0x05: ending Cylinder-Head-Sector address
	StartLBA      [4]byte // 0x08: starting LBA, little-endian
	TotalSectors  [4]byte // 0x0C: sectors in partition, little-endian
}

// ReadStartLBA returns the starting LBA of the partition.
func (p *MBRPartitionEntry) ReadStartLBA() uint32 {
	return binary.LittleEndian.Uint32(p.StartLBA[:])
}

// ReadTotalSectors returns the total number of sectors in the partition.
func (p *MBRPartitionEntry) ReadTotalSectors() uint32 {
	return binary.LittleEndian.Uint32(p.TotalSectors[:])
}

// IsExtended reports whether the entry heads an extended partition chain.
func (p *MBRPartitionEntry) IsExtended() bool {
	return p.Type == PartitionTypeExtendedCHS || p.Type == PartitionTypeExtendedLBA
}

// MBR represents the Master Boot Record structure. Extended boot records in
// a logical chain share the same layout and parse with the same routine.
type MBR struct {
	DiskSignature [4]byte              // 0x1B8-0x1BB: optional 32-bit disk signature
	Entries       [4]MBRPartitionEntry // 0x1BE-0x1FD: four 16-byte slots
	Signature     [2]byte              // 0x1FE-0x1FF: 0x55AA
}

// ReadDiskSignature returns the disk signature as a uint32.
func (m *MBR) ReadDiskSignature() uint32 {
	return binary.LittleEndian.Uint32(m.DiskSignature[:])
}

// ReadSignature returns the boot signature (should be 0xAA55).
func (m *MBR) ReadSignature() uint16 {
	return binary.LittleEndian.Uint16(m.Signature[:])
}

// mbrEntriesOffset is where the partition table starts inside the sector.
const mbrEntriesOffset = 0x1BE

// ParseMBR parses a 512-byte sector into an MBR struct.
func ParseMBR(data []byte) (*MBR, error) {
	const mbrSize = 512
	const signatureOffset = 0x1FE

	if len(data) != mbrSize {
		return nil, fmt.Errorf("input data slice size mismatch: expected %d bytes, got %d bytes", mbrSize, len(data))
	}

	var mbr MBR
	copy(mbr.DiskSignature[:], data[0x1B8:0x1BC])

	for i := 0; i < 4; i++ {
		entryOffset := mbrEntriesOffset + i*16
		entryBytes := data[entryOffset : entryOffset+16]

		mbr.Entries[i].BootIndicator = entryBytes[0x00]
		copy(mbr.Entries[i].StartCHS[:], entryBytes[0x01:0x04])
		mbr.Entries[i].Type = entryBytes[0x04]
		copy(mbr.Entries[i].EndCHS[:], entryBytes[0x05:0x08])
		copy(mbr.Entries[i].StartLBA[:], entryBytes[0x08:0x0C])
		copy(mbr.Entries[i].TotalSectors[:], entryBytes[0x0C:0x10])
	}

	copy(mbr.Signature[:], data[signatureOffset:signatureOffset+2])
	if mbr.ReadSignature() != 0xAA55 {
		return nil, fmt.Errorf("invalid MBR signature: expected 0xAA55, got 0x%04X", mbr.ReadSignature())
	}
	return &mbr, nil
}
