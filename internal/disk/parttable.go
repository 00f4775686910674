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
	"github.com/google/uuid"

	"github.com/ostafen/efidisk/internal/efi"
	"github.com/ostafen/efidisk/internal/logger"
)

// PartitionEntry is one record yielded by a partition-table walk. Start and
// Size are in device blocks; Offset is the byte position of the record on
// disk. GPT entries additionally carry their GUIDs and the geometry of the
// entry array they came from.
type PartitionEntry struct {
	Index  int
	Type   uint8 // MBR type byte; PartitionTypeGPT for GPT-addressed entries
	Start  uint64
	Size   uint64
	Offset uint64

	GPT          bool
	TypeGUID     uuid.UUID
	UniqueGUID   uuid.UUID
	TableOffset  uint64
	TableEntries int
	EntrySize    int
}

// PartitionCursor carries iteration state across Next calls. The zero value
// starts a fresh walk.
type PartitionCursor struct {
	loaded  bool
	entries []PartitionEntry
	next    int
}

// PartitionTable iterates a drive's on-disk partition records one per call.
// The second result is false once the table is exhausted (or was never
// readable); MBR walks also yield empty primary slots, with a zero Type, so
// callers filter on Type like the legacy interface expects.
type PartitionTable interface {
	Next(drive Drive, cur *PartitionCursor) (PartitionEntry, bool)
}

// TableWalker is the default PartitionTable: it reads MBR (with logical
// chains) and GPT records through the store's own byte-addressed transport.
type TableWalker struct {
	s   *Store
	log *logger.Logger
}

func (w *TableWalker) Next(drive Drive, cur *PartitionCursor) (PartitionEntry, bool) {
	if !cur.loaded {
		cur.loaded = true
		cur.entries = w.scan(drive)
	}
	if cur.next >= len(cur.entries) {
		return PartitionEntry{}, false
	}
	e := cur.entries[cur.next]
	cur.next++
	return e, true
}

// maxLogical bounds the EBR chain walk against self-referencing records.
const maxLogical = 64

func (w *TableWalker) scan(drive Drive) []PartitionEntry {
	d := w.s.DeviceForDrive(drive)
	if d == nil {
		return nil
	}
	bs := uint64(d.Media().BlockSize)

	var sector [legacySectorSize]byte
	if _, err := d.ReadAt(sector[:], 0); err != nil {
		w.log.Debugf("drive 0x%x: cannot read partition table: %v", drive, err)
		return nil
	}
	mbr, err := ParseMBR(sector[:])
	if err != nil {
		w.log.Debugf("drive 0x%x: %v", drive, err)
		return nil
	}

	for _, e := range mbr.Entries {
		if e.Type == PartitionTypeGPT {
			return w.scanGPT(d, bs)
		}
	}

	entries := make([]PartitionEntry, 0, 4)
	for i, e := range mbr.Entries {
		entries = append(entries, PartitionEntry{
			Index:  i,
			Type:   e.Type,
			Start:  uint64(e.ReadStartLBA()),
			Size:   uint64(e.ReadTotalSectors()),
			Offset: mbrEntriesOffset + uint64(i)*16,
		})
	}
	for _, e := range mbr.Entries {
		if e.IsExtended() {
			entries = w.scanEBR(d, bs, uint64(e.ReadStartLBA()), entries)
			break
		}
	}
	return entries
}

// scanEBR appends the logical partitions of an extended chain, numbering
// them from 4 upward. Each EBR's first slot is the logical partition
// (relative to the EBR), the second links to the next EBR (relative to the
// extended partition's start).
func (w *TableWalker) scanEBR(d *Device, bs, extStart uint64, entries []PartitionEntry) []PartitionEntry {
	ebr := extStart
	index := 4
	for i := 0; i < maxLogical; i++ {
		var sector [legacySectorSize]byte
		if _, err := d.ReadAt(sector[:], int64(ebr*bs)); err != nil {
			break
		}
		tbl, err := ParseMBR(sector[:])
		if err != nil {
			break
		}

		if p := &tbl.Entries[0]; p.Type != PartitionTypeEmpty {
			entries = append(entries, PartitionEntry{
				Index:  index,
				Type:   p.Type,
				Start:  ebr + uint64(p.ReadStartLBA()),
				Size:   uint64(p.ReadTotalSectors()),
				Offset: ebr*bs + mbrEntriesOffset,
			})
		}
		index++

		next := &tbl.Entries[1]
		if next.Type == PartitionTypeEmpty {
			break
		}
		ebr = extStart + uint64(next.ReadStartLBA())
	}
	return entries
}

func (w *TableWalker) scanGPT(d *Device, bs uint64) []PartitionEntry {
	hdrBuf := make([]byte, gptHeaderSize)
	if _, err := d.ReadAt(hdrBuf, int64(bs)); err != nil {
		w.log.Debugf("cannot read GPT header: %v", err)
		return nil
	}
	hdr, err := ParseGPTHeader(hdrBuf)
	if err != nil {
		w.log.Debugf("%v", err)
		return nil
	}

	tableOff := hdr.EntriesLBA * bs
	entrySize := uint64(hdr.EntrySize)

	var entries []PartitionEntry
	raw := make([]byte, entrySize)
	for i := 0; i < int(hdr.EntryCount); i++ {
		if _, err := d.ReadAt(raw, int64(tableOff+uint64(i)*entrySize)); err != nil {
			w.log.Debugf("cannot read GPT entry %d: %v", i, err)
			return nil
		}
		e, err := ParseGPTEntry(raw)
		if err != nil || !e.IsUsed() {
			continue
		}
		entries = append(entries, PartitionEntry{
			Index:        i,
			Type:         PartitionTypeGPT,
			Start:        e.FirstLBA,
			Size:         e.LastLBA - e.FirstLBA + 1,
			Offset:       tableOff + uint64(i)*entrySize,
			GPT:          true,
			TypeGUID:     efi.GUIDFromBytes(e.TypeGUID[:]),
			UniqueGUID:   efi.GUIDFromBytes(e.UniqueGUID[:]),
			TableOffset:  tableOff,
			TableEntries: int(hdr.EntryCount),
			EntrySize:    int(hdr.EntrySize),
		})
	}
	return entries
}
