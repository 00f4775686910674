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
package efi

import (
	"bytes"
	"encoding/binary"
)

// DevicePath is an EFI device path: a sequence of self-describing binary
// nodes terminated by an end-entire node. Each node declares its own length
// in its 4-byte header, so the buffer is treated as opaque and only ever
// walked through NodeAt. A DevicePath owns its backing bytes; sub-views are
// expressed as byte offsets into the same buffer, never as separate slices
// with independent lifetimes.
type DevicePath []byte

// Device path node types, per the UEFI specification.
const (
	HardwarePath  uint8 = 0x01
	ACPIPath      uint8 = 0x02
	MessagingPath uint8 = 0x03
	MediaPath     uint8 = 0x04
	BBSPath       uint8 = 0x05
	EndPath       uint8 = 0x7F
)

// Node subtypes used by this package.
const (
	EndEntireSubType  uint8 = 0xFF
	ACPIDeviceSubType uint8 = 0x01
	SATASubType       uint8 = 0x12
	HardDriveSubType  uint8 = 0x01
	CDROMSubType      uint8 = 0x02
)

// NodeHeaderSize is the fixed size of a node header (type, subtype,
// 16-bit little-endian length). An end-entire node is exactly this long.
const NodeHeaderSize = 4

// Node is a decoded view of a single node header.
type Node struct {
	Type    uint8
	SubType uint8
	Length  uint16
}

// IsEndEntire reports whether the node terminates the whole path.
func (n Node) IsEndEntire() bool {
	return n.Type == EndPath && n.SubType == EndEntireSubType
}

// NodeAt decodes the node header at byte offset off. It returns false when
// the offset is out of bounds or the declared length would not fit in the
// buffer; a zero-length node can never be returned.
func (p DevicePath) NodeAt(off int) (Node, bool) {
	if off < 0 || off+NodeHeaderSize > len(p) {
		return Node{}, false
	}
	n := Node{
		Type:    p[off],
		SubType: p[off+1],
		Length:  binary.LittleEndian.Uint16(p[off+2 : off+4]),
	}
	if int(n.Length) < NodeHeaderSize || off+int(n.Length) > len(p) {
		return Node{}, false
	}
	return n, true
}

// size walks the path from its head, summing declared node lengths up to
// and including the end-entire node. It returns false for malformed paths.
func (p DevicePath) size() (int, bool) {
	off := 0
	for {
		n, ok := p.NodeAt(off)
		if !ok {
			return 0, false
		}
		off += int(n.Length)
		if n.IsEndEntire() {
			return off, true
		}
	}
}

// Dup returns a verbatim copy of p in a fresh buffer. The copy holds only
// the bytes up to the end-entire node, even if p carries trailing garbage.
// A path whose first node is already the terminator duplicates fine.
// Malformed paths yield nil.
func Dup(p DevicePath) DevicePath {
	total, ok := p.size()
	if !ok {
		return nil
	}
	q := make(DevicePath, total)
	copy(q, p[:total])
	return q
}

// FindLast returns the byte offset of the node immediately preceding the
// end-entire node. It returns false when the very first node is already the
// terminator (the path describes no device) or when the path is malformed.
func FindLast(p DevicePath) (int, bool) {
	n, ok := p.NodeAt(0)
	if !ok || n.IsEndEntire() {
		return 0, false
	}
	off := 0
	for {
		next := off + int(n.Length)
		nn, ok := p.NodeAt(next)
		if !ok {
			return 0, false
		}
		if nn.IsEndEntire() {
			return off, true
		}
		off, n = next, nn
	}
}

// Compare imposes a total order on device paths. Corresponding nodes are
// compared pairwise: type first (reversed, so higher types sort earlier),
// then subtype, then declared length, then the raw node bytes. Both cursors
// advance one node per round; the walk stops with an equal result only when
// the current node of a is the end-entire node and every prior field tied.
// A nil or malformed operand never panics and never compares equal.
func Compare(a, b DevicePath) int {
	if len(a) == 0 || len(b) == 0 {
		return 1
	}
	offA, offB := 0, 0
	for {
		na, okA := a.NodeAt(offA)
		nb, okB := b.NodeAt(offB)
		if !okA || !okB {
			return 1
		}
		if na.Type != nb.Type {
			return int(nb.Type) - int(na.Type)
		}
		if na.SubType != nb.SubType {
			return int(na.SubType) - int(nb.SubType)
		}
		if na.Length != nb.Length {
			return int(na.Length) - int(nb.Length)
		}
		if r := bytes.Compare(a[offA:offA+int(na.Length)], b[offB:offB+int(nb.Length)]); r != 0 {
			return r
		}
		if na.IsEndEntire() {
			return 0
		}
		offA += int(na.Length)
		offB += int(nb.Length)
	}
}

// SetEnd rewrites the node at off into a minimal end-entire node, truncating
// the path at that point. Any bytes past the new terminator stay in the
// buffer; every walk stops at the end node, so they are never observed.
// Callers apply this to duplicates (or to buffers they own outright), never
// to a path another component still reads.
func SetEnd(p DevicePath, off int) {
	p[off] = EndPath
	p[off+1] = EndEntireSubType
	binary.LittleEndian.PutUint16(p[off+2:off+4], NodeHeaderSize)
}

func appendNode(p DevicePath, typ, sub uint8, body []byte) DevicePath {
	length := NodeHeaderSize + len(body)
	p = append(p, typ, sub, byte(length), byte(length>>8))
	return append(p, body...)
}

// AppendACPI appends an ACPI device node (EISA HID plus UID).
func AppendACPI(p DevicePath, hid, uid uint32) DevicePath {
	var body [8]byte
	binary.LittleEndian.PutUint32(body[0:4], hid)
	binary.LittleEndian.PutUint32(body[4:8], uid)
	return appendNode(p, ACPIPath, ACPIDeviceSubType, body[:])
}

// AppendSATA appends a messaging/SATA node.
func AppendSATA(p DevicePath, port, multiplier, lun uint16) DevicePath {
	var body [6]byte
	binary.LittleEndian.PutUint16(body[0:2], port)
	binary.LittleEndian.PutUint16(body[2:4], multiplier)
	binary.LittleEndian.PutUint16(body[4:6], lun)
	return appendNode(p, MessagingPath, SATASubType, body[:])
}

// AppendCDROM appends a media/CD-ROM node describing a boot session.
func AppendCDROM(p DevicePath, bootEntry uint32, start, size uint64) DevicePath {
	var body [20]byte
	binary.LittleEndian.PutUint32(body[0:4], bootEntry)
	binary.LittleEndian.PutUint64(body[4:12], start)
	binary.LittleEndian.PutUint64(body[12:20], size)
	return appendNode(p, MediaPath, CDROMSubType, body[:])
}

// Finish appends the end-entire terminator and returns the completed path.
func Finish(p DevicePath) DevicePath {
	return appendNode(p, EndPath, EndEntireSubType, nil)
}
