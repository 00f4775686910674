package efi

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// Partition signature kinds carried by a hard-drive media node.
const (
	SignatureTypeNone uint8 = 0x00
	SignatureTypeMBR  uint8 = 0x01
	SignatureTypeGUID uint8 = 0x02
)

// Partition table formats carried by a hard-drive media node.
const (
	PartitionFormatMBR uint8 = 0x01
	PartitionFormatGPT uint8 = 0x02
)

const hardDriveNodeLen = 42

// HardDriveNode is the decoded body of a media/hard-drive node. Start and
// size are in logical blocks of the parent device.
type HardDriveNode struct {
	PartitionNumber uint32
	PartitionStart  uint64
	PartitionSize   uint64
	Signature       [16]byte
	PartitionFormat uint8
	SignatureType   uint8
}

// ParseHardDrive decodes the node at off as a hard-drive media node.
// It returns false for any other node kind or a short node.
func ParseHardDrive(p DevicePath, off int) (HardDriveNode, bool) {
	n, ok := p.NodeAt(off)
	if !ok || n.Type != MediaPath || n.SubType != HardDriveSubType || int(n.Length) < hardDriveNodeLen {
		return HardDriveNode{}, false
	}
	b := p[off+NodeHeaderSize : off+hardDriveNodeLen]

	var hd HardDriveNode
	hd.PartitionNumber = binary.LittleEndian.Uint32(b[0:4])
	hd.PartitionStart = binary.LittleEndian.Uint64(b[4:12])
	hd.PartitionSize = binary.LittleEndian.Uint64(b[12:20])
	copy(hd.Signature[:], b[20:36])
	hd.PartitionFormat = b[36]
	hd.SignatureType = b[37]
	return hd, true
}

// AppendHardDrive appends a media/hard-drive node describing a partition.
func AppendHardDrive(p DevicePath, hd HardDriveNode) DevicePath {
	var body [hardDriveNodeLen - NodeHeaderSize]byte
	binary.LittleEndian.PutUint32(body[0:4], hd.PartitionNumber)
	binary.LittleEndian.PutUint64(body[4:12], hd.PartitionStart)
	binary.LittleEndian.PutUint64(body[12:20], hd.PartitionSize)
	copy(body[20:36], hd.Signature[:])
	body[36] = hd.PartitionFormat
	body[37] = hd.SignatureType
	return appendNode(p, MediaPath, HardDriveSubType, body[:])
}

// GUID returns the partition signature as a canonical UUID. Meaningful only
// when SignatureType is SignatureTypeGUID.
func (hd HardDriveNode) GUID() uuid.UUID {
	return GUIDFromBytes(hd.Signature[:])
}

// GUIDFromBytes converts a 16-byte EFI GUID (mixed endianness: the three
// leading time fields are little-endian) into a canonical uuid.UUID.
func GUIDFromBytes(b []byte) uuid.UUID {
	var g uuid.UUID
	g[0], g[1], g[2], g[3] = b[3], b[2], b[1], b[0]
	g[4], g[5] = b[5], b[4]
	g[6], g[7] = b[7], b[6]
	copy(g[8:], b[8:16])
	return g
}

// GUIDBytes is the inverse of GUIDFromBytes.
func GUIDBytes(g uuid.UUID) [16]byte {
	var b [16]byte
	b[0], b[1], b[2], b[3] = g[3], g[2], g[1], g[0]
	b[4], b[5] = g[5], g[4]
	b[6], b[7] = g[7], g[6]
	copy(b[8:], g[8:16])
	return b
}
