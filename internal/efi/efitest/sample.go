package efitest

import "github.com/ostafen/efidisk/internal/efi"

// MBREntry describes one primary slot for MBRImage.
type MBREntry struct {
	Type  uint8
	Start uint32
	Size  uint32
}

// MBRImage builds a raw disk image of size bytes whose first sector holds a
// valid MBR with the given primary entries.
func MBRImage(size int, entries ...MBREntry) []byte {
	img := make([]byte, size)
	for i, e := range entries {
		off := 0x1BE + i*16
		img[off+4] = e.Type
		putUint32(img[off+8:], e.Start)
		putUint32(img[off+12:], e.Size)
	}
	img[510] = 0x55
	img[511] = 0xAA
	return img
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// SampleSystem builds a small simulated machine: one floppy, one fixed disk
// carrying a single MBR partition (with its child handle), and one optical
// drive. Used by the CLI's sim backend and handy in tests.
func SampleSystem() *Firmware {
	const (
		blockSize = 512
		partStart = 2048
		partSize  = 8192
	)

	diskImg := MBRImage((partStart+partSize)*blockSize, MBREntry{
		Type:  0x83,
		Start: partStart,
		Size:  partSize,
	})

	fw := New()
	fw.Add(&Device{
		Path:  FloppyPath(0),
		Media: efi.Media{ID: 1, BlockSize: blockSize, LastBlock: 2879, Removable: true},
		Data:  make([]byte, 2880*blockSize),
	})
	fw.Add(&Device{
		Path:  DiskPath(0),
		Media: efi.Media{ID: 2, BlockSize: blockSize, LastBlock: uint64(len(diskImg)/blockSize - 1)},
		Data:  diskImg,
	})
	fw.Add(&Device{
		Path: PartitionPath(0, efi.HardDriveNode{
			PartitionNumber: 1,
			PartitionStart:  partStart,
			PartitionSize:   partSize,
			PartitionFormat: efi.PartitionFormatMBR,
			SignatureType:   efi.SignatureTypeNone,
		}),
		Media: efi.Media{ID: 3, BlockSize: blockSize, LastBlock: partSize - 1},
		Data:  diskImg[partStart*blockSize:],
	})
	fw.Add(&Device{
		Path:  CDROMPath(1),
		Media: efi.Media{ID: 4, BlockSize: 2048, LastBlock: 1023, ReadOnly: true, Removable: true},
		Data:  make([]byte, 1024*2048),
	})
	return fw
}
