package fs

import (
	"io"
	"os"
)

type File interface {
	io.ReadCloser
	io.ReaderAt
	Stat() (os.FileInfo, error)
}

// Info describes a raw block device or image file well enough to expose it
// as firmware media: logical sector size, total size in bytes, and whether
// the kernel reports it read-only.
type Info struct {
	SectorSize uint32
	Size       uint64
	ReadOnly   bool
}
