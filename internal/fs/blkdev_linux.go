//go:build linux
// +build linux

package fs

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DeviceInfo probes a block device for its logical sector size, total size,
// and read-only flag. Regular files (disk images) fall back to their file
// size and a 512-byte sector.
func DeviceInfo(f File) (Info, error) {
	osf, ok := f.(*os.File)
	if !ok {
		return Info{}, fmt.Errorf("unexpected file type %T", f)
	}
	fi, err := osf.Stat()
	if err != nil {
		return Info{}, err
	}
	if fi.Mode()&os.ModeDevice == 0 {
		return Info{SectorSize: 512, Size: uint64(fi.Size())}, nil
	}

	fd := osf.Fd()

	var size uint64
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, unix.BLKGETSIZE64, uintptr(unsafe.Pointer(&size))); errno != 0 {
		return Info{}, fmt.Errorf("ioctl BLKGETSIZE64 failed: %w", errno)
	}

	var sectorSize uint32
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, unix.BLKSSZGET, uintptr(unsafe.Pointer(&sectorSize))); errno != 0 {
		return Info{}, fmt.Errorf("ioctl BLKSSZGET failed: %w", errno)
	}

	var readOnly int32
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, unix.BLKROGET, uintptr(unsafe.Pointer(&readOnly))); errno != 0 {
		return Info{}, fmt.Errorf("ioctl BLKROGET failed: %w", errno)
	}

	return Info{
		SectorSize: sectorSize,
		Size:       size,
		ReadOnly:   readOnly != 0,
	}, nil
}
