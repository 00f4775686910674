//go:build !linux && !windows
// +build !linux,!windows

package fs

// DeviceInfo falls back to plain stat data on platforms without block
// device ioctl support.
func DeviceInfo(f File) (Info, error) {
	fi, err := f.Stat()
	if err != nil {
		return Info{}, err
	}
	return Info{SectorSize: 512, Size: uint64(fi.Size())}, nil
}
