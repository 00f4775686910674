//go:build !windows
// +build !windows

package fs

import "os"

// Open opens a raw device or image file read-only.
func Open(path string) (File, error) {
	return os.OpenFile(path, os.O_RDONLY, 0)
}
