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
	"fmt"

	"github.com/ostafen/efidisk/internal/efi"
	"github.com/ostafen/efidisk/internal/logger"
)

// Device is one firmware handle with both block capabilities open. It owns
// its duplicated device path; last is a byte offset into that same buffer
// marking the node right before the terminator, never a separate allocation.
type Device struct {
	Handle efi.Handle
	Path   efi.DevicePath

	last int

	blk efi.BlockIO
	dio efi.DiskIO
}

// Media returns the media descriptor reported by the block capability.
func (d *Device) Media() efi.Media {
	return d.blk.Media()
}

// LastNode returns the decoded terminal node of the device path.
func (d *Device) LastNode() (efi.Node, bool) {
	return d.Path.NodeAt(d.last)
}

// ReadAt implements io.ReaderAt over the byte-addressed disk capability,
// so partition-table walkers can consume the device directly.
func (d *Device) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("%w: negative offset", efi.ErrTransport)
	}
	if err := d.dio.ReadDisk(d.Media().ID, uint64(off), p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// discover queries the firmware once for every handle exposing the
// byte-addressed disk capability and returns a transient, unordered list of
// candidates. Handles without a device path, with a degenerate path, or
// missing either capability are skipped silently. An enumeration failure
// yields no partial list.
func discover(fw efi.Firmware, log *logger.Logger) ([]*Device, error) {
	handles, err := fw.LocateHandles(efi.DiskIOProtocol)
	if err != nil {
		return nil, fmt.Errorf("locate disk handles: %w", err)
	}

	var devices []*Device
	for _, h := range handles {
		dp, ok := fw.DevicePath(h)
		if !ok {
			log.Debugf("handle %d: no device path, skipping", h)
			continue
		}
		dp = efi.Dup(dp)
		if dp == nil {
			log.Debugf("handle %d: malformed device path, skipping", h)
			continue
		}
		last, ok := efi.FindLast(dp)
		if !ok {
			// The path is a bare terminator and describes nothing.
			log.Debugf("handle %d: empty device path, skipping", h)
			continue
		}

		blk, ok := fw.OpenBlockIO(h)
		if !ok {
			log.Debugf("handle %d: block capability absent, skipping", h)
			continue
		}
		dio, ok := fw.OpenDiskIO(h)
		if !ok {
			log.Debugf("handle %d: disk capability absent, skipping", h)
			continue
		}

		devices = append(devices, &Device{
			Handle: h,
			Path:   dp,
			last:   last,
			blk:    blk,
			dio:    dio,
		})
	}
	return devices, nil
}
