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

import "github.com/ostafen/efidisk/internal/efi"

// eachChild calls fn on every member of devices whose device path, truncated
// at its own terminal node, equals parent's path; that is, on every device
// whose immediate parent is parent. Truncation works on a duplicate so the
// member's own path stays intact. fn returning true stops the iteration;
// eachChild reports whether any call did.
func eachChild(devices []*Device, parent *Device, fn func(*Device) bool) bool {
	for _, c := range devices {
		dp := efi.Dup(c.Path)
		if dp == nil {
			return false
		}
		efi.SetEnd(dp, c.last)

		if efi.Compare(dp, parent.Path) == 0 && fn(c) {
			return true
		}
	}
	return false
}

// HandleForExtent walks from a whole fixed disk down to the child handle
// whose hard-drive node starts at start and spans size blocks. It rebuilds a
// transient candidate list for the search; nothing is retained after return.
func (s *Store) HandleForExtent(fw efi.Firmware, drive Drive, start, size uint64) (efi.Handle, bool) {
	parent := s.DeviceForDrive(drive)
	if parent == nil {
		return 0, false
	}

	devices, err := discover(fw, s.log)
	if err != nil {
		return 0, false
	}

	var handle efi.Handle
	found := eachChild(devices, parent, func(c *Device) bool {
		n, ok := efi.ParseHardDrive(c.Path, c.last)
		if !ok || n.PartitionStart != start || n.PartitionSize != size {
			return false
		}
		handle = c.Handle
		return true
	})
	return handle, found
}

// HandleForPartition resolves (drive, partition) to the firmware handle of
// that exact partition. Floppies, optical drives, and the WholeDisk sentinel
// resolve to the device's own handle; otherwise the partition number is
// translated to a start/length extent through the partition-table
// collaborator and matched against the disk's children.
func (s *Store) HandleForPartition(fw efi.Firmware, drive Drive, partition uint32) (efi.Handle, bool) {
	d := s.DeviceForDrive(drive)
	if d == nil {
		return 0, false
	}
	if drive&hdBit == 0 || drive == CDROMDrive || partition == WholeDisk {
		return d.Handle, true
	}

	var cur PartitionCursor
	for {
		e, ok := s.pt.Next(drive, &cur)
		if !ok {
			return 0, false
		}
		if e.Type != 0 && uint32(e.Index) == partition {
			return s.HandleForExtent(fw, drive, e.Start, e.Size)
		}
	}
}
