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
)

// Drive is a legacy drive number: [0, N) addresses floppies, [0x80, 0x80+N)
// fixed disks, plus reserved sentinels below.
type Drive uint32

const (
	// InvalidDrive never resolves to a device.
	InvalidDrive Drive = 0xFFFFFFFF
	// NetworkDrive is reserved by legacy callers; network boot is not
	// supported here, so it never resolves either.
	NetworkDrive Drive = 0x20
	// CDROMDrive addresses the first optical device.
	CDROMDrive Drive = 0xE0

	hdBit = 0x80
)

// WholeDisk is the partition sentinel addressing the disk itself.
const WholeDisk uint32 = 0xFFFFFF

// HardDiskDrive returns the drive number of the i-th fixed disk.
func HardDiskDrive(i uint32) Drive { return Drive(hdBit + i) }

func (d Drive) String() string {
	switch {
	case d == InvalidDrive:
		return "<invalid>"
	case d == NetworkDrive:
		return "<network>"
	case d >= CDROMDrive:
		return fmt.Sprintf("cd%d", uint32(d-CDROMDrive))
	case uint32(d) >= hdBit:
		return fmt.Sprintf("hd%d", uint32(d)-hdBit)
	default:
		return fmt.Sprintf("fd%d", uint32(d))
	}
}

// DeviceForDrive maps a legacy drive number to its catalog entry, or nil.
func (s *Store) DeviceForDrive(drive Drive) *Device {
	switch drive {
	case InvalidDrive, NetworkDrive:
		return nil
	case CDROMDrive:
		return s.cd.at(0)
	}
	if drive&hdBit != 0 {
		return s.hd.at(int(drive - hdBit))
	}
	return s.fd.at(int(drive))
}

// DriveForHandle maps a firmware handle back to its (drive, partition)
// identity. Whole devices resolve with the WholeDisk sentinel; a handle that
// names a partition of some fixed disk resolves by re-enumerating that
// disk's children and correlating the matching child's start and length
// against the on-disk partition table. The second result is the partition
// number; ok is false when nothing matches.
func (s *Store) DriveForHandle(fw efi.Firmware, h efi.Handle) (drive Drive, partition uint32, ok bool) {
	dp, ok := fw.DevicePath(h)
	if !ok {
		return 0, 0, false
	}

	// Collapse a trailing optical session/track descriptor to a bare
	// terminator before comparing: all sessions count as the one device.
	normalizeOptical(dp)

	for i, d := range s.fd.devs {
		if efi.Compare(d.Path, dp) == 0 {
			return Drive(i), WholeDisk, true
		}
	}
	if first := s.cd.at(0); first != nil && efi.Compare(first.Path, dp) == 0 {
		return CDROMDrive, WholeDisk, true
	}
	for i, d := range s.hd.devs {
		if efi.Compare(d.Path, dp) == 0 {
			return Drive(hdBit + i), WholeDisk, true
		}
	}

	// Not a whole disk: treat the target as a partition of some fixed
	// disk. The transient list lives only for this call.
	devices, err := discover(fw, s.log)
	if err != nil {
		return 0, 0, false
	}

	var (
		node  efi.HardDriveNode
		found bool
	)
	drive = hdBit
	for _, parent := range s.hd.devs {
		eachChild(devices, parent, func(c *Device) bool {
			if efi.Compare(c.Path, dp) != 0 {
				return false
			}
			n, ok := efi.ParseHardDrive(c.Path, c.last)
			if !ok {
				return false
			}
			node = n
			found = true
			return true
		})
		if found {
			break
		}
		drive++
	}
	if !found {
		return 0, 0, false
	}

	var cur PartitionCursor
	for {
		e, ok := s.pt.Next(drive, &cur)
		if !ok {
			break
		}
		if e.Type != 0 && e.Start == node.PartitionStart && e.Size == node.PartitionSize {
			return drive, uint32(e.Index), true
		}
	}
	return 0, 0, false
}

// normalizeOptical rewrites the first media/CD-ROM node of dp in place into
// an end-entire terminator. dp is a caller-owned copy by the Firmware
// contract, so the mutation never leaks into catalog state.
func normalizeOptical(dp efi.DevicePath) {
	off := 0
	for {
		n, ok := dp.NodeAt(off)
		if !ok || n.IsEndEntire() {
			return
		}
		if n.Type == efi.MediaPath && n.SubType == efi.CDROMSubType {
			efi.SetEnd(dp, off)
			return
		}
		off += int(n.Length)
	}
}
