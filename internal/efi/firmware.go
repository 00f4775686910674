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

import "github.com/google/uuid"

// Handle is an opaque firmware identity for a discovered device. It is never
// dereferenced directly; capabilities are opened on it through a Firmware.
type Handle uint64

// Well-known protocol GUIDs.
var (
	// BlockIOProtocol identifies the block geometry/media capability.
	BlockIOProtocol = uuid.MustParse("964e5b21-6459-11d2-8e39-00a0c969723b")
	// DiskIOProtocol identifies the byte-addressed read/write capability.
	DiskIOProtocol = uuid.MustParse("ce345171-ba0b-11d2-8e4f-00a0c969723b")
)

// Media describes the medium behind a block capability.
type Media struct {
	ID        uint32
	BlockSize uint32
	LastBlock uint64
	ReadOnly  bool
	Removable bool
}

// BlockIO exposes media geometry and attributes for a handle.
type BlockIO interface {
	Media() Media
}

// DiskIO exposes byte-addressed transport over a handle. Calls are blocking
// and single-outstanding; a non-success result is surfaced immediately with
// no retry and no partial-byte accounting.
type DiskIO interface {
	ReadDisk(mediaID uint32, off uint64, buf []byte) error
	WriteDisk(mediaID uint32, off uint64, buf []byte) error
}

// Firmware is the enumeration collaborator: it yields opaque handles for a
// protocol, their device paths, and typed capabilities opened on them.
//
// DevicePath returns a copy the caller owns and may mutate. OpenBlockIO and
// OpenDiskIO report absence with false; some handles legitimately lack one
// of the two capabilities and are skipped by discovery.
type Firmware interface {
	LocateHandles(protocol uuid.UUID) ([]Handle, error)
	DevicePath(h Handle) (DevicePath, bool)
	OpenBlockIO(h Handle) (BlockIO, bool)
	OpenDiskIO(h Handle) (DiskIO, bool)
}
