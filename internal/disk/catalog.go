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
	"github.com/ostafen/efidisk/internal/efi"
	"github.com/ostafen/efidisk/internal/logger"
)

// conventional legacy sector size; larger read-only media is optical
const legacySectorSize = 512

// catalog is an ascending, deduplicated sequence of devices. Order is by the
// terminal path node first, then by the full path; a path equal to an
// existing member is discarded on insert.
type catalog struct {
	devs []*Device
}

func (c *catalog) insert(d *Device) {
	pos := len(c.devs)
	for i, e := range c.devs {
		r := efi.Compare(e.Path[e.last:], d.Path[d.last:])
		if r == 0 {
			r = efi.Compare(e.Path, d.Path)
		}
		if r == 0 {
			return
		}
		if r > 0 {
			pos = i
			break
		}
	}
	c.devs = append(c.devs, nil)
	copy(c.devs[pos+1:], c.devs[pos:])
	c.devs[pos] = d
}

// at walks linearly from the head; catalogs hold tens of entries at most.
func (c *catalog) at(i int) *Device {
	if i < 0 || i >= len(c.devs) {
		return nil
	}
	return c.devs[i]
}

func (c *catalog) len() int { return len(c.devs) }

// Store holds the three long-lived device catalogs. It is built exactly once
// via Discover and read-only afterwards; resolver calls rebuild their own
// transient lists and never link them into the store.
type Store struct {
	fd catalog // removable, floppy-like
	hd catalog // fixed disks
	cd catalog // read-only optical

	pt  PartitionTable
	log *logger.Logger
}

// Discover enumerates the firmware once, classifies every candidate, and
// returns the populated store. A failed enumeration returns an error and no
// store; a store is never observable half-populated.
func Discover(fw efi.Firmware, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithSubsystem("disk")

	devices, err := discover(fw, log)
	if err != nil {
		return nil, err
	}

	s := &Store{log: log}
	s.pt = &TableWalker{s: s, log: log}
	s.classify(devices)

	log.Infof("discovered %d floppy, %d hard disk, %d optical device(s)",
		s.fd.len(), s.hd.len(), s.cd.len())
	return s, nil
}

// SetPartitionTable replaces the partition-table collaborator. The default
// walks on-disk MBR/GPT records through the store's own transport.
func (s *Store) SetPartitionTable(pt PartitionTable) { s.pt = pt }

// classify routes every candidate with a terminal node into exactly one of
// the three catalogs:
//
//   - messaging-terminated, read-only media with blocks larger than a legacy
//     sector: optical;
//   - messaging-terminated otherwise: hard disk;
//   - ACPI-terminated (platform-described, e.g. a floppy controller): floppy;
//   - anything else is dropped.
func (s *Store) classify(devices []*Device) {
	for _, d := range devices {
		n, ok := d.LastNode()
		if !ok {
			continue
		}
		switch n.Type {
		case efi.MessagingPath:
			m := d.Media()
			if m.ReadOnly && m.BlockSize > legacySectorSize {
				s.cd.insert(d)
			} else {
				s.hd.insert(d)
			}
		case efi.ACPIPath:
			s.fd.insert(d)
		default:
			s.log.Debugf("handle %d: unclassifiable terminal node type 0x%02x", d.Handle, n.Type)
		}
	}
}

// Floppies returns the floppy-class catalog in drive order.
func (s *Store) Floppies() []*Device { return s.fd.devs }

// HardDisks returns the fixed-disk catalog in drive order.
func (s *Store) HardDisks() []*Device { return s.hd.devs }

// CDROMs returns the optical catalog in drive order.
func (s *Store) CDROMs() []*Device { return s.cd.devs }
