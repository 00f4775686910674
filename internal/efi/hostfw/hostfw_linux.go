//go:build linux
// +build linux

package hostfw

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ostafen/efidisk/internal/efi"
	"github.com/ostafen/efidisk/internal/fs"
	"github.com/ostafen/efidisk/internal/logger"
)

const sysBlock = "/sys/block"

// New enumerates the host's block devices from sysfs and exposes them as
// firmware handles: whole disks with messaging- or ACPI-terminated paths,
// partitions as hard-drive media children of their disk.
func New(log *logger.Logger, opts Options) (*Firmware, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithSubsystem("hostfw")

	entries, err := os.ReadDir(sysBlock)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sysBlock, err)
	}

	fw := newFirmware()
	port := uint16(0)
	mediaID := uint32(0)

	for _, e := range entries {
		name := e.Name()
		if !opts.All && isPseudoDevice(name) {
			continue
		}

		f, err := fs.Open(filepath.Join("/dev", name))
		if err != nil {
			log.Debugf("%s: %v, skipping", name, err)
			continue
		}
		info, err := fs.DeviceInfo(f)
		if err != nil || info.Size == 0 || info.SectorSize == 0 {
			log.Debugf("%s: no usable media, skipping", name)
			f.Close()
			continue
		}

		var parent efi.DevicePath
		if strings.HasPrefix(name, "fd") {
			parent = efi.AppendACPI(nil, hidFloppy, uint32(port))
		} else {
			parent = efi.AppendSATA(efi.AppendACPI(nil, hidPCIRoot, 0), port, 0xFFFF, 0)
		}

		mediaID++
		disk := &hostDevice{
			name: name,
			path: efi.Finish(clonePrefix(parent)),
			file: f,
			media: efi.Media{
				ID:        mediaID,
				BlockSize: info.SectorSize,
				LastBlock: info.Size/uint64(info.SectorSize) - 1,
				ReadOnly:  info.ReadOnly,
				Removable: strings.HasPrefix(name, "fd") || strings.HasPrefix(name, "sr"),
			},
		}
		fw.add(disk)
		log.Debugf("%s: %d blocks of %d bytes", name, disk.media.LastBlock+1, disk.media.BlockSize)

		mediaID = addPartitions(fw, log, name, parent, info.SectorSize, mediaID)
		port++
	}
	return fw, nil
}

// addPartitions walks /sys/block/<disk> for partition subdirectories and
// registers each as a hard-drive media child of parent. sysfs start/size
// are in 512-byte units regardless of the device's logical sector size.
func addPartitions(fw *Firmware, log *logger.Logger, disk string, parent efi.DevicePath, sectorSize uint32, mediaID uint32) uint32 {
	entries, err := os.ReadDir(filepath.Join(sysBlock, disk))
	if err != nil {
		return mediaID
	}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, disk) {
			continue
		}
		num, ok := readSysUint(filepath.Join(sysBlock, disk, name, "partition"))
		if !ok {
			continue
		}
		start512, ok := readSysUint(filepath.Join(sysBlock, disk, name, "start"))
		if !ok {
			continue
		}
		size512, ok := readSysUint(filepath.Join(sysBlock, disk, name, "size"))
		if !ok {
			continue
		}

		f, err := fs.Open(filepath.Join("/dev", name))
		if err != nil {
			log.Debugf("%s: %v, skipping", name, err)
			continue
		}

		// Convert 512-byte units to the device's logical blocks.
		start := start512 * 512 / uint64(sectorSize)
		size := size512 * 512 / uint64(sectorSize)

		path := efi.AppendHardDrive(clonePrefix(parent), efi.HardDriveNode{
			PartitionNumber: uint32(num),
			PartitionStart:  start,
			PartitionSize:   size,
			PartitionFormat: efi.PartitionFormatMBR,
			SignatureType:   efi.SignatureTypeNone,
		})

		mediaID++
		fw.add(&hostDevice{
			name: name,
			path: efi.Finish(path),
			file: f,
			media: efi.Media{
				ID:        mediaID,
				BlockSize: sectorSize,
				LastBlock: size - 1,
			},
		})
	}
	return mediaID
}

// clonePrefix copies an unterminated path prefix so children appended to it
// never alias the parent's backing array.
func clonePrefix(p efi.DevicePath) efi.DevicePath {
	q := make(efi.DevicePath, len(p), len(p)+64)
	copy(q, p)
	return q
}

func isPseudoDevice(name string) bool {
	return strings.HasPrefix(name, "loop") ||
		strings.HasPrefix(name, "ram") ||
		strings.HasPrefix(name, "zram") ||
		strings.HasPrefix(name, "dm-")
}

func readSysUint(path string) (uint64, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
