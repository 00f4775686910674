//go:build windows
// +build windows

package hostfw

import (
	"fmt"

	"github.com/ostafen/efidisk/internal/efi"
	"github.com/ostafen/efidisk/internal/fs"
	"github.com/ostafen/efidisk/internal/logger"
)

// maxPhysicalDrives bounds the probe of \\.\PhysicalDriveN names.
const maxPhysicalDrives = 32

// New probes physical drives and exposes them as firmware handles. Only
// whole disks are enumerated.
//
// TODO: enumerate partition children via IOCTL_DISK_GET_DRIVE_LAYOUT_EX so
// handle-to-partition resolution works on Windows hosts too.
func New(log *logger.Logger, opts Options) (*Firmware, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithSubsystem("hostfw")

	fw := newFirmware()
	mediaID := uint32(0)

	for i := 0; i < maxPhysicalDrives; i++ {
		name := fmt.Sprintf(`\\.\PhysicalDrive%d`, i)
		f, err := fs.Open(name)
		if err != nil {
			continue
		}
		info, err := fs.DeviceInfo(f)
		if err != nil || info.Size == 0 || info.SectorSize == 0 {
			f.Close()
			continue
		}

		parent := efi.AppendSATA(efi.AppendACPI(nil, hidPCIRoot, 0), uint16(i), 0xFFFF, 0)
		mediaID++
		fw.add(&hostDevice{
			name: name,
			path: efi.Finish(parent),
			file: f,
			media: efi.Media{
				ID:        mediaID,
				BlockSize: info.SectorSize,
				LastBlock: info.Size/uint64(info.SectorSize) - 1,
				ReadOnly:  info.ReadOnly,
			},
		})
		log.Debugf("%s: %d-byte blocks, %d bytes total", name, info.SectorSize, info.Size)
	}
	return fw, nil
}
