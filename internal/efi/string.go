package efi

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// String renders the path one node per backslash-separated segment, in the
// spirit of the UEFI shell notation. Unknown nodes fall back to a hex dump
// of their body.
func (p DevicePath) String() string {
	var sb strings.Builder

	off := 0
	for {
		n, ok := p.NodeAt(off)
		if !ok {
			sb.WriteString(`\<malformed>`)
			break
		}
		if n.IsEndEntire() {
			break
		}
		sb.WriteByte('\\')
		body := p[off+NodeHeaderSize : off+int(n.Length)]
		switch {
		case n.Type == ACPIPath && n.SubType == ACPIDeviceSubType && len(body) >= 8:
			hid := binary.LittleEndian.Uint32(body[0:4])
			uid := binary.LittleEndian.Uint32(body[4:8])
			fmt.Fprintf(&sb, "Acpi(0x%08X,0x%X)", hid, uid)
		case n.Type == MessagingPath && n.SubType == SATASubType && len(body) >= 6:
			port := binary.LittleEndian.Uint16(body[0:2])
			lun := binary.LittleEndian.Uint16(body[4:6])
			fmt.Fprintf(&sb, "Sata(0x%X,0x%X)", port, lun)
		case n.Type == MediaPath && n.SubType == HardDriveSubType:
			if hd, ok := ParseHardDrive(p, off); ok {
				fmt.Fprintf(&sb, "HD(%d,%d,%d)", hd.PartitionNumber, hd.PartitionStart, hd.PartitionSize)
			} else {
				fmt.Fprintf(&sb, "HD(?)")
			}
		case n.Type == MediaPath && n.SubType == CDROMSubType && len(body) >= 20:
			entry := binary.LittleEndian.Uint32(body[0:4])
			fmt.Fprintf(&sb, "CDROM(0x%X)", entry)
		default:
			fmt.Fprintf(&sb, "Path(%02x,%02x", n.Type, n.SubType)
			if len(body) > 0 {
				sb.WriteString(",0x")
				for _, b := range body {
					fmt.Fprintf(&sb, "%02x", b)
				}
			}
			sb.WriteByte(')')
		}
		off += int(n.Length)
	}
	return sb.String()
}
