package efitest

import "github.com/ostafen/efidisk/internal/efi"

// EISA-compressed ACPI hardware ids used by the synthetic paths.
const (
	HIDPCIRoot uint32 = 0x0A0341D0 // PNP0A03
	HIDFloppy  uint32 = 0x060441D0 // PNP0604
)

// FloppyPath builds an ACPI-terminated path for a legacy floppy drive.
func FloppyPath(uid uint32) efi.DevicePath {
	return efi.Finish(efi.AppendACPI(nil, HIDFloppy, uid))
}

// DiskPath builds a messaging-terminated path for a SATA-attached disk.
func DiskPath(port uint16) efi.DevicePath {
	p := efi.AppendACPI(nil, HIDPCIRoot, 0)
	return efi.Finish(efi.AppendSATA(p, port, 0xFFFF, 0))
}

// PartitionPath builds the child path of DiskPath(port) for one partition.
func PartitionPath(port uint16, hd efi.HardDriveNode) efi.DevicePath {
	p := efi.AppendACPI(nil, HIDPCIRoot, 0)
	p = efi.AppendSATA(p, port, 0xFFFF, 0)
	return efi.Finish(efi.AppendHardDrive(p, hd))
}

// CDROMPath builds a messaging-terminated path for an optical drive.
func CDROMPath(port uint16) efi.DevicePath {
	p := efi.AppendACPI(nil, HIDPCIRoot, 0)
	return efi.Finish(efi.AppendSATA(p, port, 0, 0))
}

// CDROMSessionPath builds the child path of CDROMPath(port) for one session.
func CDROMSessionPath(port uint16, bootEntry uint32, start, size uint64) efi.DevicePath {
	p := efi.AppendACPI(nil, HIDPCIRoot, 0)
	p = efi.AppendSATA(p, port, 0, 0)
	return efi.Finish(efi.AppendCDROM(p, bootEntry, start, size))
}
