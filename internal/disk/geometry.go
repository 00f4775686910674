package disk

// Geometry is the synthesized legacy geometry for a drive. Callers expecting
// CHS addressing get a fixed 63 sectors per track and a head count picked so
// the cylinder count stays in range.
type Geometry struct {
	TotalSectors uint64
	SectorSize   uint32
	Cylinders    uint64
	Heads        uint32
	Sectors      uint32
	LBA          bool
}

const sectorsPerTrack = 63

// Geometry synthesizes legacy geometry for drive, or false when the drive
// does not resolve.
func (s *Store) Geometry(drive Drive) (Geometry, bool) {
	d := s.DeviceForDrive(drive)
	if d == nil {
		return Geometry{}, false
	}
	m := d.Media()

	g := Geometry{
		TotalSectors: m.LastBlock + 1,
		SectorSize:   m.BlockSize,
		Sectors:      sectorsPerTrack,
		LBA:          true,
	}
	if g.TotalSectors/sectorsPerTrack < 255 {
		g.Heads = 1
	} else {
		g.Heads = 255
	}
	g.Cylinders = g.TotalSectors / sectorsPerTrack / uint64(g.Heads)
	return g, true
}
