package velocity

import (
	"log"

	"github.com/seismic-data/meshsize/grid"
)

// Sanity bounds for P-wave velocities in m/s. Values outside this range
// usually mean the units tag is wrong.
const (
	saneMinVp = 1000.0
	saneMaxVp = 10000.0
)

// Model is an immutable velocity volume in metres per second. The grid is
// (nz, nx) for 2D sources and (nz, nx, ny) for 3D, with the deepest row at
// iz = 0.
type Model struct {
	VP     *grid.Grid
	Source string // path the model was read from
	Units  Unit   // unit tag declared at ingestion; VP is always m/s
}

// checkRange warns when the velocity range looks implausible for the
// declared units. The data is used as given either way.
func (m *Model) checkRange() {
	if min := m.VP.Min(); min < saneMinVp {
		log.Printf("velocity: min velocity %.1f m/s is below %.0f; units may be incorrect", min, saneMinVp)
	}
	if max := m.VP.Max(); max > saneMaxVp {
		log.Printf("velocity: max velocity %.1f m/s is above %.0f; units may be incorrect", max, saneMaxVp)
	}
}
