package velocity

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/seismic-data/meshsize/grid"
)

// ErrUnsupportedFormat is returned when the file extension is neither
// .segy nor .bin. The pipeline cannot proceed without velocity data, so
// callers should treat this as fatal for the run.
var ErrUnsupportedFormat = errors.New("velocity: unsupported model format")

// ReadOptions configures ingestion of a raw binary source. SEG-Y files
// carry their own geometry, so only Units applies to them.
type ReadOptions struct {
	// Grid resolution, required for .bin sources (Ny only in 3D).
	Nz, Nx, Ny int
	// ByteOrder of .bin sample data.
	ByteOrder Endianness
	// Units declared for the source values.
	Units Unit
}

// Read loads a velocity model, dispatching on the file extension:
// .segy for 2D trace data, .bin for raw Fortran-ordered float32 volumes.
// Values are normalised to m/s before the model is returned.
func Read(path string, opts ReadOptions) (*Model, error) {
	var (
		vp  *grid.Grid
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".segy":
		log.Printf("velocity: reading SEG-Y file %s", path)
		vp, err = readSEGY(path)
	case ".bin":
		log.Printf("velocity: reading binary file %s", path)
		vp, err = readBin(path, opts)
	default:
		return nil, fmt.Errorf("%w: %q (want .segy or .bin)", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	if opts.Units == KilometersPerSecond {
		log.Printf("velocity: converting model velocities to m/s")
		data := vp.Data()
		for i := range data {
			data[i] *= 1000
		}
	}

	m := &Model{VP: vp, Source: path, Units: opts.Units}
	m.checkRange()
	return m, nil
}

// readBin reads a 3D volume of float32 samples in Fortran order (x varies
// fastest, then y, then z) with the declared byte order.
func readBin(path string, opts ReadOptions) (*grid.Grid, error) {
	if opts.Nz <= 0 || opts.Nx <= 0 || opts.Ny <= 0 {
		return nil, fmt.Errorf("velocity: binary source %s needs nz, nx and ny", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("velocity: reading %s: %w", path, err)
	}
	want := 4 * opts.Nz * opts.Nx * opts.Ny
	if len(raw) != want {
		return nil, fmt.Errorf("velocity: %s holds %d bytes, want %d for (%d,%d,%d) float32",
			path, len(raw), want, opts.Nz, opts.Nx, opts.Ny)
	}

	vp, err := grid.New(3, opts.Nz, opts.Nx, opts.Ny)
	if err != nil {
		return nil, err
	}
	order := opts.ByteOrder.ByteOrder()
	for n := 0; n < opts.Nz*opts.Nx*opts.Ny; n++ {
		v := math.Float32frombits(order.Uint32(raw[4*n:]))
		ix := n % opts.Nx
		iy := (n / opts.Nx) % opts.Ny
		iz := n / (opts.Nx * opts.Ny)
		vp.Set(iz, ix, iy, float64(v))
	}
	return vp, nil
}
