package sizing

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/seismic-data/meshsize/geometry"
	"github.com/seismic-data/meshsize/grid"
)

// SizeFunction is the pipeline result: a continuous edge-length evaluator
// and a signed-distance evaluator over the (possibly extended) domain.
// Values are immutable once built, so both evaluators are pure and safe
// for concurrent use by the mesh generator.
type SizeFunction struct {
	box geometry.Box
	h   *grid.Grid

	// Node coordinates per axis: zv spans [ZMin, ZMax] with the deepest
	// node first, matching the grid layout.
	zv, xv, yv []float64
}

func newSizeFunction(box geometry.Box, h *grid.Grid) (*SizeFunction, error) {
	sf := &SizeFunction{
		box: box,
		h:   h,
		zv:  linspace(box.ZMin, box.ZMax, h.Nz()),
		xv:  linspace(box.XMin, box.XMax, h.Nx()),
	}
	if box.Dim() == 3 {
		sf.yv = linspace(box.YMin, box.YMax, h.Ny())
	}
	return sf, nil
}

func linspace(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Box returns the final bounding box, including any domain extension.
func (sf *SizeFunction) Box() geometry.Box { return sf.box }

// Field returns the final sizing grid. Callers must not modify it.
func (sf *SizeFunction) Field() *grid.Grid { return sf.h }

// Coords returns the per-axis node coordinate vectors (yv is nil in 2D).
// Callers must not modify them.
func (sf *SizeFunction) Coords() (zv, xv, yv []float64) { return sf.zv, sf.xv, sf.yv }

// Fh evaluates the target edge length at p = (z, x) or (z, x, y) by
// multilinear interpolation. Points outside the sampled box clamp to the
// nearest boundary data rather than failing.
func (sf *SizeFunction) Fh(p []float64) float64 {
	iz, fz := locate(sf.zv, p[0])
	ix, fx := locate(sf.xv, p[1])
	if sf.box.Dim() == 2 {
		v00 := sf.h.At(iz, ix, 0)
		v01 := sf.h.At(iz, min(ix+1, sf.h.Nx()-1), 0)
		v10 := sf.h.At(min(iz+1, sf.h.Nz()-1), ix, 0)
		v11 := sf.h.At(min(iz+1, sf.h.Nz()-1), min(ix+1, sf.h.Nx()-1), 0)
		return lerp(lerp(v00, v01, fx), lerp(v10, v11, fx), fz)
	}

	iy, fy := locate(sf.yv, p[2])
	iz1 := min(iz+1, sf.h.Nz()-1)
	ix1 := min(ix+1, sf.h.Nx()-1)
	iy1 := min(iy+1, sf.h.Ny()-1)
	c00 := lerp(sf.h.At(iz, ix, iy), sf.h.At(iz, ix, iy1), fy)
	c01 := lerp(sf.h.At(iz, ix1, iy), sf.h.At(iz, ix1, iy1), fy)
	c10 := lerp(sf.h.At(iz1, ix, iy), sf.h.At(iz1, ix, iy1), fy)
	c11 := lerp(sf.h.At(iz1, ix1, iy), sf.h.At(iz1, ix1, iy1), fy)
	return lerp(lerp(c00, c01, fx), lerp(c10, c11, fx), fz)
}

// Fd evaluates the signed distance from p to the domain boundary:
// negative inside, zero on the boundary, positive outside.
func (sf *SizeFunction) Fd(p []float64) float64 {
	if sf.box.Dim() == 2 {
		return geometry.DRectangle(p, sf.box)
	}
	return geometry.DBlock(p, sf.box)
}

// locate finds the lower cell index and in-cell fraction for v on a
// uniformly spaced coordinate vector, clamping out-of-range queries onto
// the boundary cell.
func locate(vec []float64, v float64) (int, float64) {
	n := len(vec)
	if n == 1 {
		return 0, 0
	}
	step := (vec[n-1] - vec[0]) / float64(n-1)
	t := (v - vec[0]) / step
	if t <= 0 {
		return 0, 0
	}
	if t >= float64(n-1) {
		return n - 2, 1
	}
	i := int(math.Floor(t))
	return i, t - float64(i)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
