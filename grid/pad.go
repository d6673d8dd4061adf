package grid

import (
	"errors"
	"fmt"
)

// ErrPadStyle3D is returned when a 3D grid is padded with anything other
// than PadEdge.
var ErrPadStyle3D = errors.New("grid: only edge padding is supported for 3D grids")

// Pad returns a new grid grown by deep nodes on the deep side of the z
// axis and by lateral nodes on both sides of each lateral axis. The free
// surface side of the z axis is never padded. Constant and linear-ramp
// fills target the pre-extension maximum value.
func (g *Grid) Pad(deep, lateral int, style PadStyle) (*Grid, error) {
	if deep < 0 || lateral < 0 {
		return nil, fmt.Errorf("grid: negative pad counts deep=%d lateral=%d", deep, lateral)
	}
	if g.dim == 3 && style != PadEdge {
		return nil, ErrPadStyle3D
	}

	// Axes are padded one at a time so that ramp and edge fills in the
	// corners pick up values from the previously padded axis, matching
	// sequential array padding.
	mx := g.Max()
	out := g.padAxis(0, deep, 0, style, mx)
	out = out.padAxis(1, lateral, lateral, style, mx)
	if g.dim == 3 {
		out = out.padAxis(2, lateral, lateral, style, mx)
	}
	return out, nil
}

// padAxis grows one axis by before nodes at index 0 and after nodes at the
// high end. mx is the fill target for constant and ramp styles.
func (g *Grid) padAxis(axis, before, after int, style PadStyle, mx float64) *Grid {
	if before == 0 && after == 0 {
		return g
	}

	nz, nx, ny := g.nz, g.nx, g.ny
	switch axis {
	case 0:
		nz += before + after
	case 1:
		nx += before + after
	case 2:
		ny += before + after
	}
	out := &Grid{dim: g.dim, nz: nz, nx: nx, ny: ny, data: make([]float64, nz*nx*ny)}

	n := [3]int{g.nz, g.nx, g.ny}
	for iz := 0; iz < nz; iz++ {
		for ix := 0; ix < nx; ix++ {
			for iy := 0; iy < ny; iy++ {
				src := [3]int{iz, ix, iy}
				src[axis] -= before

				// Distance into the pad along this axis; 0 means the
				// node maps straight onto the source grid.
				dist, padLen := 0, 0
				if src[axis] < 0 {
					dist, padLen = -src[axis], before
					src[axis] = 0
				} else if src[axis] > n[axis]-1 {
					dist, padLen = src[axis]-(n[axis]-1), after
					src[axis] = n[axis] - 1
				}

				v := g.At(src[0], src[1], src[2])
				if dist > 0 {
					switch style {
					case PadConstant:
						v = mx
					case PadLinearRamp:
						v += (mx - v) * float64(dist) / float64(padLen)
					}
				}
				out.Set(iz, ix, iy, v)
			}
		}
	}
	return out
}
