// Package grid implements the dense scalar lattices the sizing pipeline
// operates on: velocity samples in and target edge lengths out.
//
// A Grid is logically (nz, nx) in 2D or (nz, nx, ny) in 3D but is always
// addressed as a 3D lattice; 2D grids fix ny = 1 and iy = 0. Index 0 along
// the z axis is the deepest row, so the free surface sits at iz = nz-1.
package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Grid is a dense float64 lattice stored flat in (iz, ix, iy) order with
// iy varying fastest.
type Grid struct {
	dim        int
	nz, nx, ny int
	data       []float64
}

// New allocates a zero-valued grid. dim must be 2 or 3; ny is ignored for
// 2D grids.
func New(dim, nz, nx, ny int) (*Grid, error) {
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("grid dim must be 2 or 3, got %d", dim)
	}
	if nz <= 0 || nx <= 0 {
		return nil, fmt.Errorf("grid shape must be positive, got nz=%d nx=%d", nz, nx)
	}
	if dim == 2 {
		ny = 1
	} else if ny <= 0 {
		return nil, fmt.Errorf("3D grid needs ny > 0, got %d", ny)
	}
	return &Grid{
		dim: dim,
		nz:  nz, nx: nx, ny: ny,
		data: make([]float64, nz*nx*ny),
	}, nil
}

// Dim reports 2 or 3.
func (g *Grid) Dim() int { return g.dim }

// Nz returns the node count along the depth axis.
func (g *Grid) Nz() int { return g.nz }

// Nx returns the node count along the first lateral axis.
func (g *Grid) Nx() int { return g.nx }

// Ny returns the node count along the second lateral axis (1 for 2D).
func (g *Grid) Ny() int { return g.ny }

// Len is the total node count.
func (g *Grid) Len() int { return len(g.data) }

// Data exposes the backing slice. Callers must not change its length.
func (g *Grid) Data() []float64 { return g.data }

func (g *Grid) index(iz, ix, iy int) int {
	return (iz*g.nx+ix)*g.ny + iy
}

// At returns the value at (iz, ix, iy). Pass iy = 0 for 2D grids.
func (g *Grid) At(iz, ix, iy int) float64 {
	return g.data[g.index(iz, ix, iy)]
}

// Set stores v at (iz, ix, iy).
func (g *Grid) Set(iz, ix, iy int, v float64) {
	g.data[g.index(iz, ix, iy)] = v
}

// Fill sets every node to v.
func (g *Grid) Fill(v float64) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Min returns the smallest node value.
func (g *Grid) Min() float64 { return floats.Min(g.data) }

// Max returns the largest node value.
func (g *Grid) Max() float64 { return floats.Max(g.data) }

// Clamp limits every node to [lo, hi].
func (g *Grid) Clamp(lo, hi float64) {
	for i, v := range g.data {
		if v < lo {
			g.data[i] = lo
		} else if v > hi {
			g.data[i] = hi
		}
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := &Grid{dim: g.dim, nz: g.nz, nx: g.nx, ny: g.ny, data: make([]float64, len(g.data))}
	copy(out.data, g.data)
	return out
}
