package sizing

import (
	"math"

	"github.com/seismic-data/meshsize/grid"
)

// limitGradation relaxes the sizing grid until every pair of
// lattice-adjacent nodes satisfies |h(a) - h(b)| <= grade * elen, where
// elen is the nodal spacing. Values are only ever reduced, so clamp
// bounds established earlier are never reopened upward.
//
// Sweeps alternate between forward and reverse raster order; the
// Gauss-Seidel style update (each pair sees values already relaxed this
// sweep) converges much faster than single-direction passes. A sweep that
// changes no value by more than a small tolerance ends the iteration;
// otherwise it stops after imax sweeps and reports converged = false,
// leaving a best-effort field.
func limitGradation(h *grid.Grid, elen, grade float64, imax int) (sweeps int, converged bool) {
	nz, nx, ny := h.Nz(), h.Nx(), h.Ny()
	data := h.Data()

	// Strides for the +y, +x and +z lattice neighbours of a flat index.
	sy, sx, sz := 1, ny, nx*ny

	bound := grade * elen
	tol := math.Sqrt(2.220446049250313e-16) * h.Min()

	// relax clips the larger of a pair down to the smaller plus the
	// allowed rise, returning the change made.
	relax := func(i, j int) float64 {
		a, b := data[i], data[j]
		switch {
		case a > b+bound:
			data[i] = b + bound
			return a - data[i]
		case b > a+bound:
			data[j] = a + bound
			return b - data[j]
		}
		return 0
	}

	for sweeps = 1; sweeps <= imax; sweeps++ {
		maxChange := 0.0
		visit := func(iz, ix, iy int) {
			i := (iz*nx+ix)*ny + iy
			if iy+1 < ny {
				if c := relax(i, i+sy); c > maxChange {
					maxChange = c
				}
			}
			if ix+1 < nx {
				if c := relax(i, i+sx); c > maxChange {
					maxChange = c
				}
			}
			if iz+1 < nz {
				if c := relax(i, i+sz); c > maxChange {
					maxChange = c
				}
			}
		}

		if sweeps%2 == 1 {
			for iz := 0; iz < nz; iz++ {
				for ix := 0; ix < nx; ix++ {
					for iy := 0; iy < ny; iy++ {
						visit(iz, ix, iy)
					}
				}
			}
		} else {
			for iz := nz - 1; iz >= 0; iz-- {
				for ix := nx - 1; ix >= 0; ix-- {
					for iy := ny - 1; iy >= 0; iy-- {
						visit(iz, ix, iy)
					}
				}
			}
		}

		if maxChange <= tol {
			return sweeps, true
		}
	}
	return imax, false
}
