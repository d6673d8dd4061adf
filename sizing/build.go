package sizing

import (
	"errors"
	"fmt"
	"log"

	"github.com/seismic-data/meshsize/geometry"
	"github.com/seismic-data/meshsize/grid"
	"github.com/seismic-data/meshsize/velocity"
)

// ErrNotPositive reports a sizing field that failed the strict-positivity
// postcondition. A field with non-positive edge lengths cannot be handed
// to a mesh generator.
var ErrNotPositive = errors.New("sizing: edge size function must be strictly positive")

// Build runs the sizing pipeline: raw size grid from velocity and
// constraints, optional gradation limiting, optional absorbing-boundary
// extension, then the continuous samplers. The returned SizeFunction owns
// its buffers; the model is not modified.
func Build(m *velocity.Model, opts Options) (*SizeFunction, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	vp := m.VP
	if vp.Dim() != opts.Bbox.Dim() {
		return nil, fmt.Errorf("sizing: %dD velocity model in a %dD bbox", vp.Dim(), opts.Bbox.Dim())
	}

	spacing := opts.Bbox.Width() / float64(vp.Nx())

	h, err := buildRaw(vp, opts)
	if err != nil {
		return nil, err
	}

	if opts.Grade > 0 {
		log.Printf("sizing: enforcing mesh gradation of %g", opts.Grade)
		sweeps, converged := limitGradation(h, spacing, opts.Grade, opts.MaxSweeps)
		if !converged {
			log.Printf("sizing: gradation limiting did not converge within %d sweeps; returning best effort", sweeps)
		}
	}

	box := opts.Bbox
	if opts.DomainExt > 0 {
		box, h, err = extendDomain(box, h, spacing, opts)
		if err != nil {
			return nil, err
		}
	}

	return newSizeFunction(box, h)
}

// buildRaw derives the target edge length at every velocity node:
// hmin floor, wavelength-resolution rule, hmin/hmax clamp, then the
// CFL-stability rule. wl = 0 and dt = 0 are valid disabled states.
func buildRaw(vp *grid.Grid, opts Options) (*grid.Grid, error) {
	h, err := grid.New(vp.Dim(), vp.Nz(), vp.Nx(), vp.Ny())
	if err != nil {
		return nil, err
	}
	h.Fill(opts.Hmin)

	hd, vd := h.Data(), vp.Data()
	if opts.WL > 0 {
		log.Printf("sizing: resolving wavelengths at %g Hz with %g nodes each", opts.Freq, opts.WL)
		for i, v := range vd {
			hd[i] = v / (opts.Freq * opts.WL)
		}
	}

	h.Clamp(opts.Hmin, opts.Hmax)

	if opts.DT > 0 {
		log.Printf("sizing: enforcing a timestep of %g s at Courant number %g", opts.DT, opts.CrMax)
		for i, v := range vd {
			if cr := v * opts.DT / hd[i]; cr > opts.CrMax {
				hd[i] = v * opts.DT / opts.CrMax
			}
		}
	}

	if min := h.Min(); min <= 0 {
		return nil, fmt.Errorf("%w: min value %g", ErrNotPositive, min)
	}
	return h, nil
}

// extendDomain pads the sizing grid and grows the bounding box for an
// absorbing boundary layer, returning the new descriptors. The incoming
// box and grid are left untouched on error.
func extendDomain(box geometry.Box, h *grid.Grid, spacing float64, opts Options) (geometry.Box, *grid.Grid, error) {
	pad := int(opts.DomainExt / spacing)
	log.Printf("sizing: including a %g m domain extension (%d nodes, %s padding)",
		opts.DomainExt, pad, opts.PadStyle)

	padded, err := h.Pad(pad, pad, opts.PadStyle)
	if err != nil {
		return box, h, fmt.Errorf("sizing: domain extension: %w", err)
	}
	// Padding toward the domain maximum may overshoot a finite hmax.
	padded.Clamp(opts.Hmin, opts.Hmax)
	return box.Extend(opts.DomainExt), padded, nil
}
