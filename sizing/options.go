// Package sizing builds an isotropic mesh-sizing function and a domain
// boundary function from a velocity model, for consumption by an
// unstructured mesh generator. The pipeline derives a raw grid of target
// edge lengths from physical and numerical constraints, optionally limits
// its spatial gradation, optionally extends the domain with an absorbing
// boundary layer, and exposes the result as continuous query functions.
package sizing

import (
	"fmt"
	"math"

	"github.com/seismic-data/meshsize/geometry"
	"github.com/seismic-data/meshsize/grid"
)

// Defaults applied by Build for fields left at their zero value.
const (
	DefaultFreq      = 5.0
	DefaultCrMax     = 0.2
	DefaultMaxSweeps = 10000
)

// Options configures one sizing-function build. Fill in the fields, hand
// the value to Build and do not mutate it afterwards; Build validates
// every invariant up front and never writes back.
type Options struct {
	// Bbox is the domain extent before any extension.
	Bbox geometry.Box

	// Hmin is the minimum edge length in metres. Required, > 0.
	Hmin float64
	// Hmax is the maximum edge length. Zero means unbounded.
	Hmax float64

	// WL enables the wavelength-resolution rule when > 0: edge lengths
	// resolve the local wavelength at Freq with WL nodes.
	WL   float64
	Freq float64 // maximum source frequency in Hz; defaults to 5

	// DT enables the CFL-stability rule when > 0: edge lengths grow where
	// the Courant number at timestep DT would exceed CrMax.
	DT    float64
	CrMax float64 // defaults to 0.2

	// Grade bounds the change of edge length per metre between adjacent
	// nodes. Zero disables gradation limiting.
	Grade float64
	// MaxSweeps caps the gradation relaxation; defaults to 10000.
	MaxSweeps int

	// DomainExt is the absorbing-boundary extension width in metres.
	DomainExt float64
	// PadStyle governs how extended nodes are filled.
	PadStyle grid.PadStyle
}

// withDefaults returns a copy with zero-valued optional fields replaced by
// their documented defaults.
func (o Options) withDefaults() Options {
	if o.Hmax == 0 {
		o.Hmax = math.Inf(1)
	}
	if o.Freq == 0 {
		o.Freq = DefaultFreq
	}
	if o.CrMax == 0 {
		o.CrMax = DefaultCrMax
	}
	if o.MaxSweeps == 0 {
		o.MaxSweeps = DefaultMaxSweeps
	}
	return o
}

// Validate checks every construction-time invariant. Build calls this
// after applying defaults; callers may use it directly for fail-fast
// configuration checks.
func (o Options) Validate() error {
	if d := o.Bbox.Dim(); d != 2 && d != 3 {
		return fmt.Errorf("sizing: bbox is unset; construct it with geometry.NewBox")
	}
	if o.Hmin <= 0 {
		return fmt.Errorf("sizing: hmin must be > 0, got %g", o.Hmin)
	}
	if o.Hmax != 0 && o.Hmax < o.Hmin {
		return fmt.Errorf("sizing: hmax %g is below hmin %g", o.Hmax, o.Hmin)
	}
	if o.WL < 0 {
		return fmt.Errorf("sizing: wl must be >= 0, got %g", o.WL)
	}
	if o.WL > 0 && o.Freq < 0 {
		return fmt.Errorf("sizing: freq must be > 0 when wl is set, got %g", o.Freq)
	}
	if o.DT < 0 {
		return fmt.Errorf("sizing: dt must be >= 0, got %g", o.DT)
	}
	if o.DT > 0 && o.CrMax < 0 {
		return fmt.Errorf("sizing: cr_max must be > 0 when dt is set, got %g", o.CrMax)
	}
	if o.Grade < 0 {
		return fmt.Errorf("sizing: grade must be >= 0, got %g", o.Grade)
	}
	if o.DomainExt < 0 {
		return fmt.Errorf("sizing: domain_ext must be >= 0, got %g", o.DomainExt)
	}
	if o.MaxSweeps < 0 {
		return fmt.Errorf("sizing: max sweeps must be >= 0, got %d", o.MaxSweeps)
	}
	return nil
}
