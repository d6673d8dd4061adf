// Package geometry provides the rectangular domain descriptor and the
// signed-distance functions handed to the mesh generator.
//
// Points follow the grid axis convention used across this module:
// p[0] is depth (z, negative below the free surface), p[1] is the first
// lateral axis (x) and p[2], when present, the second lateral axis (y).
package geometry

import "fmt"

// Box is a validated 2D rectangle or 3D block described by ordered bounds.
// Construct one with NewBox; treat the value as immutable afterwards.
// Transformations such as Extend return a new Box.
type Box struct {
	ZMin, ZMax float64
	XMin, XMax float64
	YMin, YMax float64 // populated only when Dim == 3

	dim int
}

// NewBox builds a Box from 4 bounds (zmin, zmax, xmin, xmax) or 6 bounds
// (zmin, zmax, xmin, xmax, ymin, ymax). Each low bound must be strictly
// below its high bound.
func NewBox(bounds ...float64) (Box, error) {
	if len(bounds) != 4 && len(bounds) != 6 {
		return Box{}, fmt.Errorf("bbox needs 4 or 6 values, got %d", len(bounds))
	}
	for i := 0; i < len(bounds); i += 2 {
		if bounds[i] >= bounds[i+1] {
			return Box{}, fmt.Errorf("bbox bounds out of order: [%g, %g]", bounds[i], bounds[i+1])
		}
	}
	b := Box{
		ZMin: bounds[0], ZMax: bounds[1],
		XMin: bounds[2], XMax: bounds[3],
		dim: 2,
	}
	if len(bounds) == 6 {
		b.YMin, b.YMax = bounds[4], bounds[5]
		b.dim = 3
	}
	return b, nil
}

// Dim reports the dimensionality of the box, 2 or 3.
func (b Box) Dim() int { return b.dim }

// Depth is the extent along the z axis.
func (b Box) Depth() float64 { return b.ZMax - b.ZMin }

// Width is the extent along the x axis.
func (b Box) Width() float64 { return b.XMax - b.XMin }

// Length is the extent along the y axis. Zero for 2D boxes.
func (b Box) Length() float64 { return b.YMax - b.YMin }

// Bounds returns the bounds in constructor order.
func (b Box) Bounds() []float64 {
	if b.dim == 3 {
		return []float64{b.ZMin, b.ZMax, b.XMin, b.XMax, b.YMin, b.YMax}
	}
	return []float64{b.ZMin, b.ZMax, b.XMin, b.XMax}
}

// Extend returns a new Box grown by w metres for an absorbing boundary
// layer. The depth axis grows on the deep side only (the free surface at
// ZMax stays put); lateral axes grow symmetrically on both sides.
func (b Box) Extend(w float64) Box {
	out := b
	out.ZMin -= w
	out.XMin -= w
	out.XMax += w
	if b.dim == 3 {
		out.YMin -= w
		out.YMax += w
	}
	return out
}

// Contains reports whether p lies inside or on the boundary of the box.
func (b Box) Contains(p []float64) bool {
	if len(p) < b.dim {
		return false
	}
	if p[0] < b.ZMin || p[0] > b.ZMax || p[1] < b.XMin || p[1] > b.XMax {
		return false
	}
	if b.dim == 3 && (p[2] < b.YMin || p[2] > b.YMax) {
		return false
	}
	return true
}
