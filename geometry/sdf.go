package geometry

import "math"

// DRectangle evaluates the signed distance from p to the boundary of a 2D
// box: negative inside, zero on the boundary, positive outside. The value
// is the face-distance form used for rectangular domains; it is exact on
// the faces and inside, and a usable lower bound outside the corners.
func DRectangle(p []float64, b Box) float64 {
	d := math.Min(p[0]-b.ZMin, b.ZMax-p[0])
	d = math.Min(d, p[1]-b.XMin)
	d = math.Min(d, b.XMax-p[1])
	return -d
}

// DBlock is the 3D analogue of DRectangle for a rectangular block.
func DBlock(p []float64, b Box) float64 {
	d := math.Min(p[0]-b.ZMin, b.ZMax-p[0])
	d = math.Min(d, p[1]-b.XMin)
	d = math.Min(d, b.XMax-p[1])
	d = math.Min(d, p[2]-b.YMin)
	d = math.Min(d, b.YMax-p[2])
	return -d
}
