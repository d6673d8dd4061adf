// Package render draws the sizing field for visual inspection: an
// interactive HTML heatmap via go-echarts and a static PNG via gonum
// plot. For 3D fields both renderers show the iy = 0 slice.
package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/seismic-data/meshsize/sizing"
)

// sizeGrid adapts a sizing field to plotter.GridXYZ: columns run along
// the lateral axis, rows along depth.
type sizeGrid struct {
	sf *sizing.SizeFunction
}

func (g sizeGrid) Dims() (c, r int) {
	return g.sf.Field().Nx(), g.sf.Field().Nz()
}

func (g sizeGrid) Z(c, r int) float64 {
	return g.sf.Field().At(r, c, 0)
}

func (g sizeGrid) X(c int) float64 {
	_, xv, _ := g.sf.Coords()
	return xv[c]
}

func (g sizeGrid) Y(r int) float64 {
	zv, _, _ := g.sf.Coords()
	return zv[r]
}

// HeatmapPNG writes a static heatmap of the sizing field to path.
func HeatmapPNG(path string, sf *sizing.SizeFunction) error {
	p := plot.New()
	p.Title.Text = "Isotropic mesh sizes"
	p.X.Label.Text = "x-direction (m)"
	p.Y.Label.Text = "z-direction (m)"

	hm := plotter.NewHeatMap(sizeGrid{sf}, palette.Heat(16, 1))
	p.Add(hm)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("render: save heatmap %s: %w", path, err)
	}
	return nil
}
