package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/seismic-data/meshsize/sizing"
)

// viridis mirrors the colour ramp used across our chart pages.
var viridis = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// HeatmapHTML renders an interactive heatmap of the sizing field to w.
// stride downsamples both axes to keep the page responsive for large
// grids; values below 1 mean no downsampling.
func HeatmapHTML(w io.Writer, sf *sizing.SizeFunction, stride int) error {
	if stride < 1 {
		stride = 1
	}
	field := sf.Field()
	zv, xv, _ := sf.Coords()

	xLabels := make([]string, 0, field.Nx()/stride+1)
	for ix := 0; ix < field.Nx(); ix += stride {
		xLabels = append(xLabels, fmt.Sprintf("%.0f", xv[ix]))
	}
	yLabels := make([]string, 0, field.Nz()/stride+1)
	data := make([]opts.HeatMapData, 0, len(xLabels)*(field.Nz()/stride+1))
	for r, iz := 0, 0; iz < field.Nz(); r, iz = r+1, iz+stride {
		yLabels = append(yLabels, fmt.Sprintf("%.0f", zv[iz]))
		for c, ix := 0, 0; ix < field.Nx(); c, ix = c+1, ix+stride {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{c, r, field.At(iz, ix, 0)}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Mesh sizes", Width: "900px", Height: "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Isotropic mesh sizes",
			Subtitle: fmt.Sprintf("grid=%dx%d stride=%d", field.Nz(), field.Nx(), stride),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "x (m)", Data: xLabels}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "z (m)", Data: yLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(field.Min()),
			Max:        float32(field.Max()),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	hm.SetXAxis(xLabels).AddSeries("mesh size (m)", data)

	if err := hm.Render(w); err != nil {
		return fmt.Errorf("render: heatmap html: %w", err)
	}
	return nil
}
