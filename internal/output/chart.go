/*
PURPOSE:
  Renders the 2x2 comparison chart (throughput, loss, packets, data volume) as PNG.

REQUIREMENTS:
  User-specified:
  - One bar per configuration in each panel.
  - Chart generation can be skipped and must never abort the run.

  Implementation-discovered:
  - Configurations are the nominal X axis in name order.
  - gonum rejects NaN/Inf values; the error is returned to the caller.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (rendered into memory, then staged)
  - Dependencies: gonum.org/v1/plot

ERROR HANDLING:
  - ErrNoMetrics for an empty result set.
  - Panel errors are wrapped with the panel title.

IMPLEMENTATION RULES:
  - Render to an io.Writer; file handling belongs to output.Batch.

USAGE:
  err := output.RenderChart(&buf, results)

SELF-HEALING INSTRUCTIONS:
  - If labels overlap, lower ChartDPI or widen chartWidth.

RELATED FILES:
  - internal/engine/runner.go

MAINTENANCE:
  - Add a panel by appending to panels and growing the grid.
*/

package output

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/daryltucker/sca-analyzer/internal/model"
)

// ErrNoMetrics is returned when a chart is requested for zero configurations.
var ErrNoMetrics = errors.New("no metrics available for comparison")

const (
	chartWidth  = 15 * vg.Inch
	chartHeight = 12 * vg.Inch
)

// ChartDPI is the resolution of the PNG chart.
var ChartDPI = 150

type panel struct {
	title  string
	ylabel string
	color  color.Color
	value  func(model.MetricsRecord) float64
}

// Panels in row-major order of the 2x2 grid.
var panels = []panel{
	{
		title:  "Throughput Comparison",
		ylabel: "Throughput (Gbps)",
		color:  color.RGBA{135, 206, 235, 255},
		value:  func(m model.MetricsRecord) float64 { return m.ThroughputGbps },
	},
	{
		title:  "Packet Loss Rate",
		ylabel: "Packet Loss (%)",
		color:  color.RGBA{240, 128, 128, 255},
		value:  func(m model.MetricsRecord) float64 { return m.PacketLossRate },
	},
	{
		title:  "Traffic Volume (Packets)",
		ylabel: "Packets Sent",
		color:  color.RGBA{144, 238, 144, 255},
		value:  func(m model.MetricsRecord) float64 { return m.PacketsSent },
	},
	{
		title:  "Data Volume",
		ylabel: "Total Data (MB)",
		color:  color.RGBA{255, 215, 0, 255},
		value:  func(m model.MetricsRecord) float64 { return Megabytes(m.TotalBytes) },
	},
}

// RenderChart draws the 2x2 comparison chart as PNG to w.
func RenderChart(w io.Writer, results map[string]model.MetricsRecord) error {
	if len(results) == 0 {
		return ErrNoMetrics
	}
	names := model.Names(results)

	plots := [][]*plot.Plot{make([]*plot.Plot, 2), make([]*plot.Plot, 2)}
	for i, pn := range panels {
		p, err := barPlot(pn, names, results)
		if err != nil {
			return fmt.Errorf("%s: %w", pn.title, err)
		}
		plots[i/2][i%2] = p
	}

	img := vgimg.NewWith(vgimg.UseWH(chartWidth, chartHeight), vgimg.UseDPI(ChartDPI))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      2,
		PadX:      vg.Centimeter,
		PadY:      vg.Centimeter,
		PadTop:    vg.Centimeter / 2,
		PadBottom: vg.Centimeter / 2,
		PadLeft:   vg.Centimeter / 2,
		PadRight:  vg.Centimeter / 2,
	}

	canvases := plot.Align(plots, tiles, dc)
	for row := range plots {
		for col := range plots[row] {
			plots[row][col].Draw(canvases[row][col])
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	return nil
}

func barPlot(pn panel, names []string, results map[string]model.MetricsRecord) (*plot.Plot, error) {
	values := make(plotter.Values, len(names))
	for i, name := range names {
		values[i] = pn.value(results[name])
	}

	p := plot.New()
	p.Title.Text = pn.title
	p.Y.Label.Text = pn.ylabel

	bar, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, err
	}
	bar.Color = pn.color
	bar.LineStyle.Width = vg.Length(0)
	p.Add(bar)

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4

	return p, nil
}
