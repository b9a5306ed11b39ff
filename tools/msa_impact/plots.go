package msa_impact

import (
	"bytes"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// GenerateImpactBarChartSVG renders the top-level percentage differences as
// a bar chart. Infinite bars are clamped to 0 so a single zero baseline does
// not blow up the axis.
func GenerateImpactBarChartSVG(diffs []MetricDiff) (string, error) {
	p := plot.New()
	p.Title.Text = "Impact of MSA on Confidence Metrics"
	p.Y.Label.Text = "Change (%)"

	values := make(plotter.Values, len(diffs))
	names := make([]string, len(diffs))
	for i, d := range diffs {
		v := d.Pct
		if math.IsInf(v, 0) || math.IsNaN(v) {
			v = 0
		}
		values[i] = v
		names[i] = d.Metric
	}

	bars, err := plotter.NewBarChart(values, vg.Points(25))
	if err != nil {
		return "", err
	}
	bars.Color = color.RGBA{R: 50, G: 100, B: 200, A: 255}
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = -1
	p.X.Tick.Label.YAlign = -0.5

	var buf bytes.Buffer
	writer, err := p.WriterTo(10*vg.Inch, 4*vg.Inch, "svg")
	if err != nil {
		return "", err
	}
	if _, err := writer.WriteTo(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
