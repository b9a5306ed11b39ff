package color_table

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// hexToRGBA parses a #RRGGBB color string.
func hexToRGBA(hex string) (color.RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02X%02X%02X", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", hex, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func swatch(x, y float64, c color.RGBA) (*plotter.Polygon, error) {
	pts := plotter.XYs{
		{X: x, Y: y}, {X: x + 0.6, Y: y},
		{X: x + 0.6, Y: y + 0.6}, {X: x, Y: y + 0.6},
	}
	poly, err := plotter.NewPolygon(pts)
	if err != nil {
		return nil, err
	}
	poly.Color = c
	poly.LineStyle.Color = color.Black
	poly.LineStyle.Width = vg.Points(1)
	return poly, nil
}

// RenderPNG draws the color table with real swatches: one row per chain,
// native swatch on the left, prediction swatch on the right.
func RenderPNG(path string, scheme []ChainColor) error {
	p := plot.New()
	p.Title.Text = tableTitle
	p.HideAxes()

	labels := plotter.XYLabels{}
	addLabel := func(x, y float64, text string) {
		labels.XYs = append(labels.XYs, plotter.XY{X: x, Y: y})
		labels.Labels = append(labels.Labels, text)
	}

	addLabel(0, float64(len(scheme))+0.7, "Chain")
	addLabel(1, float64(len(scheme))+0.7, "Native")
	addLabel(3.5, float64(len(scheme))+0.7, "Boltz")

	for i, row := range scheme {
		y := float64(len(scheme) - 1 - i)

		nativeHex, ok := ColorHex[row.Native]
		if !ok {
			return fmt.Errorf("no hex mapping for color %q", row.Native)
		}
		boltzHex, ok := ColorHex[row.Boltz]
		if !ok {
			return fmt.Errorf("no hex mapping for color %q", row.Boltz)
		}

		nativeRGBA, err := hexToRGBA(nativeHex)
		if err != nil {
			return err
		}
		boltzRGBA, err := hexToRGBA(boltzHex)
		if err != nil {
			return err
		}

		nativeSwatch, err := swatch(1, y, nativeRGBA)
		if err != nil {
			return err
		}
		boltzSwatch, err := swatch(3.5, y, boltzRGBA)
		if err != nil {
			return err
		}
		p.Add(nativeSwatch, boltzSwatch)

		addLabel(0, y+0.2, row.Chain)
		addLabel(1.75, y+0.2, fmt.Sprintf("%s: %s", row.Native, row.NativeDesc))
		addLabel(4.25, y+0.2, fmt.Sprintf("%s: %s", row.Boltz, row.BoltzDesc))
	}

	labelPlotter, err := plotter.NewLabels(labels)
	if err != nil {
		return err
	}
	p.Add(labelPlotter)

	p.X.Min, p.X.Max = -0.5, 8
	p.Y.Min, p.Y.Max = -0.5, float64(len(scheme))+1.2

	return p.Save(10*vg.Inch, 5*vg.Inch, path)
}
