// Package chart draws the extracted figures as a PNG bar chart.
//
// Charts are built with gonum.org/v1/plot and rasterized with its vgimg
// backend, so rendering needs no system fonts or display.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/Kothajagadish22/Gemini-Finance-AI/financial"
	"github.com/Kothajagadish22/Gemini-Finance-AI/report"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 600

	dpi = 100
)

// Bar colors in field order: revenue growth, net profit, debt, cash flow.
var (
	Blue   = colornames.Blue
	Green  = colornames.Green
	Red    = colornames.Red
	Purple = colornames.Purple

	BarColors = []color.RGBA{Blue, Green, Red, Purple}
)

// Renderer saves charts into one directory.
type Renderer struct {
	dir    string
	width  int
	height int
}

// NewRenderer returns an 800x600 Renderer writing into dir.
func NewRenderer(dir string) *Renderer {
	if dir == "" {
		dir = "."
	}
	return &Renderer{dir: dir, width: DefaultWidth, height: DefaultHeight}
}

// Render draws fields and writes <dir>/<stem>_financial_summary.png,
// overwriting any existing file. Callers only render when fields.HasAny().
func (r *Renderer) Render(fields financial.Fields, stem string) (string, error) {
	c, err := r.canvas(fields, "Financial Summary - "+stem)
	if err != nil {
		return "", err
	}

	if r.dir != "." {
		if err := os.MkdirAll(r.dir, 0755); err != nil {
			return "", fmt.Errorf("create chart directory: %w", err)
		}
	}
	path := filepath.Join(r.dir, stem+report.ChartSuffix)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// Draw renders the chart in memory.
func (r *Renderer) Draw(fields financial.Fields, title string) (image.Image, error) {
	c, err := r.canvas(fields, title)
	if err != nil {
		return nil, err
	}
	return c.Image(), nil
}

func (r *Renderer) canvas(fields financial.Fields, title string) (*vgimg.Canvas, error) {
	p, err := Plot(fields, title)
	if err != nil {
		return nil, err
	}
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(r.width)*vg.Inch/dpi, vg.Length(r.height)*vg.Inch/dpi),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(c))
	return c, nil
}

// Plot builds the bar chart for fields: one bar per present figure, a value
// label above each slot ("n/a" for absent figures) and a dashed horizontal
// grid.
func Plot(fields financial.Fields, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Value"

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = colornames.Lightgray
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(grid)

	entries := fields.Entries()
	names := make([]string, len(entries))
	points := make(plotter.XYs, len(entries))
	values := make([]string, len(entries))

	for i, e := range entries {
		names[i] = e.Label
		points[i] = plotter.XY{X: float64(i)}
		values[i] = financial.FormatValue(e.Value)
		if !e.Present() {
			continue
		}
		points[i].Y = *e.Value

		bar, err := plotter.NewBarChart(plotter.Values{*e.Value}, vg.Points(60))
		if err != nil {
			return nil, fmt.Errorf("bar %q: %w", e.Label, err)
		}
		bar.XMin = float64(i)
		bar.Color = BarColors[i]
		bar.LineStyle.Width = 0
		p.Add(bar)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: values})
	if err != nil {
		return nil, fmt.Errorf("value labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = color.Black
		labels.TextStyle[i].XAlign = draw.XCenter
	}
	labels.Offset = vg.Point{Y: vg.Points(4)}
	p.Add(labels)

	p.NominalX(names...)
	p.Y.Min = 0
	if p.Y.Max <= 0 {
		p.Y.Max = 1
	}
	return p, nil
}
