// Package diagram draws bending moment and shear force diagrams for a simply
// supported beam under uniform load.
package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"CivilBot/internal/calc/materials"
)

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
	PDF Format = "pdf"
)

var ErrUnknownFormat = errors.New("unknown diagram format")

// ParseFormat accepts png, svg or pdf; empty means png.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case "":
		return PNG, nil
	case PNG, SVG, PDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType is the MIME type of a rendered diagram.
func (f Format) ContentType() string {
	switch f {
	case SVG:
		return "image/svg+xml"
	case PDF:
		return "application/pdf"
	default:
		return "image/png"
	}
}

// Samples is the number of stations along the span.
const Samples = 41

var (
	width  = 8 * vg.Inch
	height = 6 * vg.Inch
)

// Moment is the bending moment in kN·m at x metres from the left support.
func Moment(spanM, udl, x float64) float64 { return udl * x * (spanM - x) / 2 }

// Shear is the shear force in kN at x metres from the left support.
func Shear(spanM, udl, x float64) float64 { return udl * (spanM/2 - x) }

// Sample evaluates moment and shear at n evenly spaced stations including
// both supports.
func Sample(spanM, udl float64, n int) (moment, shear plotter.XYs) {
	if n < 2 {
		n = 2
	}
	moment = make(plotter.XYs, n)
	shear = make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		x := spanM * float64(i) / float64(n-1)
		moment[i] = plotter.XY{X: x, Y: Moment(spanM, udl, x)}
		shear[i] = plotter.XY{X: x, Y: Shear(spanM, udl, x)}
	}
	return moment, shear
}

// Plots builds the bending moment plot above the shear force plot.
func Plots(spanM, udl float64) ([]*plot.Plot, error) {
	if err := materials.Positive(
		materials.Field{Name: "span_m", Value: spanM},
		materials.Field{Name: "udl_kn_m", Value: udl},
	); err != nil {
		return nil, err
	}
	moment, shear := Sample(spanM, udl, Samples)

	bmd, err := curve("Bending Moment Diagram", "M (kN·m)", moment,
		color.RGBA{R: 0, G: 0, B: 139, A: 255}, color.RGBA{R: 100, G: 149, B: 237, A: 150})
	if err != nil {
		return nil, err
	}
	bmd.Y.Min = 0
	peak := Moment(spanM, udl, spanM/2)
	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: spanM / 2, Y: peak}},
		Labels: []string{fmt.Sprintf("wL²/8 = %.2f kN·m", peak)},
	})
	if err != nil {
		return nil, err
	}
	bmd.Add(lbl)

	sfd, err := curve("Shear Force Diagram", "V (kN)", shear,
		color.RGBA{R: 139, G: 0, B: 0, A: 255}, color.RGBA{R: 240, G: 128, B: 128, A: 150})
	if err != nil {
		return nil, err
	}
	sfd.X.Label.Text = "x (m)"
	axis, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: spanM, Y: 0}})
	if err != nil {
		return nil, err
	}
	axis.LineStyle.Color = color.Gray{Y: 128}
	axis.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	sfd.Add(axis)

	return []*plot.Plot{bmd, sfd}, nil
}

func curve(title, ylabel string, pts plotter.XYs, stroke, fill color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Width = vg.Points(2)
	l.LineStyle.Color = stroke
	l.FillColor = fill
	p.Add(l)
	return p, nil
}

// Write renders both diagrams stacked on one page in format f.
func Write(w io.Writer, spanM, udl float64, f Format) error {
	plots, err := Plots(spanM, udl)
	if err != nil {
		return err
	}

	var (
		canvas vg.CanvasSizer
		out    io.WriterTo
	)
	switch f {
	case SVG:
		c := vgsvg.New(width, height)
		canvas, out = c, c
	case PDF:
		c := vgpdf.New(width, height)
		canvas, out = c, c
	case PNG, "":
		c := vgimg.New(width, height)
		canvas, out = c, vgimg.PngCanvas{Canvas: c}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	grid := [][]*plot.Plot{{plots[0]}, {plots[1]}}
	canvases := plot.Align(grid, tiles, draw.New(canvas))
	for i := range grid {
		grid[i][0].Draw(canvases[i][0])
	}

	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("write %s diagram: %w", f, err)
	}
	return nil
}

// Save writes the diagrams to filename, choosing the format from its
// extension. A name without a known extension gets ".png" appended.
func Save(filename string, spanM, udl float64) error {
	f, err := ParseFormat(filepath.Ext(filename))
	if err != nil || filepath.Ext(filename) == "" {
		f = PNG
		filename += ".png"
	}
	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}
	if err := Write(file, spanM, udl, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
