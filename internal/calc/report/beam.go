// Package report renders calculation results as PDF and xlsx documents.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"CivilBot/internal/calc/beam"
	"CivilBot/internal/calc/diagram"
)

// Meta is the title block shared by every report.
type Meta struct {
	Project string    `json:"project"`
	Author  string    `json:"author"`
	Title   string    `json:"title"`
	Notes   string    `json:"notes"`
	Date    time.Time `json:"-"`
}

func (m Meta) withDefaults(title string) Meta {
	if m.Title == "" {
		m.Title = title
	}
	if m.Date.IsZero() {
		m.Date = time.Now()
	}
	return m
}

// BeamPDF writes a one page design report for a beam, including its bending
// moment and shear force diagrams.
func BeamPDF(w io.Writer, meta Meta, in beam.Input, res beam.Result) error {
	meta = meta.withDefaults("Beam Design Report")

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(meta.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", meta.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", meta.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(10)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(0, 7, title, "", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	row := func(label, value string) {
		pdf.CellFormat(90, 6, tr(label), "B", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(value), "B", 1, "R", false, 0, "")
	}

	section("Input")
	row("Span", fmt.Sprintf("%.2f m", in.SpanM))
	row("Uniform load", fmt.Sprintf("%.2f kN/m", in.UDLKNM))
	row("Section b × d", fmt.Sprintf("%.0f × %.0f mm", in.WidthMM, in.EffectiveDepthMM))
	row("Concrete", fmt.Sprintf("%s (fck = %.0f MPa)", res.ConcreteGrade, res.FckMPa))
	row("Steel", fmt.Sprintf("%s (fy = %.0f MPa)", res.SteelGrade, res.FyMPa))
	pdf.Ln(4)

	section("Flexure")
	row("Maximum moment wL²/8", fmt.Sprintf("%.2f kN·m", res.MaxMomentKNM))
	row("Design moment Mu", fmt.Sprintf("%.2f kN·m", res.DesignMomentKNM))
	row("Limiting moment Mu,lim", fmt.Sprintf("%.2f kN·m", res.LimitingMomentKNM))
	row("Steel required", fmt.Sprintf("%.1f mm²", res.AsRequiredMM2))
	row("Minimum / maximum steel", fmt.Sprintf("%.1f / %.1f mm²", res.AsMinMM2, res.AsMaxMM2))
	row("Bars provided", fmt.Sprintf("%d × %.0f mm (%.1f mm²)", res.Bars, res.BarDiameterMM, res.AsProvidedMM2))
	row("Adequate", yesNo(res.Adequate))
	row("Under-reinforced", yesNo(res.UnderReinforced))
	pdf.Ln(4)

	section("Shear")
	row("Design shear Vu", fmt.Sprintf("%.2f kN", res.DesignShearKN))
	row("Nominal shear stress", fmt.Sprintf("%.3f MPa", res.ShearStressMPa))
	row("Maximum shear stress", fmt.Sprintf("%.2f MPa", res.ShearStressMaxMPa))
	row("Shear OK", yesNo(res.OKShear))
	pdf.Ln(4)

	if res.Notes != "" || meta.Notes != "" {
		section("Notes")
		pdf.MultiCell(0, 5, tr(joinNotes(res.Notes, meta.Notes)), "", "L", false)
		pdf.Ln(2)
	}

	var img bytes.Buffer
	if err := diagram.Write(&img, in.SpanM, in.UDLKNM, diagram.PNG); err != nil {
		return fmt.Errorf("render diagram: %w", err)
	}
	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("diagram", opt, &img)
	// 8:6 aspect at 190 mm wide
	const diagramHeight = 142.5
	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+diagramHeight > pageH-bottom {
		pdf.AddPage()
	}
	pdf.ImageOptions("diagram", 10, pdf.GetY()+2, 190, 0, false, opt, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write beam report: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func joinNotes(notes ...string) string {
	var out []byte
	for _, n := range notes {
		if n == "" {
			continue
		}
		if len(out) > 0 {
			out = append(out, '\n')
		}
		out = append(out, n...)
	}
	return string(out)
}
