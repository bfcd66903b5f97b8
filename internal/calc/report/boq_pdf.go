package report

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"CivilBot/internal/calc/boq"
)

var (
	grey       = &props.Color{Red: 80, Green: 80, Blue: 80}
	headerFill = &props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}
	totalFill  = &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
)

// BOQPDF renders a bill of quantities as an A4 PDF.
func BOQPDF(meta Meta, bill boq.BillOfQuantities) ([]byte, error) {
	meta = meta.withDefaults("Bill of Quantities")

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   grey,
		}).
		Build()
	m := maroto.New(cfg)

	boqHeader(m, meta)
	boqTableHeader(m)
	for i, it := range bill.Items {
		boqRow(m, i+1, it)
	}
	boqSummary(m, bill)

	if meta.Notes != "" {
		m.AddRows(row.New(6))
		m.AddRows(row.New(10).Add(col.New(12).Add(text.New(meta.Notes, props.Text{Size: 8, Color: grey}))))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func boqHeader(m core.Maroto, meta Meta) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(text.New(meta.Title, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center})),
		),
		row.New(8).Add(
			col.New(6).Add(text.New("Project: "+meta.Project, props.Text{Size: 9, Color: grey})),
			col.New(6).Add(text.New("Date: "+meta.Date.Format("2006-01-02"), props.Text{Size: 9, Align: align.Right, Color: grey})),
		),
		row.New(4),
	)
}

func boqTableHeader(m core.Maroto) {
	h := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Color: &props.Color{Red: 255, Green: 255, Blue: 255}}
	left := h
	left.Align = align.Left
	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", h)).WithStyle(headerFill),
			col.New(4).Add(text.New("Description", left)).WithStyle(headerFill),
			col.New(2).Add(text.New("Quantity", h)).WithStyle(headerFill),
			col.New(1).Add(text.New("Unit", h)).WithStyle(headerFill),
			col.New(2).Add(text.New("Rate", h)).WithStyle(headerFill),
			col.New(2).Add(text.New("Amount", h)).WithStyle(headerFill),
		),
	)
}

func boqRow(m core.Maroto, n int, it boq.Item) {
	base := props.Text{Size: 8, Align: align.Center}
	left := base
	left.Align = align.Left
	right := base
	right.Align = align.Right

	rate, amount := "-", "-"
	if it.Rate > 0 {
		rate = FormatINR(it.Rate)
		amount = FormatINR(it.Amount)
	}
	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(n), base)),
			col.New(4).Add(text.New(it.Description, left)),
			col.New(2).Add(text.New(formatQty(it.Quantity), right)),
			col.New(1).Add(text.New(it.Unit, base)),
			col.New(2).Add(text.New(rate, right)),
			col.New(2).Add(text.New(amount, right)),
		),
	)
}

func boqSummary(m core.Maroto, bill boq.BillOfQuantities) {
	if bill.TotalCost == 0 {
		return
	}
	m.AddRows(row.New(6))
	label := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	for _, line := range []struct {
		name  string
		value float64
	}{
		{"Material cost", bill.MaterialCost},
		{"Labour cost", bill.LabourCost},
		{"Total cost", bill.TotalCost},
	} {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(line.name, label)).WithStyle(totalFill),
				col.New(4).Add(text.New(FormatINR(line.value), label)).WithStyle(totalFill),
			),
		)
	}
}
