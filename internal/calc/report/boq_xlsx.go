package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"CivilBot/internal/calc/boq"
)

// BOQSheet is the name of the worksheet holding the bill.
const BOQSheet = "BOQ"

var boqColumns = []struct {
	name  string
	width float64
}{
	{"#", 6},
	{"Description", 36},
	{"Quantity", 14},
	{"Unit", 8},
	{"Rate", 14},
	{"Amount", 16},
}

// BOQWorkbook renders a bill of quantities as an xlsx workbook. Quantities,
// rates and amounts are written as numbers.
func BOQWorkbook(meta Meta, bill boq.BillOfQuantities) ([]byte, error) {
	meta = meta.withDefaults("Bill of Quantities")

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), BOQSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(boqColumns))
	for i, c := range boqColumns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(BOQSheet, name, name, c.width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}
	}

	styles, err := newBOQStyles(f)
	if err != nil {
		return nil, err
	}

	if err := f.MergeCell(BOQSheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(BOQSheet, "A1", sanitizeCell(meta.Title))
	f.SetCellStyle(BOQSheet, "A1", lastCol+"1", styles.title)
	f.SetCellValue(BOQSheet, "A2", "Project: "+sanitizeCell(meta.Project))
	f.SetCellValue(BOQSheet, "A3", "Date: "+meta.Date.Format("2006-01-02"))

	for i, c := range boqColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		f.SetCellValue(BOQSheet, cell, c.name)
	}
	f.SetCellStyle(BOQSheet, "A5", lastCol+"5", styles.header)

	r := 6
	for i, it := range bill.Items {
		values := []interface{}{i + 1, it.Description, it.Quantity, it.Unit, nil, nil}
		if it.Rate > 0 {
			values[4] = it.Rate
			values[5] = it.Amount
		}
		cell := fmt.Sprintf("A%d", r)
		if err := f.SetSheetRow(BOQSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", r, err)
		}
		f.SetCellStyle(BOQSheet, cell, fmt.Sprintf("%s%d", lastCol, r), styles.item)
		f.SetCellStyle(BOQSheet, fmt.Sprintf("C%d", r), fmt.Sprintf("C%d", r), styles.number)
		f.SetCellStyle(BOQSheet, fmt.Sprintf("E%d", r), fmt.Sprintf("F%d", r), styles.number)
		r++
	}

	if bill.TotalCost > 0 {
		r++
		for _, line := range []struct {
			name  string
			value float64
		}{
			{"Material cost", bill.MaterialCost},
			{"Labour cost", bill.LabourCost},
			{"Total cost", bill.TotalCost},
		} {
			f.SetCellValue(BOQSheet, fmt.Sprintf("E%d", r), line.name)
			f.SetCellStyle(BOQSheet, fmt.Sprintf("E%d", r), fmt.Sprintf("E%d", r), styles.label)
			f.SetCellValue(BOQSheet, fmt.Sprintf("F%d", r), line.value)
			f.SetCellStyle(BOQSheet, fmt.Sprintf("F%d", r), fmt.Sprintf("F%d", r), styles.total)
			r++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

type boqStyles struct {
	title, header, item, number, label, total int
}

func newBOQStyles(f *excelize.File) (boqStyles, error) {
	var s boqStyles
	border := []excelize.Border{
		{Type: "left", Color: "#999999", Style: 1},
		{Type: "top", Color: "#999999", Style: 1},
		{Type: "right", Color: "#999999", Style: 1},
		{Type: "bottom", Color: "#999999", Style: 1},
	}
	defs := []struct {
		dst   *int
		name  string
		style *excelize.Style
	}{
		{&s.title, "title", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&s.header, "header", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    border,
		}},
		{&s.item, "item", &excelize.Style{Font: &excelize.Font{Size: 10}, Border: border}},
		// #,##0.00
		{&s.number, "number", &excelize.Style{Font: &excelize.Font{Size: 10}, Border: border, NumFmt: 4}},
		{&s.label, "label", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}, Alignment: &excelize.Alignment{Horizontal: "right"}}},
		{&s.total, "total", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}, NumFmt: 4}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return s, fmt.Errorf("create %s style: %w", d.name, err)
		}
		*d.dst = id
	}
	return s, nil
}

// sanitizeCell stops user text from being read as a formula.
func sanitizeCell(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}
