// Package importer reads structural elements from an xlsx workbook.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"CivilBot/internal/calc/boq"
)

// Columns is the expected header row of the first sheet.
var Columns = []string{"name", "shape", "length_m", "width_m", "depth_m", "count", "concrete_grade", "steel_grade"}

var ErrEmptySheet = errors.New("sheet has no element rows")

// RowError points at the spreadsheet row (1 based, header included) that
// could not be read.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string { return fmt.Sprintf("row %d: %v", e.Row, e.Err) }

func (e *RowError) Unwrap() error { return e.Err }

// Elements parses the first sheet. The first row is a header; blank rows are
// skipped.
func Elements(r io.Reader) ([]boq.ElementSpec, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	var out []boq.ElementSpec
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		el, err := parseRow(rows[i])
		if err != nil {
			return nil, &RowError{Row: i + 1, Err: err}
		}
		out = append(out, el)
	}
	if len(out) == 0 {
		return nil, ErrEmptySheet
	}
	return out, nil
}

func parseRow(row []string) (boq.ElementSpec, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	if len(row) < 5 {
		return boq.ElementSpec{}, fmt.Errorf("expected at least %d columns, got %d", 5, len(row))
	}
	el := boq.ElementSpec{
		Name:          cell(0),
		Shape:         boq.Shape(strings.ToLower(cell(1))),
		ConcreteGrade: cell(6),
		SteelGrade:    cell(7),
	}
	dims := []struct {
		col int
		dst *float64
	}{{2, &el.LengthM}, {3, &el.WidthM}, {4, &el.DepthM}}
	for _, d := range dims {
		v, err := toFloat(cell(d.col))
		if err != nil {
			return boq.ElementSpec{}, fmt.Errorf("%s: %w", Columns[d.col], err)
		}
		*d.dst = v
	}
	if s := cell(5); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return boq.ElementSpec{}, fmt.Errorf("count: %w", err)
		}
		el.Count = n
	}
	if el.ConcreteGrade == "" {
		el.ConcreteGrade = "M20"
	}
	if el.SteelGrade == "" {
		el.SteelGrade = "Fe415"
	}
	return el, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// Template returns a workbook with the header row and one example element.
func Template() (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	example := []interface{}{"B1", "beam", 4, 0.23, 0.45, 1, "M25", "Fe415"}
	if err := f.SetSheetRow(sheet, "A2", &example); err != nil {
		return nil, fmt.Errorf("write example: %w", err)
	}
	return f, nil
}
