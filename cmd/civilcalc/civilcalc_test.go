package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"beam", []string{"beam", "--span", "4", "--udl", "10", "--concrete", "M25", "-b", "230", "-d", "400"}, "  ADEQUATE (utilization"},
		{"beam auto size", []string{"beam", "--span", "5", "--udl", "12", "--auto-size"}, "FLEXURE:"},
		{"mix", []string{"mix", "--grade", "M20", "--volume", "1"}, "bags"},
		{"area", []string{"area", "brick_wall", "10"}, "1200.000"},
		{"rebar", []string{"rebar", "12x6x10"}, "53.333"},
		{"convert", []string{"convert", "length", "1", "m", "ft"}, "3.28084 ft"},
		{"version", []string{"version"}, "civilcalc v"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("err = %v\n%s", err, out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"beam missing span", []string{"beam", "--udl", "10"}},
		{"beam unknown grade", []string{"beam", "--span", "4", "--udl", "10", "--concrete", "M90", "-b", "230", "-d", "400"}},
		{"rebar bad bar", []string{"rebar", "12x6"}},
		{"convert unknown unit", []string{"convert", "length", "1", "m", "furlong"}},
		{"estimate missing file", []string{"estimate", "does-not-exist.json"}},
		{"area unsupported type", []string{"area", "roofing", "10"}},
		{"area not a number", []string{"area", "plaster", "ten"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEstimate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "elements.json")
	elements := `[{"name":"B1","shape":"beam","length_m":4,"width_m":0.23,"depth_m":0.45,"count":2,"concrete_grade":"M20","steel_grade":"Fe415"}]`
	if err := os.WriteFile(path, []byte(elements), 0o644); err != nil {
		t.Fatal(err)
	}
	xlsx := filepath.Join(dir, "boq.xlsx")

	out, err := run(t, "estimate", path, "--xlsx", xlsx)
	if err != nil {
		t.Fatalf("err = %v\n%s", err, out)
	}
	if !strings.Contains(out, "Total:") || !strings.Contains(out, "Rs. ") {
		t.Errorf("output:\n%s", out)
	}
	if info, err := os.Stat(xlsx); err != nil || info.Size() == 0 {
		t.Errorf("workbook not written: %v", err)
	}
}

func TestBeamDiagramExport(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bmd.svg")
	if _, err := run(t, "beam", "--span", "4", "--udl", "10", "-b", "230", "-d", "400", "--output", file); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("diagram is not SVG")
	}
}

func TestParseBar(t *testing.T) {
	b, err := parseBar("16X4.5x8")
	if err != nil {
		t.Fatal(err)
	}
	if b.DiameterMM != 16 || b.Length != 4.5 || b.Quantity != 8 {
		t.Errorf("bar = %+v", b)
	}
}
