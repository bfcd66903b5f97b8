package units

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		kind     Kind
		value    float64
		from, to string
		want     float64
	}{
		{Length, 1, "m", "ft", 3.28084},
		{Length, 2500, "mm", "m", 2.5},
		{Length, 3, "km", "cm", 300000},
		{Weight, 1, "ton", "kg", 1000},
		{Weight, 10, "kg", "lb", 22.0462},
		{Area, 1, "hectare", "sqm", 10000},
		{Area, 100, "sqm", "sqft", 1076.39},
		{Volume, 1, "cum", "liter", 1000},
		{Volume, 35.3147, "cuft", "cum", 1},
		{Pressure, 25, "mpa", "psi", 3625.95},
		{Pressure, 10, "bar", "nmm2", 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind)+" "+tt.from+"->"+tt.to, func(t *testing.T) {
			res, err := Convert(tt.kind, tt.value, tt.from, tt.to)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(res.Out-tt.want) > 1e-6*math.Max(1, tt.want) {
				t.Errorf("Convert = %v, want %v", res.Out, tt.want)
			}
		})
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	for kind := range factors {
		for _, from := range Units(kind) {
			for _, to := range Units(kind) {
				there, err := Convert(kind, 12.5, from, to)
				if err != nil {
					t.Fatal(err)
				}
				back, err := Convert(kind, there.Out, to, from)
				if err != nil {
					t.Fatal(err)
				}
				if math.Abs(back.Out-12.5) > 1e-9 {
					t.Errorf("%s %s->%s->%s = %v", kind, from, to, from, back.Out)
				}
			}
		}
	}
}

func TestConvert_Unknown(t *testing.T) {
	cases := []struct {
		kind     Kind
		from, to string
	}{
		{"temperature", "c", "f"},
		{Length, "yard", "m"},
		{Weight, "kg", "stone"},
		{Length, "kg", "m"},
	}
	for _, c := range cases {
		if _, err := Convert(c.kind, 1, c.from, c.to); !errors.Is(err, ErrUnknownUnit) {
			t.Errorf("Convert(%s, %s, %s) error = %v, want ErrUnknownUnit", c.kind, c.from, c.to, err)
		}
	}
}

func TestHandler_Convert(t *testing.T) {
	tests := []struct {
		body       string
		wantStatus int
	}{
		{`{"conversion_type":"length","value":1,"from_unit":"m","to_unit":"mm"}`, http.StatusOK},
		{`{"conversion_type":"length","value":1,"from_unit":"m","to_unit":"mile"}`, http.StatusBadRequest},
		{`[`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		(&Handler{}).Convert(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))
		if rec.Code != tt.wantStatus {
			t.Errorf("%s: status = %d, want %d", tt.body, rec.Code, tt.wantStatus)
		}
	}
}
