package batch

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"CivilBot/internal/calc/beam"
	"CivilBot/internal/calc/materials"
)

func item(span float64, grade string) beam.Request {
	return beam.Request{Input: beam.Input{
		SpanM:            span,
		UDLKNM:           10,
		ConcreteGrade:    grade,
		SteelGrade:       "Fe415",
		WidthMM:          230,
		EffectiveDepthMM: 400,
	}}
}

func TestCalculateBeam(t *testing.T) {
	res, err := CalculateBeam(BeamBatchInput{Items: []beam.Request{item(4, "M25"), item(5, "M20")}}, beam.DefaultPolicy())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(res.Results))
	}
	if res.Results[0].MaxMomentKNM != 20 {
		t.Errorf("first moment = %v, want 20", res.Results[0].MaxMomentKNM)
	}
}

func TestCalculateBeam_FirstFailureAborts(t *testing.T) {
	_, err := CalculateBeam(BeamBatchInput{Items: []beam.Request{item(4, "M25"), item(4, "M70"), item(0, "M25")}}, beam.DefaultPolicy())
	var ie *ItemError
	if !errors.As(err, &ie) || ie.Index != 1 {
		t.Fatalf("error = %v, want ItemError at index 1", err)
	}
	var ug *materials.UnknownGradeError
	if !errors.As(err, &ug) {
		t.Errorf("cause not preserved: %v", err)
	}
}

func TestCalculateBeam_Empty(t *testing.T) {
	if _, err := CalculateBeam(BeamBatchInput{}, beam.DefaultPolicy()); !errors.Is(err, ErrNoItems) {
		t.Errorf("error = %v, want ErrNoItems", err)
	}
}

func TestHandler_Beam(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"ok", `{"items":[{"span_m":4,"udl_kn_m":10,"concrete_grade":"M25","steel_grade":"Fe415","auto_size":true}]}`, http.StatusOK},
		{"empty", `{"items":[]}`, http.StatusBadRequest},
		{"bad item", `{"items":[{"span_m":-4,"udl_kn_m":10,"concrete_grade":"M25","steel_grade":"Fe415","width_mm":230,"effective_depth_mm":400}]}`, http.StatusBadRequest},
	}
	h := &Handler{Policy: beam.DefaultPolicy()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Beam(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
