package beam

import (
	"errors"
	"math"
	"strings"
	"testing"

	"CivilBot/internal/calc/materials"
)

func baseInput() Input {
	return Input{
		SpanM:            4,
		UDLKNM:           10,
		ConcreteGrade:    "M25",
		SteelGrade:       "Fe415",
		WidthMM:          230,
		EffectiveDepthMM: 400,
	}
}

func TestCalculate_MomentAndShear(t *testing.T) {
	res, err := Calculate(baseInput())
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if res.MaxMomentKNM != 20 {
		t.Errorf("MaxMomentKNM = %v, want 20", res.MaxMomentKNM)
	}
	if res.MaxShearKN != 20 {
		t.Errorf("MaxShearKN = %v, want 20", res.MaxShearKN)
	}
	if res.DesignMomentKNM != 30 {
		t.Errorf("DesignMomentKNM = %v, want 30", res.DesignMomentKNM)
	}
	if res.DesignShearKN != 30 {
		t.Errorf("DesignShearKN = %v, want 30", res.DesignShearKN)
	}
}

func TestCalculate_Reinforcement(t *testing.T) {
	tests := []struct {
		name            string
		in              Input
		asRequired      float64
		asMax           float64
		adequate        bool
		underReinforced bool
		okShear         bool
	}{
		{
			name:            "light beam",
			in:              baseInput(),
			asRequired:      216.271,
			asMax:           3680,
			adequate:        true,
			underReinforced: true,
			okShear:         true,
		},
		{
			name: "moderate beam",
			in: Input{SpanM: 6, UDLKNM: 25, ConcreteGrade: "M25", SteelGrade: "Fe500",
				WidthMM: 300, EffectiveDepthMM: 500},
			asRequired:      879.351,
			asMax:           6000,
			adequate:        true,
			underReinforced: true,
			okShear:         true,
		},
		{
			name: "beyond limiting moment",
			in: Input{SpanM: 6, UDLKNM: 25, ConcreteGrade: "M25", SteelGrade: "Fe415",
				WidthMM: 230, EffectiveDepthMM: 400},
			asRequired:      1675.717,
			asMax:           3680,
			adequate:        true,
			underReinforced: false,
			okShear:         true,
		},
		{
			name: "section too small",
			in: Input{SpanM: 8, UDLKNM: 60, ConcreteGrade: "M20", SteelGrade: "Fe415",
				WidthMM: 230, EffectiveDepthMM: 400},
			asRequired:      2216.867,
			asMax:           3680,
			adequate:        false,
			underReinforced: false,
			okShear:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(tt.in)
			if err != nil {
				t.Fatalf("Calculate error: %v", err)
			}
			if math.Abs(res.AsRequiredMM2-tt.asRequired) > 0.01 {
				t.Errorf("AsRequiredMM2 = %v, want %v", res.AsRequiredMM2, tt.asRequired)
			}
			if math.Abs(res.AsMaxMM2-tt.asMax) > 0.001 {
				t.Errorf("AsMaxMM2 = %v, want %v", res.AsMaxMM2, tt.asMax)
			}
			if res.Adequate != tt.adequate {
				t.Errorf("Adequate = %v, want %v", res.Adequate, tt.adequate)
			}
			if res.UnderReinforced != tt.underReinforced {
				t.Errorf("UnderReinforced = %v, want %v", res.UnderReinforced, tt.underReinforced)
			}
			if res.OKShear != tt.okShear {
				t.Errorf("OKShear = %v, want %v", res.OKShear, tt.okShear)
			}
			if math.Abs(res.Utilization-res.AsRequiredMM2/res.AsMaxMM2) > 1e-12 {
				t.Errorf("Utilization = %v, want As/As,max", res.Utilization)
			}
		})
	}
}

func TestCalculate_MinimumSteel(t *testing.T) {
	in := baseInput()
	in.UDLKNM = 1
	res, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	want := 0.85 * 230 * 400 / 415.0
	if math.Abs(res.AsRequiredMM2-want) > 1e-9 {
		t.Errorf("AsRequiredMM2 = %v, want minimum %v", res.AsRequiredMM2, want)
	}
	if res.AsMinMM2 != res.AsRequiredMM2 {
		t.Errorf("AsMinMM2 = %v, want %v", res.AsMinMM2, res.AsRequiredMM2)
	}
}

func TestCalculate_Bars(t *testing.T) {
	res, err := Calculate(baseInput())
	if err != nil {
		t.Fatal(err)
	}
	if res.Bars != 2 {
		t.Errorf("Bars = %d, want 2", res.Bars)
	}
	if res.AsProvidedMM2 < res.AsRequiredMM2 {
		t.Errorf("AsProvidedMM2 %v < AsRequiredMM2 %v", res.AsProvidedMM2, res.AsRequiredMM2)
	}
	if res.ConcreteGrade != "M25" || res.SteelGrade != "Fe415" {
		t.Errorf("grades not echoed: %q %q", res.ConcreteGrade, res.SteelGrade)
	}
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"zero span", func(in *Input) { in.SpanM = 0 }, "span_m"},
		{"negative span", func(in *Input) { in.SpanM = -4 }, "span_m"},
		{"zero load", func(in *Input) { in.UDLKNM = 0 }, "udl_kn_m"},
		{"negative load", func(in *Input) { in.UDLKNM = -1 }, "udl_kn_m"},
		{"zero width", func(in *Input) { in.WidthMM = 0 }, "width_mm"},
		{"zero depth", func(in *Input) { in.EffectiveDepthMM = 0 }, "effective_depth_mm"},
		{"bad span checked before unknown grade", func(in *Input) {
			in.SpanM = 0
			in.ConcreteGrade = "M99"
		}, "span_m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			tt.mutate(&in)
			res, err := Calculate(in)
			var ie *materials.InvalidInputError
			if !errors.As(err, &ie) {
				t.Fatalf("expected InvalidInputError, got %v", err)
			}
			if ie.Field != tt.field {
				t.Errorf("field = %q, want %q", ie.Field, tt.field)
			}
			if res != (Result{}) {
				t.Errorf("partial result returned: %+v", res)
			}
		})
	}
}

func TestCalculate_OutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"moment overflows", func(in *Input) { in.SpanM = 1e200 }, "max_moment_knm"},
		{"section overflows", func(in *Input) {
			in.WidthMM = 1e160
			in.EffectiveDepthMM = 1e160
		}, "limiting_moment_knm"},
		{"bar count overflows", func(in *Input) {
			in.WidthMM = 1e100
			in.EffectiveDepthMM = 1e100
		}, "bars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			tt.mutate(&in)
			res, err := Calculate(in)
			var ie *materials.InvalidInputError
			if !errors.As(err, &ie) {
				t.Fatalf("expected InvalidInputError, got %v", err)
			}
			if ie.Field != tt.field {
				t.Errorf("field = %q, want %q", ie.Field, tt.field)
			}
			if res != (Result{}) {
				t.Errorf("partial result returned: %+v", res)
			}
		})
	}
}

func TestCalculate_BeyondLimitingMomentNote(t *testing.T) {
	res, err := Calculate(Input{SpanM: 6, UDLKNM: 25, ConcreteGrade: "M25", SteelGrade: "Fe415",
		WidthMM: 230, EffectiveDepthMM: 400})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Adequate || res.UnderReinforced {
		t.Fatalf("Adequate = %v, UnderReinforced = %v; want true, false", res.Adequate, res.UnderReinforced)
	}
	if !strings.Contains(res.Notes, "over-reinforced") || !strings.Contains(res.Notes, "steel ratio only") {
		t.Errorf("Notes = %q, want the over-reinforced warning to qualify adequacy", res.Notes)
	}
}

func TestCalculate_UnknownGrade(t *testing.T) {
	tests := []struct {
		name     string
		concrete string
		steel    string
	}{
		{"unknown concrete", "M60", "Fe415"},
		{"unknown steel", "M25", "Fe250"},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			in.ConcreteGrade = tt.concrete
			in.SteelGrade = tt.steel
			res, err := Calculate(in)
			var ug *materials.UnknownGradeError
			if !errors.As(err, &ug) {
				t.Fatalf("expected UnknownGradeError, got %v", err)
			}
			if res != (Result{}) {
				t.Errorf("partial result returned: %+v", res)
			}
		})
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	in := baseInput()
	a, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("results differ:\n%+v\n%+v", a, b)
	}
}

func TestDesign_Policy(t *testing.T) {
	res, err := Design(baseInput(), Policy{LoadFactor: 1.0, MaxSteelRatio: 0.002, BarDiameterMM: 12})
	if err != nil {
		t.Fatal(err)
	}
	if res.DesignMomentKNM != 20 {
		t.Errorf("DesignMomentKNM = %v, want 20", res.DesignMomentKNM)
	}
	if math.Abs(res.AsMaxMM2-184) > 1e-9 {
		t.Errorf("AsMaxMM2 = %v, want 184", res.AsMaxMM2)
	}
	// As,min of 188.4 alone exceeds the tightened ceiling.
	if res.Adequate {
		t.Error("expected inadequate under a 0.2% ceiling")
	}
	if res.BarDiameterMM != 12 {
		t.Errorf("BarDiameterMM = %v, want 12", res.BarDiameterMM)
	}
}

func TestDesign_ZeroPolicyUsesDefaults(t *testing.T) {
	a, err := Design(baseInput(), Policy{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Calculate(baseInput())
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("zero policy should match defaults")
	}
}

func TestProportion(t *testing.T) {
	s, err := Proportion(4)
	if err != nil {
		t.Fatal(err)
	}
	if s.EffectiveDepthMM != 400 || s.OverallDepthMM != 450 || s.WidthMM != 225 {
		t.Errorf("Proportion(4) = %+v", s)
	}
	if _, err := Proportion(0); err == nil {
		t.Error("expected error for zero span")
	}
}
