package beam

import (
	"math"

	"CivilBot/internal/calc/materials"
)

type Input struct {
	SpanM            float64 `json:"span_m"`
	UDLKNM           float64 `json:"udl_kn_m"`
	ConcreteGrade    string  `json:"concrete_grade"`
	SteelGrade       string  `json:"steel_grade"`
	WidthMM          float64 `json:"width_mm"`
	EffectiveDepthMM float64 `json:"effective_depth_mm"`
}

type Result struct {
	MaxMomentKNM      float64 `json:"max_moment_knm"`
	MaxShearKN        float64 `json:"max_shear_kn"`
	DesignMomentKNM   float64 `json:"design_moment_knm"`
	DesignShearKN     float64 `json:"design_shear_kn"`
	LimitingMomentKNM float64 `json:"limiting_moment_knm"`
	AsRequiredMM2     float64 `json:"as_required_mm2"`
	AsMinMM2          float64 `json:"as_min_mm2"`
	AsMaxMM2          float64 `json:"as_max_mm2"`
	Utilization       float64 `json:"utilization"`
	// Adequate reports that a singly reinforced section fits within the
	// maximum steel ratio. It does not require Mu <= Mu,lim; see
	// UnderReinforced for that.
	Adequate          bool    `json:"adequate"`
	UnderReinforced   bool    `json:"under_reinforced"`
	ShearStressMPa    float64 `json:"shear_stress_mpa"`
	ShearStressMaxMPa float64 `json:"shear_stress_max_mpa"`
	OKShear           bool    `json:"ok_shear"`
	BarDiameterMM     float64 `json:"bar_diameter_mm"`
	Bars              int     `json:"bars"`
	AsProvidedMM2     float64 `json:"as_provided_mm2"`
	ConcreteGrade     string  `json:"concrete_grade"`
	SteelGrade        string  `json:"steel_grade"`
	FckMPa            float64 `json:"fck_mpa"`
	FyMPa             float64 `json:"fy_mpa"`
	Notes             string  `json:"notes"`
}

// Policy holds the design thresholds that are a matter of practice rather
// than mechanics.
type Policy struct {
	LoadFactor    float64 `json:"load_factor"`
	MaxSteelRatio float64 `json:"max_steel_ratio"`
	BarDiameterMM float64 `json:"bar_diameter_mm"`
}

func DefaultPolicy() Policy {
	return Policy{
		LoadFactor:    1.5,
		MaxSteelRatio: 0.04,
		BarDiameterMM: 16,
	}
}

// Merge applies non-zero values from source into p.
func (p *Policy) Merge(source *Policy) {
	if source.LoadFactor > 0 {
		p.LoadFactor = source.LoadFactor
	}
	if source.MaxSteelRatio > 0 {
		p.MaxSteelRatio = source.MaxSteelRatio
	}
	if source.BarDiameterMM > 0 {
		p.BarDiameterMM = source.BarDiameterMM
	}
}

func Calculate(in Input) (Result, error) {
	return Design(in, DefaultPolicy())
}

// Design sizes the tension steel of a simply supported, singly reinforced
// rectangular beam under a uniformly distributed load (IS 456:2000 limit state,
// Annex G-1.1).
func Design(in Input, policy Policy) (Result, error) {
	if err := materials.Positive(
		materials.Field{Name: "span_m", Value: in.SpanM},
		materials.Field{Name: "udl_kn_m", Value: in.UDLKNM},
		materials.Field{Name: "width_mm", Value: in.WidthMM},
		materials.Field{Name: "effective_depth_mm", Value: in.EffectiveDepthMM},
	); err != nil {
		return Result{}, err
	}
	concrete, err := materials.Concrete(in.ConcreteGrade)
	if err != nil {
		return Result{}, err
	}
	steel, err := materials.Steel(in.SteelGrade)
	if err != nil {
		return Result{}, err
	}
	p := DefaultPolicy()
	p.Merge(&policy)

	fck := concrete.FckMPa
	fy := steel.FyMPa
	b := in.WidthMM
	d := in.EffectiveDepthMM

	// Simply supported beam, UDL: M = w L^2 / 8, V = w L / 2
	M := in.UDLKNM * in.SpanM * in.SpanM / 8.0
	V := in.UDLKNM * in.SpanM / 2.0
	Mu := p.LoadFactor * M
	Vu := p.LoadFactor * V

	muLim := materials.MuLimCoefficient(fy) * fck * b * d * d / 1e6

	// Ast = 0.5 fck/fy [1 - sqrt(1 - 4.6 Mu / (fck b d^2))] b d
	R := 4.6 * Mu * 1e6 / (fck * b * d * d)
	flexureOK := R <= 1
	var ast float64
	if flexureOK {
		ast = 0.5 * fck / fy * (1 - math.Sqrt(1-R)) * b * d
	} else {
		ast = 0.5 * fck / fy * b * d
	}

	// Minimum tension steel, clause 26.5.1.1
	asMin := 0.85 * b * d / fy
	if ast < asMin {
		ast = asMin
	}
	asMax := p.MaxSteelRatio * b * d

	tauV := Vu * 1000.0 / (b * d)

	if err := materials.Finite(
		materials.Field{Name: "max_moment_knm", Value: M},
		materials.Field{Name: "max_shear_kn", Value: V},
		materials.Field{Name: "limiting_moment_knm", Value: muLim},
		materials.Field{Name: "as_required_mm2", Value: ast},
		materials.Field{Name: "as_max_mm2", Value: asMax},
		materials.Field{Name: "shear_stress_mpa", Value: tauV},
	); err != nil {
		return Result{}, err
	}

	barArea := math.Pi * p.BarDiameterMM * p.BarDiameterMM / 4.0
	n := math.Ceil(ast / barArea)
	if n > math.MaxInt32 {
		return Result{}, &materials.InvalidInputError{Field: "bars", Value: n, Reason: "is out of range"}
	}
	bars := int(n)

	res := Result{
		MaxMomentKNM:      M,
		MaxShearKN:        V,
		DesignMomentKNM:   Mu,
		DesignShearKN:     Vu,
		LimitingMomentKNM: muLim,
		AsRequiredMM2:     ast,
		AsMinMM2:          asMin,
		AsMaxMM2:          asMax,
		Utilization:       ast / asMax,
		Adequate:          flexureOK && ast <= asMax,
		UnderReinforced:   Mu <= muLim,
		ShearStressMPa:    tauV,
		ShearStressMaxMPa: concrete.TauCMaxMPa,
		OKShear:           tauV <= concrete.TauCMaxMPa,
		BarDiameterMM:     p.BarDiameterMM,
		Bars:              bars,
		AsProvidedMM2:     float64(bars) * barArea,
		ConcreteGrade:     concrete.Name,
		SteelGrade:        steel.Name,
		FckMPa:            fck,
		FyMPa:             fy,
		Notes:             "Singly reinforced rectangular section, IS 456 limit state (UDL, simply supported).",
	}
	switch {
	case !flexureOK:
		res.Notes = "Section too small for singly reinforced design; increase depth or use compression steel."
	case !res.Adequate:
		res.Notes = "Required steel exceeds the maximum reinforcement ratio."
	case !res.UnderReinforced:
		res.Notes = "Design moment exceeds Mu,lim; section is over-reinforced (adequacy checks the steel ratio only)."
	}
	return res, nil
}

// Section is a trial cross-section in millimetres.
type Section struct {
	WidthMM          float64 `json:"width_mm"`
	OverallDepthMM   float64 `json:"overall_depth_mm"`
	EffectiveDepthMM float64 `json:"effective_depth_mm"`
}

// Proportion picks a trial section from span/depth rules of thumb:
// d = L/10, D = d + 50 mm cover allowance, b = D/2.
func Proportion(spanM float64) (Section, error) {
	if err := materials.Positive(materials.Field{Name: "span_m", Value: spanM}); err != nil {
		return Section{}, err
	}
	d := spanM * 1000.0 / 10.0
	D := d + 50
	return Section{
		WidthMM:          D / 2,
		OverallDepthMM:   D,
		EffectiveDepthMM: d,
	}, nil
}
