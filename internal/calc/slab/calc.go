// Package slab sizes main reinforcement for a simply supported one-way slab
// per metre width.
package slab

import (
	"math"

	"CivilBot/internal/calc/materials"
)

const (
	LoadFactor           = 1.5
	DefaultBarDiameterMM = 10.0
	// CoverMM is added to the effective depth for the overall thickness used by
	// the minimum steel rule.
	CoverMM = 25.0
	// MinSteelRatio is 0.12% of the gross section for HYSD bars.
	MinSteelRatio = 0.0012
	MaxSpacingMM  = 300.0
)

type Input struct {
	SpanM            float64 `json:"span_m"`
	LoadKNM2         float64 `json:"load_kn_m2"`
	EffectiveDepthMM float64 `json:"effective_depth_mm"`
	ConcreteGrade    string  `json:"concrete_grade"`
	SteelGrade       string  `json:"steel_grade"`
	BarDiameterMM    float64 `json:"bar_diameter_mm"`
}

type Result struct {
	DesignMomentKNMPerM float64 `json:"design_moment_knm_per_m"`
	AsRequiredMM2PerM   float64 `json:"as_required_mm2_per_m"`
	AsMinMM2PerM        float64 `json:"as_min_mm2_per_m"`
	AsDesignMM2PerM     float64 `json:"as_design_mm2_per_m"`
	BarAreaMM2          float64 `json:"bar_area_mm2"`
	SpacingMM           float64 `json:"spacing_mm"`
	FckMPa              float64 `json:"fck_mpa"`
	FyMPa               float64 `json:"fy_mpa"`
	Notes               string  `json:"notes"`
}

func Calculate(in Input) (Result, error) {
	if err := materials.Positive(
		materials.Field{Name: "span_m", Value: in.SpanM},
		materials.Field{Name: "load_kn_m2", Value: in.LoadKNM2},
		materials.Field{Name: "effective_depth_mm", Value: in.EffectiveDepthMM},
	); err != nil {
		return Result{}, err
	}
	if in.BarDiameterMM < 0 {
		return Result{}, &materials.InvalidInputError{Field: "bar_diameter_mm", Value: in.BarDiameterMM}
	}
	if in.BarDiameterMM == 0 {
		in.BarDiameterMM = DefaultBarDiameterMM
	}
	concrete, err := materials.Concrete(in.ConcreteGrade)
	if err != nil {
		return Result{}, err
	}
	steel, err := materials.Steel(in.SteelGrade)
	if err != nil {
		return Result{}, err
	}

	d := in.EffectiveDepthMM
	mu := LoadFactor * in.LoadKNM2 * in.SpanM * in.SpanM / 8
	z := 0.9 * d
	as := mu * 1e6 / (materials.PartialSafetyFy * steel.FyMPa * z)
	asMin := MinSteelRatio * 1000 * (d + CoverMM)

	design := math.Max(as, asMin)
	barArea := math.Pi * in.BarDiameterMM * in.BarDiameterMM / 4
	spacing := math.Min(barArea*1000/design, math.Min(3*d, MaxSpacingMM))

	notes := "Main steel governed by bending."
	if as < asMin {
		notes = "Minimum steel governs."
	}
	return Result{
		DesignMomentKNMPerM: mu,
		AsRequiredMM2PerM:   as,
		AsMinMM2PerM:        asMin,
		AsDesignMM2PerM:     design,
		BarAreaMM2:          barArea,
		SpacingMM:           spacing,
		FckMPa:              concrete.FckMPa,
		FyMPa:               steel.FyMPa,
		Notes:               notes,
	}, nil
}
