// Package column checks short axially loaded columns to IS 456 clause 39.3.
package column

import (
	"CivilBot/internal/calc/materials"
)

const (
	MinSteelRatio = 0.008
	MaxSteelRatio = 0.04
	// ShortColumnSlenderness is the effective length over least lateral
	// dimension below which a column is short.
	ShortColumnSlenderness = 12.0
)

type Input struct {
	AxialLoadKN      float64 `json:"axial_load_kn"`
	WidthMM          float64 `json:"width_mm"`
	DepthMM          float64 `json:"depth_mm"`
	SteelAreaMM2     float64 `json:"steel_area_mm2"`
	EffectiveLengthM float64 `json:"effective_length_m"`
	ConcreteGrade    string  `json:"concrete_grade"`
	SteelGrade       string  `json:"steel_grade"`
}

type Result struct {
	GrossAreaMM2  float64 `json:"gross_area_mm2"`
	SteelRatio    float64 `json:"steel_ratio"`
	CapacityKN    float64 `json:"capacity_kn"`
	Utilization   float64 `json:"utilization"`
	Slenderness   float64 `json:"slenderness,omitempty"`
	Short         bool    `json:"short"`
	SteelWithinIS bool    `json:"steel_within_limits"`
	OK            bool    `json:"ok"`
	Notes         string  `json:"notes"`
}

func Calculate(in Input) (Result, error) {
	if err := materials.Positive(
		materials.Field{Name: "axial_load_kn", Value: in.AxialLoadKN},
		materials.Field{Name: "width_mm", Value: in.WidthMM},
		materials.Field{Name: "depth_mm", Value: in.DepthMM},
		materials.Field{Name: "steel_area_mm2", Value: in.SteelAreaMM2},
	); err != nil {
		return Result{}, err
	}
	if in.EffectiveLengthM < 0 {
		return Result{}, &materials.InvalidInputError{Field: "effective_length_m", Value: in.EffectiveLengthM}
	}
	concrete, err := materials.Concrete(in.ConcreteGrade)
	if err != nil {
		return Result{}, err
	}
	steel, err := materials.Steel(in.SteelGrade)
	if err != nil {
		return Result{}, err
	}

	ag := in.WidthMM * in.DepthMM
	if in.SteelAreaMM2 >= ag {
		return Result{}, &materials.InvalidInputError{Field: "steel_area_mm2", Value: in.SteelAreaMM2}
	}
	ac := ag - in.SteelAreaMM2
	pu := (0.4*concrete.FckMPa*ac + 0.67*steel.FyMPa*in.SteelAreaMM2) / 1000
	ratio := in.SteelAreaMM2 / ag
	util := in.AxialLoadKN / pu

	res := Result{
		GrossAreaMM2:  ag,
		SteelRatio:    ratio,
		CapacityKN:    pu,
		Utilization:   util,
		Short:         true,
		SteelWithinIS: ratio >= MinSteelRatio && ratio <= MaxSteelRatio,
	}
	if in.EffectiveLengthM > 0 {
		least := in.WidthMM
		if in.DepthMM < least {
			least = in.DepthMM
		}
		res.Slenderness = in.EffectiveLengthM * 1000 / least
		res.Short = res.Slenderness < ShortColumnSlenderness
	}
	res.OK = util <= 1 && res.Short && res.SteelWithinIS

	switch {
	case !res.Short:
		res.Notes = "Slender column; additional moments per clause 39.7 are not covered."
	case !res.SteelWithinIS:
		res.Notes = "Longitudinal steel outside 0.8% to 4% of gross area."
	case util > 1:
		res.Notes = "Axial capacity exceeded; enlarge the section or add steel."
	default:
		res.Notes = "Short column adequate under axial load."
	}
	return res, nil
}
