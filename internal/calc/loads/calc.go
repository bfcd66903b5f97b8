// Package loads factors characteristic loads into IS 456 Table 18 limit state
// combinations.
package loads

import (
	"CivilBot/internal/calc/materials"
)

type Combo string

const (
	ComboDeadLive     Combo = "1.5(DL+LL)"
	ComboDeadLiveWind Combo = "1.2(DL+LL+WL)"
	ComboDeadWind     Combo = "1.5(DL+WL)"
	ComboUplift       Combo = "0.9DL+1.5WL"
)

type Input struct {
	DeadKN float64 `json:"dead_kn"`
	LiveKN float64 `json:"live_kn"`
	WindKN float64 `json:"wind_kn"`
}

type Combination struct {
	Name     Combo   `json:"name"`
	DesignKN float64 `json:"design_kn"`
}

type Result struct {
	DesignLoadKN float64       `json:"design_load_kn"`
	Governing    Combo         `json:"governing"`
	Combinations []Combination `json:"combinations"`
	Notes        string        `json:"notes"`
}

func Calculate(in Input) (Result, error) {
	if err := materials.Positive(materials.Field{Name: "dead_kn", Value: in.DeadKN}); err != nil {
		return Result{}, err
	}
	if in.LiveKN < 0 {
		return Result{}, &materials.InvalidInputError{Field: "live_kn", Value: in.LiveKN}
	}
	if in.WindKN < 0 {
		return Result{}, &materials.InvalidInputError{Field: "wind_kn", Value: in.WindKN}
	}

	D, L, W := in.DeadKN, in.LiveKN, in.WindKN
	combos := []Combination{{ComboDeadLive, 1.5 * (D + L)}}
	if W > 0 {
		combos = append(combos,
			Combination{ComboDeadLiveWind, 1.2 * (D + L + W)},
			Combination{ComboDeadWind, 1.5 * (D + W)},
			Combination{ComboUplift, 0.9*D + 1.5*W},
		)
	}

	gov := combos[0]
	for _, c := range combos[1:] {
		if c.DesignKN > gov.DesignKN {
			gov = c
		}
	}

	notes := "Gravity combination only."
	if W > 0 {
		notes = "Includes wind combinations; check 0.9DL+1.5WL for uplift and overturning."
	}
	return Result{
		DesignLoadKN: gov.DesignKN,
		Governing:    gov.Name,
		Combinations: combos,
		Notes:        notes,
	}, nil
}
