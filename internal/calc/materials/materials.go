package materials

import (
	"fmt"
	"sort"
)

// IS 456:2000 constants
const (
	Es              = 200000.0 // MPa, modulus of elasticity of steel (clause 6.2.3.1)
	EpsilonCU       = 0.0035   // ultimate concrete strain in flexure (clause 38.1)
	PartialSafetyFy = 0.87     // 1/γm for steel
)

type Kind string

const (
	KindConcrete Kind = "concrete"
	KindSteel    Kind = "steel"
)

// MixRatio is a nominal cement:sand:aggregate proportion by volume.
type MixRatio struct {
	Cement    float64 `json:"cement"`
	Sand      float64 `json:"sand"`
	Aggregate float64 `json:"aggregate"`
}

func (r MixRatio) Total() float64 {
	return r.Cement + r.Sand + r.Aggregate
}

func (r MixRatio) String() string {
	return fmt.Sprintf("%g:%g:%g", r.Cement, r.Sand, r.Aggregate)
}

type ConcreteGrade struct {
	Name       string   `json:"name"`
	FckMPa     float64  `json:"fck_mpa"`
	DensityKG  float64  `json:"density_kg_m3"`
	TauCMaxMPa float64  `json:"tau_c_max_mpa"` // Table 20
	Mix        MixRatio `json:"mix"`
}

type SteelGrade struct {
	Name      string  `json:"name"`
	FyMPa     float64 `json:"fy_mpa"`
	DensityKG float64 `json:"density_kg_m3"`
}

// Property is the kind-independent view returned by Lookup. YieldStrength is
// zero for concrete.
type Property struct {
	Kind                   Kind    `json:"kind"`
	Name                   string  `json:"name"`
	CharacteristicStrength float64 `json:"characteristic_strength_mpa"`
	YieldStrength          float64 `json:"yield_strength_mpa,omitempty"`
	Density                float64 `json:"density_kg_m3"`
}

var concreteGrades = map[string]ConcreteGrade{
	"M15": {Name: "M15", FckMPa: 15, DensityKG: 2400, TauCMaxMPa: 2.5, Mix: MixRatio{1, 2, 4}},
	"M20": {Name: "M20", FckMPa: 20, DensityKG: 2400, TauCMaxMPa: 2.8, Mix: MixRatio{1, 1.5, 3}},
	"M25": {Name: "M25", FckMPa: 25, DensityKG: 2500, TauCMaxMPa: 3.1, Mix: MixRatio{1, 1, 2}},
	"M30": {Name: "M30", FckMPa: 30, DensityKG: 2500, TauCMaxMPa: 3.5, Mix: MixRatio{1, 1, 1.5}},
	"M35": {Name: "M35", FckMPa: 35, DensityKG: 2500, TauCMaxMPa: 3.7, Mix: MixRatio{1, 1, 1.2}},
}

var steelGrades = map[string]SteelGrade{
	"Fe415": {Name: "Fe415", FyMPa: 415, DensityKG: 7850},
	"Fe500": {Name: "Fe500", FyMPa: 500, DensityKG: 7850},
	"Fe550": {Name: "Fe550", FyMPa: 550, DensityKG: 7850},
}

func Concrete(name string) (ConcreteGrade, error) {
	g, ok := concreteGrades[name]
	if !ok {
		return ConcreteGrade{}, &UnknownGradeError{Kind: KindConcrete, Name: name}
	}
	return g, nil
}

func Steel(name string) (SteelGrade, error) {
	g, ok := steelGrades[name]
	if !ok {
		return SteelGrade{}, &UnknownGradeError{Kind: KindSteel, Name: name}
	}
	return g, nil
}

// Lookup resolves a grade name of the given kind.
func Lookup(kind Kind, name string) (Property, error) {
	switch kind {
	case KindConcrete:
		g, err := Concrete(name)
		if err != nil {
			return Property{}, err
		}
		return Property{Kind: kind, Name: g.Name, CharacteristicStrength: g.FckMPa, Density: g.DensityKG}, nil
	case KindSteel:
		g, err := Steel(name)
		if err != nil {
			return Property{}, err
		}
		return Property{Kind: kind, Name: g.Name, CharacteristicStrength: g.FyMPa, YieldStrength: g.FyMPa, Density: g.DensityKG}, nil
	default:
		return Property{}, &UnknownGradeError{Kind: kind, Name: name}
	}
}

// Grades lists the grade names of a kind ordered by strength.
func Grades(kind Kind) []string {
	var names []string
	switch kind {
	case KindConcrete:
		for n := range concreteGrades {
			names = append(names, n)
		}
		sort.Slice(names, func(i, j int) bool {
			return concreteGrades[names[i]].FckMPa < concreteGrades[names[j]].FckMPa
		})
	case KindSteel:
		for n := range steelGrades {
			names = append(names, n)
		}
		sort.Slice(names, func(i, j int) bool {
			return steelGrades[names[i]].FyMPa < steelGrades[names[j]].FyMPa
		})
	}
	return names
}

// XuMaxRatio returns the limiting neutral axis depth ratio xu,max/d
// (IS 456 clause 38.1, note).
func XuMaxRatio(fy float64) float64 {
	return EpsilonCU / (0.0055 + PartialSafetyFy*fy/Es)
}

// MuLimCoefficient returns K in Mu,lim = K·fck·b·d² (IS 456 Annex G-1.1(c)).
func MuLimCoefficient(fy float64) float64 {
	k := XuMaxRatio(fy)
	return 0.36 * k * (1 - 0.42*k)
}
