package mix

import (
	"CivilBot/internal/calc/materials"
)

const (
	DryVolumeFactor    = 1.54 // wet to dry volume of ingredients
	CementDensityKG    = 1440.0
	SandDensityKG      = 1600.0
	AggregateDensityKG = 1500.0
	CementBagKG        = 50.0
	CubicFeetPerM3     = 35.3147
)

type Input struct {
	Grade            string  `json:"grade"`
	VolumeM3         float64 `json:"volume_m3"`
	WaterCementRatio float64 `json:"water_cement_ratio"`
}

type Component struct {
	VolumeM3 float64 `json:"volume_m3"`
	WeightKG float64 `json:"weight_kg"`
}

type Result struct {
	Grade       string    `json:"grade"`
	VolumeM3    float64   `json:"volume_m3"`
	DryVolumeM3 float64   `json:"dry_volume_m3"`
	MixRatio    string    `json:"mix_ratio"`
	Cement      Component `json:"cement"`
	CementBags  float64   `json:"cement_bags"`
	Sand        Component `json:"sand"`
	Aggregate   Component `json:"aggregate"`
	WaterLiters float64   `json:"water_liters"`
}

func Calculate(in Input) (Result, error) {
	if err := materials.Positive(materials.Field{Name: "volume_m3", Value: in.VolumeM3}); err != nil {
		return Result{}, err
	}
	grade, err := materials.Concrete(in.Grade)
	if err != nil {
		return Result{}, err
	}
	if in.WaterCementRatio <= 0 {
		in.WaterCementRatio = 0.5
	}

	dry := in.VolumeM3 * DryVolumeFactor
	total := grade.Mix.Total()
	cement := grade.Mix.Cement / total * dry
	sand := grade.Mix.Sand / total * dry
	agg := grade.Mix.Aggregate / total * dry

	cementKG := cement * CementDensityKG
	if err := materials.Finite(
		materials.Field{Name: "cement_kg", Value: cementKG},
		materials.Field{Name: "aggregate_kg", Value: agg * AggregateDensityKG},
		materials.Field{Name: "water_liters", Value: cementKG * in.WaterCementRatio},
	); err != nil {
		return Result{}, err
	}
	return Result{
		Grade:       grade.Name,
		VolumeM3:    in.VolumeM3,
		DryVolumeM3: dry,
		MixRatio:    grade.Mix.String(),
		Cement:      Component{VolumeM3: cement, WeightKG: cementKG},
		CementBags:  cementKG / CementBagKG,
		Sand:        Component{VolumeM3: sand, WeightKG: sand * SandDensityKG},
		Aggregate:   Component{VolumeM3: agg, WeightKG: agg * AggregateDensityKG},
		// 1 kg of water is 1 litre
		WaterLiters: cementKG * in.WaterCementRatio,
	}, nil
}
