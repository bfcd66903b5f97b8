// Package rebar computes reinforcement bar weights with the site rule
// W = D²/162 kg per metre.
package rebar

import (
	"errors"

	"CivilBot/internal/calc/units"
)

var ErrNoBars = errors.New("at least one bar with positive diameter, length and quantity is required")

type Bar struct {
	DiameterMM float64 `json:"diameter"`
	Length     float64 `json:"length"`
	Quantity   int     `json:"quantity"`
}

type BarWeight struct {
	Bar
	WeightPerBarKG float64 `json:"weight_per_bar_kg"`
	TotalWeightKG  float64 `json:"total_weight_kg"`
	WeightPerBarLB float64 `json:"weight_per_bar_lbs,omitempty"`
	TotalWeightLB  float64 `json:"total_weight_lbs,omitempty"`
}

type Result struct {
	Bars          []BarWeight `json:"bars"`
	TotalWeightKG float64     `json:"total_weight_kg"`
	TotalWeightLB float64     `json:"total_weight_lbs,omitempty"`
	TotalBars     int         `json:"total_bars"`
}

// UnitWeight is the mass of one metre of a bar of diameter d mm.
func UnitWeight(d float64) float64 { return d * d / 162 }

// Calculate weighs bars with lengths in metres, or in feet when feet is set.
// Bars with a non-positive field are skipped.
func Calculate(bars []Bar, feet bool) (Result, error) {
	var res Result
	for _, b := range bars {
		if b.DiameterMM <= 0 || b.Length <= 0 || b.Quantity <= 0 {
			continue
		}
		lengthM := b.Length
		if feet {
			lengthM = units.FeetToMetres(b.Length)
		}
		per := UnitWeight(b.DiameterMM) * lengthM
		bw := BarWeight{
			Bar:            b,
			WeightPerBarKG: per,
			TotalWeightKG:  per * float64(b.Quantity),
		}
		if feet {
			bw.WeightPerBarLB = units.KGToPounds(bw.WeightPerBarKG)
			bw.TotalWeightLB = units.KGToPounds(bw.TotalWeightKG)
		}
		res.Bars = append(res.Bars, bw)
		res.TotalWeightKG += bw.TotalWeightKG
		res.TotalBars += b.Quantity
	}
	if len(res.Bars) == 0 {
		return Result{}, ErrNoBars
	}
	if feet {
		res.TotalWeightLB = units.KGToPounds(res.TotalWeightKG)
	}
	return res, nil
}
