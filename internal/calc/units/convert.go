// Package units converts between the site units used on Indian projects.
package units

import (
	"errors"
	"fmt"
	"sort"
)

type Kind string

const (
	Length   Kind = "length"
	Weight   Kind = "weight"
	Area     Kind = "area"
	Volume   Kind = "volume"
	Pressure Kind = "pressure"
)

var ErrUnknownUnit = errors.New("unknown unit")

// factors maps each unit to how many base units one of it holds. Bases are
// m, kg, m², m³ and N/mm².
var factors = map[Kind]map[string]float64{
	Length: {
		"m":  1,
		"mm": 0.001,
		"cm": 0.01,
		"km": 1000,
		"ft": 1 / 3.28084,
	},
	Weight: {
		"kg":  1,
		"g":   0.001,
		"ton": 1000,
		"lb":  1 / 2.20462,
	},
	Area: {
		"sqm":     1,
		"sqft":    1 / 10.7639,
		"acre":    4047,
		"hectare": 10000,
	},
	Volume: {
		"cum":   1,
		"cuft":  1 / 35.3147,
		"liter": 0.001,
	},
	Pressure: {
		"nmm2": 1,
		"mpa":  1,
		"bar":  0.1,
		"psi":  1 / 145.038,
	},
}

type Result struct {
	Kind  Kind    `json:"conversion_type"`
	Value float64 `json:"original_value"`
	From  string  `json:"from_unit"`
	To    string  `json:"to_unit"`
	Out   float64 `json:"result_value"`
}

func Convert(kind Kind, value float64, from, to string) (Result, error) {
	table, ok := factors[kind]
	if !ok {
		return Result{}, fmt.Errorf("%w: conversion type %q", ErrUnknownUnit, kind)
	}
	f, ok := table[from]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q for %s", ErrUnknownUnit, from, kind)
	}
	t, ok := table[to]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q for %s", ErrUnknownUnit, to, kind)
	}
	return Result{Kind: kind, Value: value, From: from, To: to, Out: value * f / t}, nil
}

// Units lists the unit names accepted for kind, sorted.
func Units(kind Kind) []string {
	names := make([]string, 0, len(factors[kind]))
	for name := range factors[kind] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FeetToMetres converts a length in feet.
func FeetToMetres(ft float64) float64 { return ft / 3.28084 }

func KGToPounds(kg float64) float64 { return kg * 2.20462 }
