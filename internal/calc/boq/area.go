package boq

import (
	"fmt"
	"math"

	"CivilBot/internal/calc/materials"
)

type ConstructionType string

const (
	BrickWall    ConstructionType = "brick_wall"
	ConcreteSlab ConstructionType = "concrete_slab"
	Plaster      ConstructionType = "plaster"
	Flooring     ConstructionType = "flooring"
	Foundation   ConstructionType = "foundation"
)

// ConstructionTypes lists the supported area estimates.
var ConstructionTypes = []ConstructionType{BrickWall, ConcreteSlab, Plaster, Flooring, Foundation}

var constructionMeta = map[ConstructionType]struct {
	description string
	unit        string
}{
	BrickWall:    {"Brick wall (230 mm)", "m²"},
	ConcreteSlab: {"RCC slab (150 mm)", "m²"},
	Plaster:      {"Plastering (12 mm thick)", "m²"},
	Flooring:     {"Tile flooring", "m²"},
	Foundation:   {"Strip foundation (1 m deep, 0.5 m wide)", "m"},
}

const waterLitresPerBag = 25

// UnsupportedConstructionError reports a construction type outside the
// closed set.
type UnsupportedConstructionError struct {
	Type ConstructionType
}

func (e *UnsupportedConstructionError) Error() string {
	return fmt.Sprintf("unsupported construction type %q", e.Type)
}

func (e *UnsupportedConstructionError) UnsupportedConstruction() string {
	return string(e.Type)
}

type AreaInput struct {
	Type ConstructionType `json:"construction_type"`
	// Area is in m², except for a foundation where it is the running length in m.
	Area float64 `json:"area"`
}

type AreaEstimate struct {
	Type        ConstructionType `json:"construction_type"`
	Description string           `json:"description"`
	Area        float64          `json:"area"`
	Unit        string           `json:"unit"`
	Bill        BillOfQuantities `json:"bill"`
}

// EstimateArea gives thumb-rule materials for finishing or building the given
// area of one construction type.
func EstimateArea(in AreaInput, opts Options) (AreaEstimate, error) {
	meta, ok := constructionMeta[in.Type]
	if !ok {
		return AreaEstimate{}, &UnsupportedConstructionError{Type: in.Type}
	}
	if err := materials.Positive(materials.Field{Name: "area", Value: in.Area}); err != nil {
		return AreaEstimate{}, err
	}

	a := in.Area
	var acc accumulator
	switch in.Type {
	case BrickWall:
		cement := a * 0.3
		acc.add(KindBricks, math.Floor(a*120))
		acc.add(KindCement, cement)
		acc.add(KindSand, a*0.05)
		acc.add(KindWater, cement*waterLitresPerBag)
	case ConcreteSlab:
		concrete := a * 0.152
		cement := concrete * 7
		acc.add(KindConcrete, concrete)
		acc.add(KindCement, cement)
		acc.add(KindSand, concrete*0.42)
		acc.add(KindAggregate, concrete*0.84)
		acc.add(KindSteel, a*12)
		acc.add(KindWater, cement*waterLitresPerBag)
	case Plaster:
		cement := a * 0.18
		acc.add(KindCement, cement)
		acc.add(KindSand, a*0.015)
		acc.add(KindWater, cement*waterLitresPerBag)
	case Flooring:
		cement := a * 0.25
		acc.add(KindTiles, a*1.05)
		acc.add(KindCement, cement)
		acc.add(KindSand, a*0.02)
		acc.add(KindAdhesive, a*5)
		acc.add(KindWater, cement*waterLitresPerBag)
	case Foundation:
		// 1 m deep by 0.5 m wide per metre run
		concrete := a * 0.5
		cement := concrete * 6.5
		acc.add(KindConcrete, concrete)
		acc.add(KindCement, cement)
		acc.add(KindSand, concrete*0.45)
		acc.add(KindAggregate, concrete*0.9)
		acc.add(KindSteel, concrete*60)
		acc.add(KindWater, cement*waterLitresPerBag)
		acc.add(KindEarthwork, concrete)
	}

	bill, err := acc.bill(opts)
	if err != nil {
		return AreaEstimate{}, err
	}
	return AreaEstimate{
		Type:        in.Type,
		Description: meta.description,
		Area:        a,
		Unit:        meta.unit,
		Bill:        bill,
	}, nil
}
