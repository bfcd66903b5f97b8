// Package boq builds bills of quantities for reinforced concrete elements.
package boq

import (
	"fmt"

	"CivilBot/internal/calc/materials"
	"CivilBot/internal/calc/mix"
)

type Shape string

const (
	ShapeBeam    Shape = "beam"
	ShapeColumn  Shape = "column"
	ShapeSlab    Shape = "slab"
	ShapeFooting Shape = "footing"
)

// Shapes lists the supported element shapes.
var Shapes = []Shape{ShapeBeam, ShapeColumn, ShapeSlab, ShapeFooting}

type ItemKind string

const (
	KindConcrete  ItemKind = "concrete"
	KindSteel     ItemKind = "steel"
	KindFormwork  ItemKind = "formwork"
	KindCement    ItemKind = "cement"
	KindSand      ItemKind = "sand"
	KindAggregate ItemKind = "aggregate"
	KindBricks    ItemKind = "bricks"
	KindMortar    ItemKind = "mortar"
	KindTiles     ItemKind = "tiles"
	KindAdhesive  ItemKind = "tile_adhesive"
	KindWater     ItemKind = "water"
	KindEarthwork ItemKind = "excavation"
)

var itemMeta = map[ItemKind]struct {
	description string
	unit        string
}{
	KindConcrete:  {"Reinforced cement concrete", "m³"},
	KindSteel:     {"Reinforcement steel", "kg"},
	KindFormwork:  {"Formwork (shuttering)", "m²"},
	KindCement:    {"Cement (50 kg bags)", "bags"},
	KindSand:      {"Fine aggregate (sand)", "m³"},
	KindAggregate: {"Coarse aggregate (20 mm)", "m³"},
	KindBricks:    {"Bricks", "nos"},
	KindMortar:    {"Cement mortar", "m³"},
	KindTiles:     {"Floor tiles (5% wastage)", "m²"},
	KindAdhesive:  {"Tile adhesive", "kg"},
	KindWater:     {"Water", "litres"},
	KindEarthwork: {"Earthwork in excavation", "m³"},
}

// ElementSpec describes one structural element (or Count identical ones).
// For a column, LengthM is its height.
type ElementSpec struct {
	Name          string  `json:"name"`
	Shape         Shape   `json:"shape"`
	LengthM       float64 `json:"length_m"`
	WidthM        float64 `json:"width_m"`
	DepthM        float64 `json:"depth_m"`
	Count         int     `json:"count"`
	ConcreteGrade string  `json:"concrete_grade"`
	SteelGrade    string  `json:"steel_grade"`
}

type Item struct {
	Kind        ItemKind `json:"kind"`
	Description string   `json:"description"`
	Unit        string   `json:"unit"`
	Quantity    float64  `json:"quantity"`
	Rate        float64  `json:"rate,omitempty"`
	Amount      float64  `json:"amount,omitempty"`
}

type BillOfQuantities struct {
	Items        []Item  `json:"items"`
	MaterialCost float64 `json:"material_cost"`
	LabourCost   float64 `json:"labour_cost"`
	TotalCost    float64 `json:"total_cost"`
}

type Options struct {
	Rates         map[ItemKind]float64 `json:"rates,omitempty"`
	LabourPercent float64              `json:"labour_percent"`
	// SteelPercent is reinforcement as a percentage of concrete volume.
	SteelPercent map[Shape]float64 `json:"steel_percent,omitempty"`
}

func DefaultSteelPercent() map[Shape]float64 {
	return map[Shape]float64{
		ShapeBeam:    2.0,
		ShapeColumn:  2.5,
		ShapeSlab:    1.0,
		ShapeFooting: 0.8,
	}
}

// DefaultRates returns unit rates in rupees per item unit.
func DefaultRates() map[ItemKind]float64 {
	return map[ItemKind]float64{
		KindCement:    450,
		KindSand:      1500,
		KindAggregate: 1200,
		KindSteel:     60,
		KindFormwork:  350,
		KindBricks:    8,
	}
}

// DefaultOptions prices with DefaultRates and 40% labour.
func DefaultOptions() Options {
	return Options{
		Rates:         DefaultRates(),
		LabourPercent: 40,
		SteelPercent:  DefaultSteelPercent(),
	}
}

// UnsupportedShapeError reports an element shape outside the closed set.
type UnsupportedShapeError struct {
	Shape Shape
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("unsupported element shape %q", e.Shape)
}

func (e *UnsupportedShapeError) UnsupportedShape() string {
	return string(e.Shape)
}

// Estimate computes the bill of quantities for elements. Lines of the same kind
// are summed and kept in the order their kind was first produced.
func Estimate(elements []ElementSpec, opts Options) (BillOfQuantities, error) {
	var acc accumulator
	for i, el := range elements {
		lines, err := quantities(el, opts)
		if err != nil {
			if el.Name != "" {
				return BillOfQuantities{}, fmt.Errorf("element %q: %w", el.Name, err)
			}
			return BillOfQuantities{}, fmt.Errorf("element %d: %w", i+1, err)
		}
		for _, l := range lines {
			acc.add(l.kind, l.qty)
		}
	}
	return acc.bill(opts)
}

type line struct {
	kind ItemKind
	qty  float64
}

func quantities(el ElementSpec, opts Options) ([]line, error) {
	switch el.Shape {
	case ShapeBeam, ShapeColumn, ShapeSlab, ShapeFooting:
	default:
		return nil, &UnsupportedShapeError{Shape: el.Shape}
	}
	if err := materials.Positive(
		materials.Field{Name: "length_m", Value: el.LengthM},
		materials.Field{Name: "width_m", Value: el.WidthM},
		materials.Field{Name: "depth_m", Value: el.DepthM},
	); err != nil {
		return nil, err
	}
	if el.Count < 0 {
		return nil, &materials.InvalidInputError{Field: "count", Value: float64(el.Count)}
	}
	concrete, err := materials.Concrete(el.ConcreteGrade)
	if err != nil {
		return nil, err
	}
	steel, err := materials.Steel(el.SteelGrade)
	if err != nil {
		return nil, err
	}

	n := float64(el.Count)
	if el.Count == 0 {
		n = 1
	}
	L, W, D := el.LengthM, el.WidthM, el.DepthM

	volume := L * W * D * n
	steelPct, ok := opts.SteelPercent[el.Shape]
	if !ok {
		steelPct = DefaultSteelPercent()[el.Shape]
	}
	steelKG := volume * steelPct / 100 * steel.DensityKG

	var formwork float64
	switch el.Shape {
	case ShapeBeam:
		// soffit and two sides
		formwork = L * (W + 2*D)
	case ShapeColumn:
		formwork = 2 * (W + D) * L
	case ShapeSlab:
		// soffit and edges
		formwork = L*W + 2*(L+W)*D
	case ShapeFooting:
		formwork = 2 * (L + W) * D
	}
	formwork *= n
	if err := materials.Finite(
		materials.Field{Name: "concrete_m3", Value: volume},
		materials.Field{Name: "steel_kg", Value: steelKG},
		materials.Field{Name: "formwork_m2", Value: formwork},
	); err != nil {
		return nil, err
	}

	m, err := mix.Calculate(mix.Input{Grade: concrete.Name, VolumeM3: volume})
	if err != nil {
		return nil, err
	}

	return []line{
		{KindConcrete, volume},
		{KindSteel, steelKG},
		{KindFormwork, formwork},
		{KindCement, m.CementBags},
		{KindSand, m.Sand.VolumeM3},
		{KindAggregate, m.Aggregate.VolumeM3},
	}, nil
}

// accumulator sums quantities per kind in first-seen order.
type accumulator struct {
	index map[ItemKind]int
	items []Item
}

func (a *accumulator) add(kind ItemKind, qty float64) {
	if a.index == nil {
		a.index = make(map[ItemKind]int)
	}
	if i, ok := a.index[kind]; ok {
		a.items[i].Quantity += qty
		return
	}
	meta := itemMeta[kind]
	a.index[kind] = len(a.items)
	a.items = append(a.items, Item{
		Kind:        kind,
		Description: meta.description,
		Unit:        meta.unit,
		Quantity:    qty,
	})
}

// bill prices the summed items. A total that overflows float64 is an
// InvalidInputError naming the item.
func (a *accumulator) bill(opts Options) (BillOfQuantities, error) {
	items := a.items
	if items == nil {
		items = []Item{}
	}
	for _, it := range items {
		if err := materials.Finite(materials.Field{Name: string(it.Kind), Value: it.Quantity}); err != nil {
			return BillOfQuantities{}, err
		}
	}
	bill := BillOfQuantities{Items: items}
	if err := applyRates(&bill, opts.Rates, opts.LabourPercent); err != nil {
		return BillOfQuantities{}, err
	}
	return bill, nil
}
