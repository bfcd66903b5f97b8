package boq

import (
	"CivilBot/internal/calc/materials"
)

// Thumb-rule quantities for a framed room, per m³ of concrete or m² of floor.
const (
	roomSlabThicknessM   = 0.15
	roomBeamFactor       = 0.03 // m³ per m² of floor
	roomColumnFactor     = 0.02
	roomFootingFactor    = 0.05
	roomCementBagsPerM3  = 8.5
	roomSandPerM3        = 0.45
	roomAggregatePerM3   = 0.9
	roomSteelKGPerM3     = 80
	wallThicknessM       = 0.23
	bricksPerM3          = 500
	mortarFraction       = 0.3
	mortarCementBagsPerM = 5.5
	mortarSandPerM3      = 1.0
)

type RoomInput struct {
	LengthM float64 `json:"length_m"`
	WidthM  float64 `json:"width_m"`
	HeightM float64 `json:"height_m"`
}

type RoomEstimate struct {
	FloorAreaM2 float64          `json:"floor_area_m2"`
	WallAreaM2  float64          `json:"wall_area_m2"`
	Bill        BillOfQuantities `json:"bill"`
}

// EstimateRoom gives an order-of-magnitude bill for a single framed room with
// 230 mm brick walls on all four sides.
func EstimateRoom(in RoomInput, opts Options) (RoomEstimate, error) {
	if err := materials.Positive(
		materials.Field{Name: "length_m", Value: in.LengthM},
		materials.Field{Name: "width_m", Value: in.WidthM},
		materials.Field{Name: "height_m", Value: in.HeightM},
	); err != nil {
		return RoomEstimate{}, err
	}

	floor := in.LengthM * in.WidthM
	walls := 2 * (in.LengthM + in.WidthM) * in.HeightM

	concrete := floor*roomSlabThicknessM + floor*(roomBeamFactor+roomColumnFactor+roomFootingFactor)
	brickVolume := walls * wallThicknessM
	mortar := brickVolume * mortarFraction

	var acc accumulator
	acc.add(KindConcrete, concrete)
	acc.add(KindCement, concrete*roomCementBagsPerM3+mortar*mortarCementBagsPerM)
	acc.add(KindSand, concrete*roomSandPerM3+mortar*mortarSandPerM3)
	acc.add(KindAggregate, concrete*roomAggregatePerM3)
	acc.add(KindSteel, concrete*roomSteelKGPerM3)
	acc.add(KindBricks, brickVolume*bricksPerM3)
	acc.add(KindMortar, mortar)

	bill, err := acc.bill(opts)
	if err != nil {
		return RoomEstimate{}, err
	}
	return RoomEstimate{
		FloorAreaM2: floor,
		WallAreaM2:  walls,
		Bill:        bill,
	}, nil
}
