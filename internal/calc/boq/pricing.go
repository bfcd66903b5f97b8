package boq

import (
	"github.com/shopspring/decimal"

	"CivilBot/internal/calc/materials"
)

// applyRates prices every item that has a rate and fills the bill totals.
// Amounts are rounded to paise before summing.
func applyRates(bill *BillOfQuantities, rates map[ItemKind]float64, labourPercent float64) error {
	if len(rates) == 0 {
		return nil
	}
	material := decimal.Zero
	for i := range bill.Items {
		rate, ok := rates[bill.Items[i].Kind]
		if !ok {
			continue
		}
		if err := materials.Finite(materials.Field{Name: "rate", Value: rate}); err != nil {
			return err
		}
		amount := decimal.NewFromFloat(bill.Items[i].Quantity).
			Mul(decimal.NewFromFloat(rate)).
			Round(2)
		bill.Items[i].Rate = rate
		bill.Items[i].Amount = amount.InexactFloat64()
		material = material.Add(amount)
	}
	labour := material.Mul(decimal.NewFromFloat(labourPercent)).Div(decimal.NewFromInt(100)).Round(2)

	bill.MaterialCost = material.InexactFloat64()
	bill.LabourCost = labour.InexactFloat64()
	bill.TotalCost = material.Add(labour).InexactFloat64()
	return materials.Finite(
		materials.Field{Name: "material_cost", Value: bill.MaterialCost},
		materials.Field{Name: "total_cost", Value: bill.TotalCost},
	)
}
