package inventory

import "github.com/shopspring/decimal"

// CostingMethod represents the inventory costing method
type CostingMethod string

const (
	// CostingMethodWeightedAverage recomputes unit cost as a quantity-weighted blend on every inward movement
	CostingMethodWeightedAverage CostingMethod = "weighted_average"
)

// costScale is the number of decimal places kept on average costs
const costScale = 4

// WeightedAverageCost returns the new average unit cost after receiving
// inQty units at unitCost onto oldQty units valued at oldAvg:
//
//	(oldQty*oldAvg + inQty*unitCost) / (oldQty + inQty)
func WeightedAverageCost(oldQty, oldAvg, inQty, unitCost decimal.Decimal) decimal.Decimal {
	totalQty := oldQty.Add(inQty)
	if totalQty.LessThanOrEqual(decimal.Zero) {
		return oldAvg
	}
	// Stock at or below zero carries no value into the blend.
	if oldQty.LessThanOrEqual(decimal.Zero) {
		return unitCost.Round(costScale)
	}
	totalValue := oldQty.Mul(oldAvg).Add(inQty.Mul(unitCost))
	return totalValue.Div(totalQty).Round(costScale)
}
