package purchase

import "github.com/shopspring/decimal"

// CostScale is the number of decimal places kept for cost prices.
const CostScale = 4

// WeightedAverageCost blends the cost of oldQty units on hand with newQty
// units bought at price. With nothing on hand the purchase price is used.
func WeightedAverageCost(oldQty int64, oldCost decimal.Decimal, newQty int64, price decimal.Decimal) decimal.Decimal {
	if oldQty <= 0 || oldQty+newQty <= 0 {
		return price.Round(CostScale)
	}
	held := oldCost.Mul(decimal.NewFromInt(oldQty))
	bought := price.Mul(decimal.NewFromInt(newQty))
	return held.Add(bought).Div(decimal.NewFromInt(oldQty + newQty)).Round(CostScale)
}
