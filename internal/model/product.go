package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name      string          `db:"name" json:"name"`
	SKU       string          `db:"sku" json:"sku"`
	BasePrice decimal.Decimal `db:"base_price" json:"base_price"`
	CostPrice decimal.Decimal `db:"cost_price" json:"cost_price"`
	IsActive  bool            `db:"is_active" json:"is_active"`
}

type Ingredient struct {
	BaseModel
	Name   string `db:"name" json:"name"`
	UnitID string `db:"unit_id" json:"unit_id"` // stock unit
}

// ProductIngredient is one recipe line: Quantity of the ingredient, expressed in
// UnitID, consumed per unit of the product sold.
type ProductIngredient struct {
	ProductID    string          `db:"product_id" json:"product_id"`
	IngredientID string          `db:"ingredient_id" json:"ingredient_id"`
	Quantity     decimal.Decimal `db:"quantity" json:"quantity"`
	UnitID       string          `db:"unit_id" json:"unit_id"`
}
