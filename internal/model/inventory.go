package model

import "time"

// Inventory is the authoritative stock row for exactly one product or one ingredient.
type Inventory struct {
	ID            string    `db:"id" json:"id"`
	ProductID     *string   `db:"product_id" json:"product_id,omitempty"`
	IngredientID  *string   `db:"ingredient_id" json:"ingredient_id,omitempty"`
	CurrentStock  int64     `db:"current_stock" json:"current_stock"`
	MinStockLevel int64     `db:"min_stock_level" json:"min_stock_level"`
	InitialStock  int64     `db:"initial_stock" json:"initial_stock"`
	LastUpdated   time.Time `db:"last_updated" json:"last_updated"`
}

func (i *Inventory) IsLow() bool {
	return i.CurrentStock < i.MinStockLevel
}

// Target returns the stock target this row belongs to.
func (i *Inventory) Target() StockTarget {
	if i.IngredientID != nil {
		return StockTarget{IngredientID: *i.IngredientID}
	}
	if i.ProductID != nil {
		return StockTarget{ProductID: *i.ProductID}
	}
	return StockTarget{}
}

// StockTarget names a product or an ingredient, never both.
type StockTarget struct {
	ProductID    string
	IngredientID string
}

func ProductTarget(id string) StockTarget    { return StockTarget{ProductID: id} }
func IngredientTarget(id string) StockTarget { return StockTarget{IngredientID: id} }

func (t StockTarget) IsIngredient() bool { return t.IngredientID != "" }

func (t StockTarget) ID() string {
	if t.IsIngredient() {
		return t.IngredientID
	}
	return t.ProductID
}

func (t StockTarget) Kind() string {
	if t.IsIngredient() {
		return "ingredient"
	}
	return "product"
}

func (t StockTarget) Valid() bool {
	return (t.ProductID == "") != (t.IngredientID == "")
}

func (t StockTarget) String() string {
	return t.Kind() + ":" + t.ID()
}

func (t StockTarget) ProductPtr() *string {
	if t.ProductID == "" {
		return nil
	}
	id := t.ProductID
	return &id
}

func (t StockTarget) IngredientPtr() *string {
	if t.IngredientID == "" {
		return nil
	}
	id := t.IngredientID
	return &id
}

type TransactionType string

const (
	TransactionIn          TransactionType = "IN"
	TransactionOut         TransactionType = "OUT"
	TransactionAddition    TransactionType = "ADDITION"
	TransactionSubtraction TransactionType = "SUBTRACTION"
)

// Sign is +1 for stock-increasing types, -1 for decreasing ones and 0 otherwise.
func (t TransactionType) Sign() int64 {
	switch t {
	case TransactionIn, TransactionAddition:
		return 1
	case TransactionOut, TransactionSubtraction:
		return -1
	default:
		return 0
	}
}

func (t TransactionType) IsAdjustment() bool {
	return t == TransactionAddition || t == TransactionSubtraction
}

func (t TransactionType) Valid() bool {
	return t.Sign() != 0
}

type SourceType string

const (
	SourceSale     SourceType = "sale"
	SourcePurchase SourceType = "purchase"
	SourceManual   SourceType = "manual"
)

type StockTransaction struct {
	ID               string          `db:"id" json:"id"`
	ProductID        *string         `db:"product_id" json:"product_id,omitempty"`
	IngredientID     *string         `db:"ingredient_id" json:"ingredient_id,omitempty"`
	TransactionType  TransactionType `db:"transaction_type" json:"transaction_type"`
	Quantity         int64           `db:"quantity" json:"quantity"`
	TransactionDate  time.Time       `db:"transaction_date" json:"transaction_date"`
	SourceType       SourceType      `db:"source_type" json:"source_type"`
	SourceID         *string         `db:"source_id" json:"source_id,omitempty"`
	AdjustmentReason *string         `db:"adjustment_reason" json:"adjustment_reason,omitempty"`
	CreatedBy        string          `db:"created_by" json:"created_by"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

func (t *StockTransaction) Target() StockTarget {
	if t.IngredientID != nil {
		return StockTarget{IngredientID: *t.IngredientID}
	}
	if t.ProductID != nil {
		return StockTarget{ProductID: *t.ProductID}
	}
	return StockTarget{}
}
