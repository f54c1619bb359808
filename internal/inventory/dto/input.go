package dto

// CreateStockTransactionInput records a manual movement. Exactly one of
// ProductID and IngredientID is set; AdjustmentType takes precedence over
// TransactionType and requires a Reason.
type CreateStockTransactionInput struct {
	ProductID       string `json:"product_id" validate:"required_without=IngredientID,excluded_with=IngredientID,omitempty,uuid"`
	IngredientID    string `json:"ingredient_id" validate:"omitempty,uuid"`
	TransactionType string `json:"transaction_type" validate:"required_without=AdjustmentType"`
	AdjustmentType  string `json:"adjustment_type"`
	Quantity        int64  `json:"quantity" validate:"gt=0"`
	Reason          string `json:"reason"`
	Actor           string `json:"-" validate:"required"`
}

type UpdateStockTransactionInput struct {
	ID              string `json:"-" validate:"required,uuid"`
	TransactionType string `json:"transaction_type" validate:"required_without=AdjustmentType"`
	AdjustmentType  string `json:"adjustment_type"`
	Quantity        int64  `json:"quantity" validate:"gt=0"`
	Reason          string `json:"reason"`
	Actor           string `json:"-" validate:"required"`
}

// UpsertInventoryInput creates or reconfigures an inventory row. InitialStock
// only applies when the row is created.
type UpsertInventoryInput struct {
	ProductID     string `json:"product_id" validate:"required_without=IngredientID,excluded_with=IngredientID,omitempty,uuid"`
	IngredientID  string `json:"ingredient_id" validate:"omitempty,uuid"`
	MinStockLevel int64  `json:"min_stock_level" validate:"gte=0"`
	InitialStock  int64  `json:"initial_stock" validate:"gte=0"`
	Actor         string `json:"-" validate:"required"`
}
