package dto

import (
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/shopspring/decimal"
)

type OrderLineInput struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	Discount  decimal.Decimal `json:"discount"`
}

type CreateOrderInput struct {
	TableName string           `json:"table_name"`
	OrderType string           `json:"order_type" validate:"required,oneof=DineIn TakeAway Delivery"`
	Items     []OrderLineInput `json:"items" validate:"min=1,dive"`
	Actor     string           `json:"-" validate:"required"`
	// EventID is set when the order comes from a broker event; a replayed event
	// returns the order it already produced.
	EventID   string           `json:"-" validate:"omitempty,max=128"`
}

type OrderResult struct {
	Order    *model.Order `json:"order"`
	Sale     *model.Sale  `json:"sale"`
	// Replayed is true when EventID had already been processed. Sale is nil then.
	Replayed bool         `json:"-"`
}
