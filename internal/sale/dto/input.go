package dto

import "github.com/shopspring/decimal"

type SaleLineInput struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	Discount  decimal.Decimal `json:"discount"`
}

type CreateSaleInput struct {
	Items []SaleLineInput `json:"items" validate:"min=1,dive"`
	Actor string          `json:"-" validate:"required"`
}
