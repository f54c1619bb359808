package dto

import "github.com/shopspring/decimal"

type PurchaseLineInput struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type ReceivePurchaseInput struct {
	SupplierID string              `json:"supplier_id" validate:"omitempty,uuid"`
	Reference  string              `json:"reference"`
	Items      []PurchaseLineInput `json:"items" validate:"min=1,dive"`
	Actor      string              `json:"-" validate:"required"`
}
