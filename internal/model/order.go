package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderDineIn   OrderType = "DineIn"
	OrderTakeAway OrderType = "TakeAway"
	OrderDelivery OrderType = "Delivery"
)

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "Placed"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusServed    OrderStatus = "Served"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

type Order struct {
	ID        string          `db:"id" json:"id"`
	TableName string          `db:"table_name" json:"table_name"`
	OrderType OrderType       `db:"order_type" json:"order_type"`
	Status    OrderStatus     `db:"status" json:"status"`
	Total     decimal.Decimal `db:"total" json:"total"`
	CreatedBy string          `db:"created_by" json:"created_by"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	Items     []OrderItem     `db:"-" json:"items"`
}

type OrderItem struct {
	ID        string          `db:"id" json:"id"`
	OrderID   string          `db:"order_id" json:"order_id"`
	ProductID string          `db:"product_id" json:"product_id"`
	Quantity  int64           `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	Discount  decimal.Decimal `db:"discount" json:"discount"`
	LineTotal decimal.Decimal `db:"line_total" json:"line_total"`
}

type Sale struct {
	ID              string          `db:"id" json:"id"`
	OrderID         *string         `db:"order_id" json:"order_id,omitempty"`
	Total           decimal.Decimal `db:"total" json:"total"`
	CostOfGoodsSold decimal.Decimal `db:"cost_of_goods_sold" json:"cost_of_goods_sold"`
	CreatedBy       string          `db:"created_by" json:"created_by"`
	SaleDate        time.Time       `db:"sale_date" json:"sale_date"`
	Items           []SaleItem      `db:"-" json:"items"`
}

type SaleItem struct {
	ID        string          `db:"id" json:"id"`
	SaleID    string          `db:"sale_id" json:"sale_id"`
	ProductID string          `db:"product_id" json:"product_id"`
	Quantity  int64           `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	Discount  decimal.Decimal `db:"discount" json:"discount"`
	LineTotal decimal.Decimal `db:"line_total" json:"line_total"`
}

type Purchase struct {
	ID         string          `db:"id" json:"id"`
	SupplierID *string         `db:"supplier_id" json:"supplier_id,omitempty"`
	Reference  string          `db:"reference" json:"reference"`
	Total      decimal.Decimal `db:"total" json:"total"`
	ReceivedBy string          `db:"received_by" json:"received_by"`
	ReceivedAt time.Time       `db:"received_at" json:"received_at"`
	Items      []PurchaseItem  `db:"-" json:"items"`
}

type PurchaseItem struct {
	ID         string          `db:"id" json:"id"`
	PurchaseID string          `db:"purchase_id" json:"purchase_id"`
	ProductID  string          `db:"product_id" json:"product_id"`
	Quantity   int64           `db:"quantity" json:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price" json:"unit_price"`
	LineTotal  decimal.Decimal `db:"line_total" json:"line_total"`
}
