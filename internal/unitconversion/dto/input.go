package dto

import "github.com/shopspring/decimal"

type CreateConversionInput struct {
	FromUnitID       string          `json:"from_unit_id" validate:"required,uuid"`
	ToUnitID         string          `json:"to_unit_id" validate:"required,uuid"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	Actor            string          `json:"-" validate:"required"`
}

type ConvertQuery struct {
	From  string `form:"from" binding:"required,uuid"`
	To    string `form:"to" binding:"required,uuid"`
	Value string `form:"value" binding:"required"`
}

type ConvertResult struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Value  decimal.Decimal `json:"value"`
	Result decimal.Decimal `json:"result"`
}
