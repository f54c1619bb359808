package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Unit struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Abbreviation string    `db:"abbreviation" json:"abbreviation"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type UnitConversion struct {
	ID               string          `db:"id" json:"id"`
	FromUnitID       string          `db:"from_unit_id" json:"from_unit_id"`
	ToUnitID         string          `db:"to_unit_id" json:"to_unit_id"`
	ConversionFactor decimal.Decimal `db:"conversion_factor" json:"conversion_factor"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}
