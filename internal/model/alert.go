package model

import "time"

type AlertType string

const (
	AlertLowStock    AlertType = "LowStock"
	AlertReplenished AlertType = "Replenished"
)

type Alert struct {
	ID             string     `db:"id" json:"id"`
	AlertType      AlertType  `db:"alert_type" json:"alert_type"`
	Message        string     `db:"message" json:"message"`
	ProductID      *string    `db:"product_id" json:"product_id,omitempty"`
	IngredientID   *string    `db:"ingredient_id" json:"ingredient_id,omitempty"`
	IsAcknowledged bool       `db:"is_acknowledged" json:"is_acknowledged"`
	AcknowledgedBy *string    `db:"acknowledged_by" json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time `db:"acknowledged_at" json:"acknowledged_at,omitempty"`
	AlertDate      time.Time  `db:"alert_date" json:"alert_date"`
}
