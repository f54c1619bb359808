package model

import "time"

type AuditLog struct {
	ID          string    `db:"id" json:"id"`
	Action      string    `db:"action" json:"action"`
	EntityType  string    `db:"entity_type" json:"entity_type"`
	EntityID    string    `db:"entity_id" json:"entity_id"`
	PerformedBy string    `db:"performed_by" json:"performed_by"`
	Details     string    `db:"details" json:"details"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
