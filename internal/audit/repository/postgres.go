package repository

import (
	"context"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, l *model.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, action, entity_type, entity_id, performed_by, details, created_at)
		VALUES (:id, :action, :entity_type, :entity_id, :performed_by, :details, :created_at)
	`
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, l)
	return err
}

func (r *PGRepository) FindByEntity(ctx context.Context, entityType, entityID string) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	query := `SELECT * FROM audit_logs WHERE entity_type = $1 AND entity_id = $2 ORDER BY created_at DESC`
	err := sqlx.SelectContext(ctx, postgres.Executor(ctx, r.DB), &logs, query, entityType, entityID)
	return logs, err
}
