package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *PGRepository) Create(ctx context.Context, p *model.Purchase) error {
	exec := postgres.Executor(ctx, r.DB)

	query := `
		INSERT INTO purchases (id, supplier_id, reference, total, received_by, received_at)
		VALUES (:id, :supplier_id, :reference, :total, :received_by, :received_at)
	`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, p); err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}

	itemQuery := `
		INSERT INTO purchase_items (id, purchase_id, product_id, quantity, unit_price, line_total)
		VALUES (:id, :purchase_id, :product_id, :quantity, :unit_price, :line_total)
	`
	for i := range p.Items {
		if _, err := sqlx.NamedExecContext(ctx, exec, itemQuery, &p.Items[i]); err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Purchase, error) {
	exec := postgres.Executor(ctx, r.DB)

	var p model.Purchase
	if err := sqlx.GetContext(ctx, exec, &p, `SELECT * FROM purchases WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := sqlx.SelectContext(ctx, exec, &p.Items, `SELECT * FROM purchase_items WHERE purchase_id = $1`, id); err != nil {
		return nil, err
	}
	return &p, nil
}
