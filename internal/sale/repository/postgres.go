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

func (r *PGRepository) Create(ctx context.Context, s *model.Sale) error {
	exec := postgres.Executor(ctx, r.DB)

	query := `
		INSERT INTO sales (id, order_id, total, cost_of_goods_sold, created_by, sale_date)
		VALUES (:id, :order_id, :total, :cost_of_goods_sold, :created_by, :sale_date)
	`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, s); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, discount, line_total)
		VALUES (:id, :sale_id, :product_id, :quantity, :unit_price, :discount, :line_total)
	`
	for i := range s.Items {
		if _, err := sqlx.NamedExecContext(ctx, exec, itemQuery, &s.Items[i]); err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Sale, error) {
	exec := postgres.Executor(ctx, r.DB)

	var s model.Sale
	if err := sqlx.GetContext(ctx, exec, &s, `SELECT * FROM sales WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := sqlx.SelectContext(ctx, exec, &s.Items, `SELECT * FROM sale_items WHERE sale_id = $1`, id); err != nil {
		return nil, err
	}
	return &s, nil
}
