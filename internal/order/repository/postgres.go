package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	exec := postgres.Executor(ctx, r.DB)

	query := `
		INSERT INTO orders (id, table_name, order_type, status, total, created_by, created_at)
		VALUES (:id, :table_name, :order_type, :status, :total, :created_by, :created_at)
	`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, o); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, discount, line_total)
		VALUES (:id, :order_id, :product_id, :quantity, :unit_price, :discount, :line_total)
	`
	for i := range o.Items {
		if _, err := sqlx.NamedExecContext(ctx, exec, itemQuery, &o.Items[i]); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	exec := postgres.Executor(ctx, r.DB)

	var o model.Order
	if err := sqlx.GetContext(ctx, exec, &o, `SELECT * FROM orders WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := sqlx.SelectContext(ctx, exec, &o.Items, `SELECT * FROM order_items WHERE order_id = $1`, id); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) OrderIDForEvent(ctx context.Context, eventID string) (string, error) {
	exec := postgres.Executor(ctx, r.DB)

	var orderID string
	err := sqlx.GetContext(ctx, exec, &orderID, `SELECT order_id FROM processed_order_events WHERE event_id = $1`, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find order event: %w", err)
	}
	return orderID, nil
}

func (r *PGRepository) MarkEventProcessed(ctx context.Context, eventID, orderID string, at time.Time) (bool, error) {
	exec := postgres.Executor(ctx, r.DB)

	res, err := exec.ExecContext(ctx, `
		INSERT INTO processed_order_events (event_id, order_id, processed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id) DO NOTHING
	`, eventID, orderID, at)
	if err != nil {
		return false, fmt.Errorf("record order event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
