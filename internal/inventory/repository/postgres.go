package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-inventory-service/internal/inventory/dto"
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

func targetColumn(t model.StockTarget) string {
	if t.IsIngredient() {
		return "ingredient_id"
	}
	return "product_id"
}

func (r *PGRepository) getByTarget(ctx context.Context, target model.StockTarget, lock string) (*model.Inventory, error) {
	var inv model.Inventory
	query := fmt.Sprintf(`SELECT * FROM inventory WHERE %s = $1%s`, targetColumn(target), lock)

	err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &inv, query, target.ID())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PGRepository) GetByTarget(ctx context.Context, target model.StockTarget) (*model.Inventory, error) {
	return r.getByTarget(ctx, target, "")
}

func (r *PGRepository) GetByTargetForUpdate(ctx context.Context, target model.StockTarget) (*model.Inventory, error) {
	return r.getByTarget(ctx, target, " FOR UPDATE")
}

func (r *PGRepository) BatchGetByProducts(ctx context.Context, productIDs []string) ([]model.Inventory, error) {
	if len(productIDs) == 0 {
		return []model.Inventory{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM inventory WHERE product_id IN (?)`, productIDs)
	if err != nil {
		return nil, err
	}

	db := postgres.Executor(ctx, r.DB)
	var items []model.Inventory
	err = sqlx.SelectContext(ctx, db, &items, db.Rebind(query), args...)
	return items, err
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.Inventory, int, error) {
	conditions := []string{}
	args := []interface{}{}

	if f.ProductID != "" {
		args = append(args, f.ProductID)
		conditions = append(conditions, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if f.LowStock {
		conditions = append(conditions, "current_stock < min_stock_level")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	db := postgres.Executor(ctx, r.DB)

	var count int
	if err := sqlx.GetContext(ctx, db, &count, "SELECT count(*) FROM inventory"+whereClause, args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM inventory" + whereClause + " ORDER BY last_updated DESC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	items := []model.Inventory{}
	if err := sqlx.SelectContext(ctx, db, &items, query, args...); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (r *PGRepository) ListBelowMinimum(ctx context.Context) ([]model.Inventory, error) {
	items := []model.Inventory{}
	err := sqlx.SelectContext(ctx, postgres.Executor(ctx, r.DB), &items,
		`SELECT * FROM inventory WHERE current_stock < min_stock_level ORDER BY last_updated`)
	return items, err
}

// Upsert inserts the row or, when the target already has one, updates its
// minimum level. inv is refreshed from the stored row.
func (r *PGRepository) Upsert(ctx context.Context, inv *model.Inventory) error {
	query := fmt.Sprintf(`
		INSERT INTO inventory (
			id, product_id, ingredient_id, current_stock, min_stock_level, initial_stock, last_updated
		)
		VALUES (
			:id, :product_id, :ingredient_id, :current_stock, :min_stock_level, :initial_stock, :last_updated
		)
		ON CONFLICT (%s)
		DO UPDATE SET
			min_stock_level = EXCLUDED.min_stock_level,
			last_updated = EXCLUDED.last_updated
		RETURNING *
	`, targetColumn(inv.Target()))

	rows, err := sqlx.NamedQueryContext(ctx, postgres.Executor(ctx, r.DB), query, inv)
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return errors.New("upsert inventory returned no row")
	}
	return rows.StructScan(inv)
}

func (r *PGRepository) UpdateStock(ctx context.Context, inv *model.Inventory) error {
	query := `UPDATE inventory SET current_stock = $1, last_updated = $2 WHERE id = $3`
	res, err := postgres.Executor(ctx, r.DB).ExecContext(ctx, query, inv.CurrentStock, inv.LastUpdated, inv.ID)
	if err != nil {
		return fmt.Errorf("update inventory %s: %w", inv.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update inventory %s: no row", inv.ID)
	}
	return nil
}

func (r *PGRepository) CreateTransaction(ctx context.Context, t *model.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (
			id, product_id, ingredient_id, transaction_type, quantity, transaction_date,
			source_type, source_id, adjustment_reason, created_by, updated_at
		)
		VALUES (
			:id, :product_id, :ingredient_id, :transaction_type, :quantity, :transaction_date,
			:source_type, :source_id, :adjustment_reason, :created_by, :updated_at
		)
	`
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, t)
	if err != nil {
		return fmt.Errorf("failed to record stock transaction: %w", err)
	}
	return nil
}

func (r *PGRepository) GetTransactionForUpdate(ctx context.Context, id string) (*model.StockTransaction, error) {
	var t model.StockTransaction
	err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &t,
		`SELECT * FROM stock_transactions WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGRepository) UpdateTransaction(ctx context.Context, t *model.StockTransaction) error {
	query := `
		UPDATE stock_transactions
		SET transaction_type = :transaction_type,
			quantity = :quantity,
			transaction_date = :transaction_date,
			adjustment_reason = :adjustment_reason,
			updated_at = :updated_at
		WHERE id = :id
	`
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, t)
	return err
}

func (r *PGRepository) ListTransactions(ctx context.Context, f *dto.TransactionFilters) ([]model.StockTransaction, int, error) {
	conditions := []string{}
	args := []interface{}{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != "" {
		add("product_id = $%d", f.ProductID)
	}
	if f.IngredientID != "" {
		add("ingredient_id = $%d", f.IngredientID)
	}
	if f.TransactionType != "" {
		add("transaction_type = $%d", strings.ToUpper(f.TransactionType))
	}
	if f.SourceType != "" {
		add("source_type = $%d", f.SourceType)
	}
	if f.StartDate != nil {
		add("transaction_date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("transaction_date <= $%d", *f.EndDate)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	db := postgres.Executor(ctx, r.DB)

	var count int
	if err := sqlx.GetContext(ctx, db, &count, "SELECT count(*) FROM stock_transactions"+whereClause, args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM stock_transactions" + whereClause + " ORDER BY transaction_date DESC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	items := []model.StockTransaction{}
	if err := sqlx.SelectContext(ctx, db, &items, query, args...); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}
