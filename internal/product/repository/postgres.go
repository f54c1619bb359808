package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/product/dto"
	"github.com/fekuna/omnipos-inventory-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	conditions := []string{}
	args := []interface{}{}

	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if f.SearchQuery != "" {
		args = append(args, "%"+f.SearchQuery+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d)", len(args), len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	db := postgres.Executor(ctx, r.DB)

	var count int
	if err := sqlx.GetContext(ctx, db, &count, "SELECT count(*) FROM products"+whereClause, args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM products" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	products := []model.Product{}
	if err := sqlx.SelectContext(ctx, db, &products, query, args...); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *PGRepository) UpdateCostPrice(ctx context.Context, id string, cost decimal.Decimal, at time.Time) error {
	query := `UPDATE products SET cost_price = $1, updated_at = $2 WHERE id = $3`
	res, err := postgres.Executor(ctx, r.DB).ExecContext(ctx, query, cost, at, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update cost price: product %s not found", id)
	}
	return nil
}

func (r *PGRepository) ListRecipe(ctx context.Context, productID string) ([]model.ProductIngredient, error) {
	items := []model.ProductIngredient{}
	query := `SELECT * FROM product_ingredients WHERE product_id = $1 ORDER BY ingredient_id`
	err := sqlx.SelectContext(ctx, postgres.Executor(ctx, r.DB), &items, query, productID)
	return items, err
}

func (r *PGRepository) FindIngredientByID(ctx context.Context, id string) (*model.Ingredient, error) {
	var ing model.Ingredient
	err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &ing, `SELECT * FROM ingredients WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ing, nil
}
