package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-inventory-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestFindAll_Search(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM products WHERE (name ILIKE $1 OR sku ILIKE $1)`)).
		WithArgs("%soup%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM products WHERE (name ILIKE $1 OR sku ILIKE $1) ORDER BY name ASC LIMIT 20 OFFSET 0`)).
		WithArgs("%soup%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "sku", "base_price", "cost_price", "is_active", "created_at", "updated_at"}).
			AddRow("p1", "Tomato Soup", "SOUP-1", "6.5000", "2.1000", true, now, now))

	items, total, err := repo.FindAll(context.Background(), &dto.ProductFilters{SearchQuery: "soup", Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.True(t, items[0].BasePrice.Equal(decimal.RequireFromString("6.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCostPrice_MissingProduct(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET cost_price = $1, updated_at = $2 WHERE id = $3`)).
		WithArgs(sqlmock.AnyArg(), now, "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateCostPrice(context.Background(), "gone", decimal.NewFromInt(3), now)
	assert.ErrorContains(t, err, "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecipe(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM product_ingredients WHERE product_id = $1`)).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "ingredient_id", "quantity", "unit_id"}).
			AddRow("p1", "i-tomato", "0.3", "kg"))

	items, err := repo.ListRecipe(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "kg", items[0].UnitID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
