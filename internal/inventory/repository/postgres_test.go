package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/jmoiron/sqlx"
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

var inventoryColumns = []string{"id", "product_id", "ingredient_id", "current_stock", "min_stock_level", "initial_stock", "last_updated"}

func TestGetByTargetForUpdate_Ingredient(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM inventory WHERE ingredient_id = $1 FOR UPDATE`)).
		WithArgs("ing-1").
		WillReturnRows(sqlmock.NewRows(inventoryColumns).AddRow("inv-1", nil, "ing-1", 40, 10, 50, now))

	inv, err := repo.GetByTargetForUpdate(context.Background(), model.IngredientTarget("ing-1"))
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Equal(t, int64(40), inv.CurrentStock)
	assert.Nil(t, inv.ProductID)
	assert.Equal(t, model.IngredientTarget("ing-1"), inv.Target())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByTarget_NotFound(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM inventory WHERE product_id = $1`)).
		WithArgs("p-missing").
		WillReturnRows(sqlmock.NewRows(inventoryColumns))

	inv, err := repo.GetByTarget(context.Background(), model.ProductTarget("p-missing"))
	assert.NoError(t, err)
	assert.Nil(t, inv)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStock(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE inventory SET current_stock = $1, last_updated = $2 WHERE id = $3`)).
		WithArgs(int64(7), now, "inv-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStock(context.Background(), &model.Inventory{ID: "inv-1", CurrentStock: 7, LastUpdated: now})
	assert.NoError(t, err)

	mock.ExpectExec("UPDATE inventory").WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.UpdateStock(context.Background(), &model.Inventory{ID: "gone", LastUpdated: now})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTransactions_Filters(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM stock_transactions WHERE product_id = $1 AND transaction_type = $2`)).
		WithArgs("p1", "OUT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM stock_transactions WHERE product_id = $1 AND transaction_type = $2 ORDER BY transaction_date DESC LIMIT 20 OFFSET 20`)).
		WithArgs("p1", "OUT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "transaction_type", "quantity", "transaction_date", "source_type", "created_by", "updated_at"}).
			AddRow("tx-1", "p1", "OUT", 3, now, "sale", "cashier-1", now))

	items, total, err := repo.ListTransactions(context.Background(), &dto.TransactionFilters{
		ProductID:       "p1",
		TransactionType: "out",
		Page:            2,
		PageSize:        20,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, model.TransactionOut, items[0].TransactionType)
	assert.Equal(t, model.SourceSale, items[0].SourceType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_ProductConflictColumn(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now().UTC()
	pid := "p1"

	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (product_id)`)).
		WillReturnRows(sqlmock.NewRows(inventoryColumns).AddRow("inv-existing", "p1", nil, 12, 4, 20, now))

	inv := &model.Inventory{ID: "inv-new", ProductID: &pid, CurrentStock: 0, MinStockLevel: 4, LastUpdated: now}
	require.NoError(t, repo.Upsert(context.Background(), inv))
	assert.Equal(t, "inv-existing", inv.ID)
	assert.Equal(t, int64(12), inv.CurrentStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}
