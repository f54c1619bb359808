package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
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

func TestCreate_InsertsOrderAndItems(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now().UTC()

	o := &model.Order{
		ID: "ord-1", TableName: "T1", OrderType: model.OrderDineIn, Status: model.OrderStatusPlaced,
		Total: decimal.NewFromInt(24), CreatedBy: "waiter-1", CreatedAt: now,
		Items: []model.OrderItem{
			{ID: "oi-1", OrderID: "ord-1", ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(12), LineTotal: decimal.NewFromInt(24)},
		},
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).
		WithArgs("ord-1", "T1", "DineIn", "Placed", sqlmock.AnyArg(), "waiter-1", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO order_items`)).
		WithArgs("oi-1", "ord-1", "p1", int64(2), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), o))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_LoadsItems(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM orders WHERE id = $1`)).
		WithArgs("ord-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "table_name", "order_type", "status", "total", "created_by", "created_at"}).
			AddRow("ord-1", "T1", "DineIn", "Placed", "24.0000", "waiter-1", now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM order_items WHERE order_id = $1`)).
		WithArgs("ord-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "unit_price", "discount", "line_total"}).
			AddRow("oi-1", "ord-1", "p1", 2, "12.0000", "0", "24.0000"))

	o, err := repo.FindByID(context.Background(), "ord-1")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, model.OrderDineIn, o.OrderType)
	assert.True(t, o.Total.Equal(decimal.NewFromInt(24)))
	require.Len(t, o.Items, 1)
	assert.Equal(t, int64(2), o.Items[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_Missing(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM orders WHERE id = $1`)).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	o, err := repo.FindByID(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, o)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderIDForEvent(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT order_id FROM processed_order_events WHERE event_id = $1`)).
		WithArgs("evt-1").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow("ord-1"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT order_id FROM processed_order_events WHERE event_id = $1`)).
		WithArgs("evt-2").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}))

	id, err := repo.OrderIDForEvent(context.Background(), "evt-1")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", id)

	id, err = repo.OrderIDForEvent(context.Background(), "evt-2")
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkEventProcessed_ReportsDuplicate(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO processed_order_events`)).
		WithArgs("evt-1", "ord-1", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO processed_order_events`)).
		WithArgs("evt-1", "ord-2", now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	fresh, err := repo.MarkEventProcessed(context.Background(), "evt-1", "ord-1", now)
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = repo.MarkEventProcessed(context.Background(), "evt-1", "ord-2", now)
	require.NoError(t, err)
	assert.False(t, fresh)
	assert.NoError(t, mock.ExpectationsWereMet())
}
