package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-inventory-service/internal/alert/dto"
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

func TestFindAll_FiltersAndPaging(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now().UTC()
	open := false

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM alerts WHERE alert_type = $1 AND is_acknowledged = $2`)).
		WithArgs("LowStock", false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM alerts WHERE alert_type = $1 AND is_acknowledged = $2 ORDER BY alert_date DESC LIMIT 2 OFFSET 2`)).
		WithArgs("LowStock", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "alert_type", "message", "product_id", "ingredient_id", "is_acknowledged", "acknowledged_by", "acknowledged_at", "alert_date"}).
			AddRow("a-3", "LowStock", "low", "p1", nil, false, nil, nil, now))

	items, total, err := repo.FindAll(context.Background(), &dto.AlertFilters{AlertType: "LowStock", Acknowledged: &open, Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", *items[0].ProductID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasOpen_UsesTargetColumn(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT EXISTS \(\s*SELECT 1 FROM alerts WHERE alert_type = \$1 AND ingredient_id = \$2 AND is_acknowledged = FALSE`).
		WithArgs("LowStock", "i-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.HasOpen(context.Background(), model.AlertLowStock, model.IngredientTarget("i-1"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcknowledge(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now().UTC()

	mock.ExpectExec(`UPDATE alerts\s+SET is_acknowledged = TRUE`).
		WithArgs("a-1", "chef", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Acknowledge(context.Background(), "a-1", "chef", now))
	assert.NoError(t, mock.ExpectationsWereMet())
}
