package sale

import (
	"testing"

	"github.com/fekuna/omnipos-inventory-service/internal/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTotal(t *testing.T) {
	price := decimal.RequireFromString("4.50")

	total, err := LineTotal(price, 3, decimal.RequireFromString("1.50"), "items[0]")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("12")))

	_, err = LineTotal(price, 1, decimal.RequireFromString("5"), "items[1]")
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "items[1].discount", appErr.Fields[0].Field)

	_, err = LineTotal(price, 1, decimal.RequireFromString("-1"), "items[2]")
	assert.ErrorIs(t, err, apperror.ErrValidationFailed)
}
