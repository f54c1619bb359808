package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/apperror"
	auditusecase "github.com/fekuna/omnipos-inventory-service/internal/audit/usecase"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/storetest"
	"github.com/fekuna/omnipos-inventory-service/internal/unitconversion"
	"github.com/fekuna/omnipos-inventory-service/internal/unitconversion/dto"
	"github.com/fekuna/omnipos-inventory-service/pkg/clock"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	kg    = storetest.ID("kg")
	gram  = storetest.ID("g")
	litre = storetest.ID("l")
	ml    = storetest.ID("ml")
	piece = storetest.ID("pc")
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (unitconversion.UseCase, *storetest.Store, *storetest.MemoryCache) {
	t.Helper()
	store := storetest.New()
	store.AddUnit(kg, "kilogram")
	store.AddUnit(gram, "gram")
	store.AddUnit(litre, "litre")
	store.AddUnit(ml, "millilitre")
	store.AddUnit(piece, "piece")

	cache := storetest.NewMemoryCache()
	clk := clock.NewFixed(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	uc := NewConversionUseCase(store.UnitRepo(), store, cache, time.Minute,
		auditusecase.NewAuditSink(store.AuditRepo(), clk), clk, logger.NewNop())
	return uc, store, cache
}

func TestConvert(t *testing.T) {
	uc, store, _ := setup(t)
	store.AddConversion(model.UnitConversion{ID: "c1", FromUnitID: kg, ToUnitID: gram, ConversionFactor: d("1000")})
	ctx := context.Background()

	got, err := uc.Convert(ctx, kg, gram, d("2.5"))
	require.NoError(t, err)
	assert.True(t, got.Equal(d("2500")), got.String())

	got, err = uc.Convert(ctx, gram, kg, d("250"))
	require.NoError(t, err)
	assert.True(t, got.Equal(d("0.25")), got.String())

	got, err = uc.Convert(ctx, piece, piece, d("7"))
	require.NoError(t, err)
	assert.True(t, got.Equal(d("7")))

	_, err = uc.Convert(ctx, kg, ml, d("1"))
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestConvert_RoundTrip(t *testing.T) {
	uc, store, _ := setup(t)
	store.AddConversion(model.UnitConversion{ID: "c1", FromUnitID: litre, ToUnitID: ml, ConversionFactor: d("1000")})
	ctx := context.Background()

	for _, v := range []string{"1", "0.333", "12.5", "0"} {
		there, err := uc.Convert(ctx, litre, ml, d(v))
		require.NoError(t, err)
		back, err := uc.Convert(ctx, ml, litre, there)
		require.NoError(t, err)
		assert.True(t, back.Equal(d(v)), "%s -> %s -> %s", v, there, back)
	}
}

func TestConvert_ZeroReverseFactor(t *testing.T) {
	uc, store, _ := setup(t)
	store.AddConversion(model.UnitConversion{ID: "c1", FromUnitID: kg, ToUnitID: gram, ConversionFactor: decimal.Zero})

	_, err := uc.Convert(context.Background(), gram, kg, d("5"))
	assert.ErrorIs(t, err, apperror.ErrInvalidState)
}

func TestConvert_CachesRows(t *testing.T) {
	uc, store, cache := setup(t)
	store.AddConversion(model.UnitConversion{ID: "c1", FromUnitID: kg, ToUnitID: gram, ConversionFactor: d("1000")})
	ctx := context.Background()

	_, err := uc.Convert(ctx, kg, gram, d("1"))
	require.NoError(t, err)
	assert.True(t, cache.Has("unitconv:"+kg+":"+gram))

	store.FailOn("FindDirect", storetest.ErrInjected)
	got, err := uc.Convert(ctx, kg, gram, d("3"))
	require.NoError(t, err)
	assert.True(t, got.Equal(d("3000")))
}

func TestCreateConversion(t *testing.T) {
	uc, store, cache := setup(t)
	ctx := context.Background()

	conv, err := uc.CreateConversion(ctx, &dto.CreateConversionInput{
		FromUnitID: kg, ToUnitID: gram, ConversionFactor: d("1000"), Actor: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, kg, conv.FromUnitID)
	assert.Len(t, store.AuditLogs(), 1)
	assert.False(t, cache.Has("unitconv:"+gram+":"+kg))

	cases := []struct {
		name string
		in   dto.CreateConversionInput
		want error
	}{
		{"duplicate", dto.CreateConversionInput{FromUnitID: kg, ToUnitID: gram, ConversionFactor: d("1000")}, apperror.ErrConflict},
		{"reversed duplicate", dto.CreateConversionInput{FromUnitID: gram, ToUnitID: kg, ConversionFactor: d("0.001")}, apperror.ErrConflict},
		{"unknown unit", dto.CreateConversionInput{FromUnitID: kg, ToUnitID: storetest.ID("oz"), ConversionFactor: d("35.27")}, apperror.ErrNotFound},
		{"same unit", dto.CreateConversionInput{FromUnitID: kg, ToUnitID: kg, ConversionFactor: d("1")}, apperror.ErrInvalidArgument},
		{"zero factor", dto.CreateConversionInput{FromUnitID: litre, ToUnitID: ml, ConversionFactor: decimal.Zero}, apperror.ErrInvalidArgument},
		{"malformed unit id", dto.CreateConversionInput{FromUnitID: "kg", ToUnitID: gram, ConversionFactor: d("1000")}, apperror.ErrValidationFailed},
		{"negative factor", dto.CreateConversionInput{FromUnitID: litre, ToUnitID: ml, ConversionFactor: d("-1")}, apperror.ErrInvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := tc.in
			in.Actor = "admin"
			_, err := uc.CreateConversion(ctx, &in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	all, err := uc.ListConversions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
