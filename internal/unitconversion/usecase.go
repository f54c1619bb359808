package unitconversion

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/unitconversion/dto"
	"github.com/shopspring/decimal"
)

// Converter converts quantities between units using the stored factors.
type Converter interface {
	Convert(ctx context.Context, fromUnitID, toUnitID string, value decimal.Decimal) (decimal.Decimal, error)
}

type UseCase interface {
	Converter
	CreateConversion(ctx context.Context, in *dto.CreateConversionInput) (*model.UnitConversion, error)
	ListConversions(ctx context.Context) ([]model.UnitConversion, error)
}

// Cache holds looked-up conversion rows.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
