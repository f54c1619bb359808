package unitconversion

import (
	"context"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
)

type Repository interface {
	FindUnitByID(ctx context.Context, id string) (*model.Unit, error)
	// FindDirect returns the row stored as from -> to, or nil.
	FindDirect(ctx context.Context, fromUnitID, toUnitID string) (*model.UnitConversion, error)
	// FindPair returns the row for the unordered pair, or nil.
	FindPair(ctx context.Context, unitA, unitB string) (*model.UnitConversion, error)
	Create(ctx context.Context, c *model.UnitConversion) error
	FindAll(ctx context.Context) ([]model.UnitConversion, error)
}
