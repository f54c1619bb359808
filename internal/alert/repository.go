package alert

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/alert/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, a *model.Alert) error
	FindByID(ctx context.Context, id string) (*model.Alert, error)
	FindAll(ctx context.Context, f *dto.AlertFilters) ([]model.Alert, int, error)
	Acknowledge(ctx context.Context, id, by string, at time.Time) error
	// HasOpen reports whether an unacknowledged alert of the type exists for target.
	HasOpen(ctx context.Context, alertType model.AlertType, target model.StockTarget) (bool, error)
}

// StockReader lists the inventory rows currently below their minimum.
type StockReader interface {
	ListBelowMinimum(ctx context.Context) ([]model.Inventory, error)
}
