package order

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
)

type Repository interface {
	// Create stores the order and its items.
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	// OrderIDForEvent returns the order created from eventID, or "" for an unseen event.
	OrderIDForEvent(ctx context.Context, eventID string) (string, error)
	// MarkEventProcessed reports false when eventID was already recorded.
	MarkEventProcessed(ctx context.Context, eventID, orderID string, at time.Time) (bool, error)
}
