package order

import (
	"context"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/order/dto"
)

type UseCase interface {
	// CreateOrder decrements stock for every line, records the order and its
	// sale in one transaction, then publishes an order update.
	CreateOrder(ctx context.Context, in *dto.CreateOrderInput) (*dto.OrderResult, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	// Wait blocks until every order update started by CreateOrder has been handed
	// to the notifier.
	Wait()
}
