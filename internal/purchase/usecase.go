package purchase

import (
	"context"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/purchase/dto"
)

type UseCase interface {
	// ReceivePurchase increments stock and re-averages the cost price of every
	// line in one transaction.
	ReceivePurchase(ctx context.Context, in *dto.ReceivePurchaseInput) (*model.Purchase, error)
	GetPurchase(ctx context.Context, id string) (*model.Purchase, error)
}
