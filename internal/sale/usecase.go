package sale

import (
	"context"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/sale/dto"
)

type UseCase interface {
	// CreateSale decrements product stock and the recipe ingredients of every
	// line in one transaction.
	CreateSale(ctx context.Context, in *dto.CreateSaleInput) (*model.Sale, error)
	GetSale(ctx context.Context, id string) (*model.Sale, error)
}
