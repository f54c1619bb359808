package inventory

import (
	"context"

	"github.com/fekuna/omnipos-inventory-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
)

// Repository reads return (nil, nil) when the row does not exist.
type Repository interface {
	GetByTarget(ctx context.Context, target model.StockTarget) (*model.Inventory, error)
	// GetByTargetForUpdate locks the row until the surrounding transaction ends.
	GetByTargetForUpdate(ctx context.Context, target model.StockTarget) (*model.Inventory, error)
	BatchGetByProducts(ctx context.Context, productIDs []string) ([]model.Inventory, error)
	FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.Inventory, int, error)
	ListBelowMinimum(ctx context.Context) ([]model.Inventory, error)
	Upsert(ctx context.Context, inv *model.Inventory) error
	UpdateStock(ctx context.Context, inv *model.Inventory) error

	CreateTransaction(ctx context.Context, t *model.StockTransaction) error
	GetTransactionForUpdate(ctx context.Context, id string) (*model.StockTransaction, error)
	UpdateTransaction(ctx context.Context, t *model.StockTransaction) error
	ListTransactions(ctx context.Context, f *dto.TransactionFilters) ([]model.StockTransaction, int, error)
}
