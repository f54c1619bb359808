package inventory

import (
	"context"

	"github.com/fekuna/omnipos-inventory-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
)

// Movement is one stock change applied through the ledger.
type Movement struct {
	Target     model.StockTarget
	Type       model.TransactionType
	Quantity   int64
	SourceType model.SourceType
	SourceID   string
	Reason     string
	Actor      string
	// Label names the product or ingredient in error and alert messages.
	Label string
}

type LevelChange struct {
	Inventory   *model.Inventory
	Before      int64
	After       int64
	Transaction *model.StockTransaction
}

// Ledger applies movements to inventory rows. Record joins the caller's
// transaction when one is open and opens a serializable one otherwise.
type Ledger interface {
	Record(ctx context.Context, m Movement) (*LevelChange, error)
}

type UseCase interface {
	Ledger
	GetProductInventory(ctx context.Context, productID string) (*model.Inventory, error)
	ListLowStock(ctx context.Context, page, pageSize int) ([]model.Inventory, int, error)
	UpsertInventory(ctx context.Context, in *dto.UpsertInventoryInput) (*model.Inventory, error)
	CreateStockTransaction(ctx context.Context, in *dto.CreateStockTransactionInput) (*model.StockTransaction, error)
	UpdateStockTransaction(ctx context.Context, in *dto.UpdateStockTransactionInput) (*model.StockTransaction, error)
	ListTransactions(ctx context.Context, f *dto.TransactionFilters) ([]model.StockTransaction, int, error)
}
