package alert

import (
	"context"

	"github.com/fekuna/omnipos-inventory-service/internal/alert/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
)

// StockChange describes one committed-to-be level change of an inventory row.
// Sign is the direction of the movement that caused it (+1 in, -1 out).
type StockChange struct {
	Target   model.StockTarget
	Label    string
	Sign     int64
	Before   int64
	After    int64
	MinLevel int64
}

// Raiser is the hook the ledger calls after every stock mutation.
type Raiser interface {
	Evaluate(ctx context.Context, c StockChange) (*model.Alert, error)
}

type UseCase interface {
	Raiser
	ListAlerts(ctx context.Context, f *dto.AlertFilters) ([]model.Alert, int, error)
	Acknowledge(ctx context.Context, in *dto.AcknowledgeAlertInput) (*model.Alert, error)
	// Reconcile raises LowStock for rows below minimum that have no open LowStock alert.
	Reconcile(ctx context.Context) (int, error)
}
