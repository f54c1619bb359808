package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/apperror"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
)

// ApplyDelta adds delta to the row's stock, refusing to go below zero.
func ApplyDelta(inv *model.Inventory, delta int64, now time.Time) error {
	if inv.CurrentStock+delta < 0 {
		return apperror.InsufficientStock("insufficient stock for %s: available %d, requested %d",
			inv.Target(), inv.CurrentStock, -delta)
	}
	inv.CurrentStock += delta
	inv.LastUpdated = now
	return nil
}

// Effect is the stock effect of a recorded transaction.
type Effect struct {
	Type     model.TransactionType
	Quantity int64
}

func (e Effect) Delta() int64 {
	return e.Type.Sign() * e.Quantity
}

// NetDelta is the stock change needed to replace prev with next: the reversal
// of prev plus the application of next.
func NetDelta(prev, next Effect) (int64, error) {
	if !prev.Type.Valid() {
		return 0, apperror.InvalidArgument("invalid transaction type %q", prev.Type)
	}
	if !next.Type.Valid() {
		return 0, apperror.InvalidArgument("invalid transaction type %q", next.Type)
	}
	return next.Delta() - prev.Delta(), nil
}

// ResolveType maps the request fields onto a stored transaction type.
// adjustmentType is one of Addition/Subtraction, transactionType IN/OUT.
func ResolveType(transactionType, adjustmentType string) (model.TransactionType, error) {
	if adjustmentType != "" {
		switch strings.ToLower(adjustmentType) {
		case "addition":
			return model.TransactionAddition, nil
		case "subtraction":
			return model.TransactionSubtraction, nil
		}
		return "", apperror.InvalidArgument("invalid adjustment type %q, expected Addition or Subtraction", adjustmentType)
	}

	switch strings.ToUpper(transactionType) {
	case string(model.TransactionIn):
		return model.TransactionIn, nil
	case string(model.TransactionOut):
		return model.TransactionOut, nil
	}
	return "", apperror.InvalidArgument("invalid transaction type %q, expected IN or OUT", transactionType)
}

type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

type Line struct {
	ProductID string
	Quantity  int64
}

type Availability struct {
	Product   *model.Product
	Inventory *model.Inventory
	Quantity  int64
}

// CheckAvailability verifies every line before any stock is touched: the
// product exists, it has an inventory row, and the row holds at least the
// total quantity requested for it across all lines. Rows are locked.
func CheckAvailability(ctx context.Context, products ProductFinder, repo Repository, lines []Line) ([]Availability, error) {
	requested := make(map[string]int64, len(lines))
	for _, l := range lines {
		requested[l.ProductID] += l.Quantity
	}

	out := make([]Availability, 0, len(lines))
	seen := make(map[string]Availability, len(lines))
	for _, l := range lines {
		if a, ok := seen[l.ProductID]; ok {
			a.Quantity = l.Quantity
			out = append(out, a)
			continue
		}

		p, err := products.FindByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, apperror.NotFound("product %s not found", l.ProductID)
		}

		inv, err := repo.GetByTargetForUpdate(ctx, model.ProductTarget(p.ID))
		if err != nil {
			return nil, err
		}
		if inv == nil {
			return nil, apperror.NotFound("no inventory record for product %q", p.Name)
		}
		if inv.CurrentStock < requested[p.ID] {
			return nil, apperror.InsufficientStock("insufficient stock for product %q: available %d, requested %d",
				p.Name, inv.CurrentStock, requested[p.ID])
		}

		a := Availability{Product: p, Inventory: inv, Quantity: l.Quantity}
		seen[l.ProductID] = a
		out = append(out, a)
	}
	return out, nil
}
