package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-inventory-service/internal/alert"
	"github.com/fekuna/omnipos-inventory-service/internal/apperror"
	"github.com/fekuna/omnipos-inventory-service/internal/audit"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/pkg/clock"
	"github.com/fekuna/omnipos-inventory-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	txm    postgres.TxManager
	alerts alert.Raiser
	audit  audit.Sink
	clock  clock.Clock
	logger logger.ZapLogger
}

func NewInventoryUseCase(
	repo inventory.Repository,
	txm postgres.TxManager,
	alerts alert.Raiser,
	auditSink audit.Sink,
	clk clock.Clock,
	log logger.ZapLogger,
) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		txm:    txm,
		alerts: alerts,
		audit:  auditSink,
		clock:  clk,
		logger: log,
	}
}

func (uc *inventoryUseCase) Record(ctx context.Context, m inventory.Movement) (*inventory.LevelChange, error) {
	if !m.Target.Valid() {
		return nil, apperror.InvalidArgument("a movement targets exactly one product or ingredient")
	}
	if !m.Type.Valid() {
		return nil, apperror.InvalidArgument("invalid transaction type %q", m.Type)
	}
	if m.Quantity <= 0 {
		return nil, apperror.ValidationFailed(apperror.FieldError{Field: "quantity", Message: "must be greater than 0"})
	}
	if m.Actor == "" {
		return nil, apperror.ValidationFailed(apperror.FieldError{Field: "actor", Message: "is required"})
	}

	var change *inventory.LevelChange
	err := uc.txm.WithinTx(ctx, sql.LevelSerializable, func(ctx context.Context) error {
		inv, err := uc.repo.GetByTargetForUpdate(ctx, m.Target)
		if err != nil {
			return err
		}
		if inv == nil {
			return apperror.NotFound("no inventory record for %s", describe(m.Target, m.Label))
		}

		before := inv.CurrentStock
		delta := m.Type.Sign() * m.Quantity
		if before+delta < 0 {
			return apperror.InsufficientStock("insufficient stock for %s: available %d, requested %d",
				describe(m.Target, m.Label), before, m.Quantity)
		}

		now := uc.clock.Now()
		if err := inventory.ApplyDelta(inv, delta, now); err != nil {
			return err
		}
		if err := uc.repo.UpdateStock(ctx, inv); err != nil {
			return err
		}

		tx := &model.StockTransaction{
			ID:               uuid.New().String(),
			ProductID:        m.Target.ProductPtr(),
			IngredientID:     m.Target.IngredientPtr(),
			TransactionType:  m.Type,
			Quantity:         m.Quantity,
			TransactionDate:  now,
			SourceType:       m.SourceType,
			SourceID:         optional(m.SourceID),
			AdjustmentReason: optional(m.Reason),
			CreatedBy:        m.Actor,
			UpdatedAt:        now,
		}
		if err := uc.repo.CreateTransaction(ctx, tx); err != nil {
			return err
		}

		if _, err := uc.alerts.Evaluate(ctx, alert.StockChange{
			Target:   m.Target,
			Label:    m.Label,
			Sign:     m.Type.Sign(),
			Before:   before,
			After:    inv.CurrentStock,
			MinLevel: inv.MinStockLevel,
		}); err != nil {
			return err
		}

		change = &inventory.LevelChange{
			Inventory:   inv,
			Before:      before,
			After:       inv.CurrentStock,
			Transaction: tx,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return change, nil
}

func (uc *inventoryUseCase) GetProductInventory(ctx context.Context, productID string) (*model.Inventory, error) {
	inv, err := uc.repo.GetByTarget(ctx, model.ProductTarget(productID))
	if err != nil {
		return nil, apperror.Report(uc.logger, "get product inventory", err)
	}
	if inv == nil {
		return nil, apperror.NotFound("no inventory record for product %s", productID)
	}
	return inv, nil
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, page, pageSize int) ([]model.Inventory, int, error) {
	items, count, err := uc.repo.FindAll(ctx, &dto.InventoryFilters{
		LowStock: true,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, apperror.Report(uc.logger, "list low stock", err)
	}
	return items, count, nil
}

func (uc *inventoryUseCase) UpsertInventory(ctx context.Context, in *dto.UpsertInventoryInput) (*model.Inventory, error) {
	if err := apperror.Validate(in); err != nil {
		return nil, err
	}

	target := model.StockTarget{ProductID: in.ProductID, IngredientID: in.IngredientID}
	inv := &model.Inventory{
		ID:            uuid.New().String(),
		ProductID:     target.ProductPtr(),
		IngredientID:  target.IngredientPtr(),
		CurrentStock:  in.InitialStock,
		MinStockLevel: in.MinStockLevel,
		InitialStock:  in.InitialStock,
		LastUpdated:   uc.clock.Now(),
	}

	err := uc.txm.WithinTx(ctx, sql.LevelSerializable, func(ctx context.Context) error {
		if err := uc.repo.Upsert(ctx, inv); err != nil {
			return err
		}
		return uc.audit.Record(ctx, audit.Entry{
			Action:      audit.ActionInventoryUpserted,
			EntityType:  "inventory",
			EntityID:    inv.ID,
			PerformedBy: in.Actor,
			Details:     map[string]any{"target": target.String(), "min_stock_level": in.MinStockLevel},
		})
	})
	if err != nil {
		return nil, apperror.Report(uc.logger, "upsert inventory", err)
	}
	return inv, nil
}

func (uc *inventoryUseCase) CreateStockTransaction(ctx context.Context, in *dto.CreateStockTransactionInput) (*model.StockTransaction, error) {
	if err := apperror.Validate(in); err != nil {
		return nil, err
	}
	txType, err := inventory.ResolveType(in.TransactionType, in.AdjustmentType)
	if err != nil {
		return nil, err
	}
	if err := requireReason(txType, in.Reason); err != nil {
		return nil, err
	}

	target := model.StockTarget{ProductID: in.ProductID, IngredientID: in.IngredientID}

	var change *inventory.LevelChange
	err = uc.txm.WithinTx(ctx, sql.LevelSerializable, func(ctx context.Context) error {
		var err error
		change, err = uc.Record(ctx, inventory.Movement{
			Target:     target,
			Type:       txType,
			Quantity:   in.Quantity,
			SourceType: model.SourceManual,
			Reason:     strings.TrimSpace(in.Reason),
			Actor:      in.Actor,
		})
		if err != nil {
			return err
		}
		return uc.audit.Record(ctx, audit.Entry{
			Action:      audit.ActionStockTransactionCreated,
			EntityType:  "stock_transaction",
			EntityID:    change.Transaction.ID,
			PerformedBy: in.Actor,
			Details: map[string]any{
				"target":   target.String(),
				"type":     txType,
				"quantity": in.Quantity,
				"before":   change.Before,
				"after":    change.After,
			},
		})
	})
	if err != nil {
		return nil, apperror.Report(uc.logger, "create stock transaction", err)
	}

	uc.logger.Info("Manual stock transaction recorded",
		zap.String("transaction_id", change.Transaction.ID),
		zap.String("target", target.String()),
		zap.Int64("stock", change.After),
	)
	return change.Transaction, nil
}

// UpdateStockTransaction rewrites a recorded transaction and moves the stock by
// the net difference between the old and new effects.
func (uc *inventoryUseCase) UpdateStockTransaction(ctx context.Context, in *dto.UpdateStockTransactionInput) (*model.StockTransaction, error) {
	if err := apperror.Validate(in); err != nil {
		return nil, err
	}
	newType, err := inventory.ResolveType(in.TransactionType, in.AdjustmentType)
	if err != nil {
		return nil, err
	}
	if err := requireReason(newType, in.Reason); err != nil {
		return nil, err
	}

	var updated *model.StockTransaction
	err = uc.txm.WithinTx(ctx, sql.LevelSerializable, func(ctx context.Context) error {
		existing, err := uc.repo.GetTransactionForUpdate(ctx, in.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NotFound("stock transaction %s not found", in.ID)
		}

		prev := inventory.Effect{Type: existing.TransactionType, Quantity: existing.Quantity}
		delta, err := inventory.NetDelta(prev, inventory.Effect{Type: newType, Quantity: in.Quantity})
		if err != nil {
			return err
		}

		target := existing.Target()
		inv, err := uc.repo.GetByTargetForUpdate(ctx, target)
		if err != nil {
			return err
		}
		if inv == nil {
			return apperror.NotFound("no inventory record for %s", target)
		}

		before := inv.CurrentStock
		now := uc.clock.Now()
		if err := inventory.ApplyDelta(inv, delta, now); err != nil {
			return err
		}
		if err := uc.repo.UpdateStock(ctx, inv); err != nil {
			return err
		}

		existing.TransactionType = newType
		existing.Quantity = in.Quantity
		existing.AdjustmentReason = optional(strings.TrimSpace(in.Reason))
		existing.TransactionDate = now
		existing.UpdatedAt = now
		if err := uc.repo.UpdateTransaction(ctx, existing); err != nil {
			return err
		}

		if _, err := uc.alerts.Evaluate(ctx, alert.StockChange{
			Target:   target,
			Sign:     newType.Sign(),
			Before:   before,
			After:    inv.CurrentStock,
			MinLevel: inv.MinStockLevel,
		}); err != nil {
			return err
		}

		updated = existing
		return uc.audit.Record(ctx, audit.Entry{
			Action:      audit.ActionStockTransactionUpdated,
			EntityType:  "stock_transaction",
			EntityID:    existing.ID,
			PerformedBy: in.Actor,
			Details: map[string]any{
				"previous_type":     prev.Type,
				"previous_quantity": prev.Quantity,
				"type":              newType,
				"quantity":          in.Quantity,
				"net_delta":         delta,
			},
		})
	})
	if err != nil {
		return nil, apperror.Report(uc.logger, "update stock transaction", err)
	}
	return updated, nil
}

func (uc *inventoryUseCase) ListTransactions(ctx context.Context, f *dto.TransactionFilters) ([]model.StockTransaction, int, error) {
	items, count, err := uc.repo.ListTransactions(ctx, f)
	if err != nil {
		return nil, 0, apperror.Report(uc.logger, "list stock transactions", err)
	}
	return items, count, nil
}

func requireReason(t model.TransactionType, reason string) error {
	if t.IsAdjustment() && strings.TrimSpace(reason) == "" {
		return apperror.ValidationFailed(apperror.FieldError{Field: "reason", Message: "is required for adjustments"})
	}
	return nil
}

func describe(target model.StockTarget, label string) string {
	if label == "" {
		return target.String()
	}
	return fmt.Sprintf("%s %q", target.Kind(), label)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
