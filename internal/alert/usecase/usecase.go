package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-inventory-service/internal/alert"
	"github.com/fekuna/omnipos-inventory-service/internal/alert/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/apperror"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/pkg/clock"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type alertUseCase struct {
	repo   alert.Repository
	stock  alert.StockReader
	clock  clock.Clock
	logger logger.ZapLogger
}

func NewAlertUseCase(repo alert.Repository, stock alert.StockReader, clk clock.Clock, log logger.ZapLogger) alert.UseCase {
	return &alertUseCase{
		repo:   repo,
		stock:  stock,
		clock:  clk,
		logger: log,
	}
}

// Evaluate raises LowStock on every decrement that leaves stock below the
// minimum, and Replenished when an increment lifts it back to the minimum.
// Repeated LowStock alerts are not suppressed.
func (uc *alertUseCase) Evaluate(ctx context.Context, c alert.StockChange) (*model.Alert, error) {
	var a *model.Alert
	switch {
	case c.Sign < 0 && c.After < c.MinLevel:
		a = uc.newAlert(model.AlertLowStock, c.Target,
			fmt.Sprintf("Low stock: %s is at %d (minimum %d)", describe(c.Target, c.Label), c.After, c.MinLevel))
	case c.Sign > 0 && c.Before < c.MinLevel && c.After >= c.MinLevel:
		a = uc.newAlert(model.AlertReplenished, c.Target,
			fmt.Sprintf("Replenished: %s is back to %d (minimum %d)", describe(c.Target, c.Label), c.After, c.MinLevel))
	default:
		return nil, nil
	}

	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create %s alert: %w", a.AlertType, err)
	}

	uc.logger.Info("Alert raised",
		zap.String("alert_type", string(a.AlertType)),
		zap.String("target", c.Target.String()),
		zap.Int64("stock", c.After),
	)
	return a, nil
}

func (uc *alertUseCase) ListAlerts(ctx context.Context, f *dto.AlertFilters) ([]model.Alert, int, error) {
	items, count, err := uc.repo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, apperror.Report(uc.logger, "list alerts", err)
	}
	return items, count, nil
}

func (uc *alertUseCase) Acknowledge(ctx context.Context, in *dto.AcknowledgeAlertInput) (*model.Alert, error) {
	if err := apperror.Validate(in); err != nil {
		return nil, err
	}

	a, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, apperror.Report(uc.logger, "find alert", err)
	}
	if a == nil {
		return nil, apperror.NotFound("alert %s not found", in.ID)
	}
	if a.IsAcknowledged {
		return a, nil
	}

	now := uc.clock.Now()
	if err := uc.repo.Acknowledge(ctx, a.ID, in.Actor, now); err != nil {
		return nil, apperror.Report(uc.logger, "acknowledge alert", err)
	}

	a.IsAcknowledged = true
	a.AcknowledgedBy = &in.Actor
	a.AcknowledgedAt = &now
	return a, nil
}

func (uc *alertUseCase) Reconcile(ctx context.Context) (int, error) {
	rows, err := uc.stock.ListBelowMinimum(ctx)
	if err != nil {
		return 0, apperror.Report(uc.logger, "list stock below minimum", err)
	}

	raised := 0
	for _, inv := range rows {
		target := inv.Target()
		open, err := uc.repo.HasOpen(ctx, model.AlertLowStock, target)
		if err != nil {
			return raised, apperror.Report(uc.logger, "check open alerts", err)
		}
		if open {
			continue
		}

		a := uc.newAlert(model.AlertLowStock, target,
			fmt.Sprintf("Low stock: %s is at %d (minimum %d)", target, inv.CurrentStock, inv.MinStockLevel))
		if err := uc.repo.Create(ctx, a); err != nil {
			return raised, apperror.Report(uc.logger, "create reconciled alert", err)
		}
		raised++
	}

	if raised > 0 {
		uc.logger.Info("Reconciled low stock alerts", zap.Int("raised", raised))
	}
	return raised, nil
}

func (uc *alertUseCase) newAlert(t model.AlertType, target model.StockTarget, msg string) *model.Alert {
	return &model.Alert{
		ID:           uuid.New().String(),
		AlertType:    t,
		Message:      msg,
		ProductID:    target.ProductPtr(),
		IngredientID: target.IngredientPtr(),
		AlertDate:    uc.clock.Now(),
	}
}

func describe(target model.StockTarget, label string) string {
	if label == "" {
		return target.String()
	}
	return fmt.Sprintf("%s %q", target.Kind(), label)
}
