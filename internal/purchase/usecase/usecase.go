package usecase

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fekuna/omnipos-inventory-service/internal/apperror"
	"github.com/fekuna/omnipos-inventory-service/internal/audit"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/product"
	"github.com/fekuna/omnipos-inventory-service/internal/purchase"
	"github.com/fekuna/omnipos-inventory-service/internal/purchase/dto"
	"github.com/fekuna/omnipos-inventory-service/pkg/clock"
	"github.com/fekuna/omnipos-inventory-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type purchaseUseCase struct {
	txm       postgres.TxManager
	purchases purchase.Repository
	products  product.Repository
	stock     inventory.Repository
	ledger    inventory.Ledger
	audit     audit.Sink
	clock     clock.Clock
	logger    logger.ZapLogger
}

func NewPurchaseUseCase(
	txm postgres.TxManager,
	purchases purchase.Repository,
	products product.Repository,
	stock inventory.Repository,
	ledger inventory.Ledger,
	auditSink audit.Sink,
	clk clock.Clock,
	log logger.ZapLogger,
) purchase.UseCase {
	return &purchaseUseCase{
		txm:       txm,
		purchases: purchases,
		products:  products,
		stock:     stock,
		ledger:    ledger,
		audit:     auditSink,
		clock:     clk,
		logger:    log,
	}
}

func (uc *purchaseUseCase) ReceivePurchase(ctx context.Context, in *dto.ReceivePurchaseInput) (*model.Purchase, error) {
	if err := apperror.Validate(in); err != nil {
		return nil, err
	}
	for i, item := range in.Items {
		if item.UnitPrice.IsNegative() {
			return nil, apperror.ValidationFailed(apperror.FieldError{
				Field: fmt.Sprintf("items[%d].unit_price", i), Message: "must not be negative",
			})
		}
	}

	var p *model.Purchase
	err := uc.txm.WithinTx(ctx, sql.LevelSerializable, func(ctx context.Context) error {
		products, err := uc.resolve(ctx, in.Items)
		if err != nil {
			return err
		}

		now := uc.clock.Now()
		p = &model.Purchase{
			ID:         uuid.New().String(),
			Reference:  in.Reference,
			Total:      decimal.Zero,
			ReceivedBy: in.Actor,
			ReceivedAt: now,
		}
		if in.SupplierID != "" {
			p.SupplierID = &in.SupplierID
		}

		for _, item := range in.Items {
			prod := products[item.ProductID]
			change, err := uc.ledger.Record(ctx, inventory.Movement{
				Target:     model.ProductTarget(prod.ID),
				Type:       model.TransactionIn,
				Quantity:   item.Quantity,
				SourceType: model.SourcePurchase,
				SourceID:   p.ID,
				Actor:      in.Actor,
				Label:      prod.Name,
			})
			if err != nil {
				return err
			}

			cost := purchase.WeightedAverageCost(change.Before, prod.CostPrice, item.Quantity, item.UnitPrice)
			if err := uc.products.UpdateCostPrice(ctx, prod.ID, cost, now); err != nil {
				return err
			}
			prod.CostPrice = cost

			lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
			p.Items = append(p.Items, model.PurchaseItem{
				ID:         uuid.New().String(),
				PurchaseID: p.ID,
				ProductID:  prod.ID,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				LineTotal:  lineTotal,
			})
			p.Total = p.Total.Add(lineTotal)
		}

		if err := uc.purchases.Create(ctx, p); err != nil {
			return err
		}
		return uc.audit.Record(ctx, audit.Entry{
			Action:      audit.ActionPurchaseReceived,
			EntityType:  "purchase",
			EntityID:    p.ID,
			PerformedBy: in.Actor,
			Details:     map[string]any{"lines": len(p.Items), "total": p.Total, "reference": in.Reference},
		})
	})
	if err != nil {
		return nil, apperror.Report(uc.logger, "receive purchase", err)
	}

	uc.logger.Info("Purchase received", zap.String("purchase_id", p.ID), zap.Int("lines", len(p.Items)))
	return p, nil
}

// resolve loads every product and checks it has an inventory row before any
// stock moves.
func (uc *purchaseUseCase) resolve(ctx context.Context, items []dto.PurchaseLineInput) (map[string]*model.Product, error) {
	out := make(map[string]*model.Product, len(items))
	for _, item := range items {
		if _, ok := out[item.ProductID]; ok {
			continue
		}
		prod, err := uc.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if prod == nil {
			return nil, apperror.NotFound("product %s not found", item.ProductID)
		}
		inv, err := uc.stock.GetByTargetForUpdate(ctx, model.ProductTarget(prod.ID))
		if err != nil {
			return nil, err
		}
		if inv == nil {
			return nil, apperror.NotFound("no inventory record for product %q", prod.Name)
		}
		out[item.ProductID] = prod
	}
	return out, nil
}

func (uc *purchaseUseCase) GetPurchase(ctx context.Context, id string) (*model.Purchase, error) {
	p, err := uc.purchases.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Report(uc.logger, "get purchase", err)
	}
	if p == nil {
		return nil, apperror.NotFound("purchase %s not found", id)
	}
	return p, nil
}
