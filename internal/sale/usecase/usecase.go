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
	"github.com/fekuna/omnipos-inventory-service/internal/sale"
	"github.com/fekuna/omnipos-inventory-service/internal/sale/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/unitconversion"
	"github.com/fekuna/omnipos-inventory-service/pkg/clock"
	"github.com/fekuna/omnipos-inventory-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type saleUseCase struct {
	txm       postgres.TxManager
	sales     sale.Repository
	products  product.Repository
	stock     inventory.Repository
	ledger    inventory.Ledger
	converter unitconversion.Converter
	audit     audit.Sink
	clock     clock.Clock
	logger    logger.ZapLogger
}

func NewSaleUseCase(
	txm postgres.TxManager,
	sales sale.Repository,
	products product.Repository,
	stock inventory.Repository,
	ledger inventory.Ledger,
	converter unitconversion.Converter,
	auditSink audit.Sink,
	clk clock.Clock,
	log logger.ZapLogger,
) sale.UseCase {
	return &saleUseCase{
		txm:       txm,
		sales:     sales,
		products:  products,
		stock:     stock,
		ledger:    ledger,
		converter: converter,
		audit:     auditSink,
		clock:     clk,
		logger:    log,
	}
}

func (uc *saleUseCase) CreateSale(ctx context.Context, in *dto.CreateSaleInput) (*model.Sale, error) {
	if err := apperror.Validate(in); err != nil {
		return nil, err
	}

	lines := make([]inventory.Line, len(in.Items))
	for i, item := range in.Items {
		lines[i] = inventory.Line{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	var s *model.Sale
	err := uc.txm.WithinTx(ctx, sql.LevelSerializable, func(ctx context.Context) error {
		avail, err := inventory.CheckAvailability(ctx, uc.products, uc.stock, lines)
		if err != nil {
			return err
		}

		s = &model.Sale{
			ID:              uuid.New().String(),
			CreatedBy:       in.Actor,
			SaleDate:        uc.clock.Now(),
			Total:           decimal.Zero,
			CostOfGoodsSold: decimal.Zero,
		}
		for i, a := range avail {
			lineTotal, err := sale.LineTotal(a.Product.BasePrice, a.Quantity, in.Items[i].Discount, fmt.Sprintf("items[%d]", i))
			if err != nil {
				return err
			}
			s.Items = append(s.Items, model.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    s.ID,
				ProductID: a.Product.ID,
				Quantity:  a.Quantity,
				UnitPrice: a.Product.BasePrice,
				Discount:  in.Items[i].Discount,
				LineTotal: lineTotal,
			})
			s.Total = s.Total.Add(lineTotal)
			s.CostOfGoodsSold = s.CostOfGoodsSold.Add(sale.Cost(a.Product.CostPrice, a.Quantity))
		}

		for _, a := range avail {
			if _, err := uc.ledger.Record(ctx, inventory.Movement{
				Target:     model.ProductTarget(a.Product.ID),
				Type:       model.TransactionOut,
				Quantity:   a.Quantity,
				SourceType: model.SourceSale,
				SourceID:   s.ID,
				Actor:      in.Actor,
				Label:      a.Product.Name,
			}); err != nil {
				return err
			}
			if err := uc.consumeIngredients(ctx, a, s.ID, in.Actor); err != nil {
				return err
			}
		}

		if err := uc.sales.Create(ctx, s); err != nil {
			return err
		}
		return uc.audit.Record(ctx, audit.Entry{
			Action:      audit.ActionSaleCreated,
			EntityType:  "sale",
			EntityID:    s.ID,
			PerformedBy: in.Actor,
			Details:     map[string]any{"lines": len(s.Items), "total": s.Total},
		})
	})
	if err != nil {
		return nil, apperror.Report(uc.logger, "create sale", err)
	}

	uc.logger.Info("Sale recorded", zap.String("sale_id", s.ID), zap.Int("lines", len(s.Items)))
	return s, nil
}

// consumeIngredients decrements the recipe ingredients of one sold line. The
// recipe quantity is converted into the ingredient's stock unit and rounded up.
func (uc *saleUseCase) consumeIngredients(ctx context.Context, a inventory.Availability, saleID, actor string) error {
	recipe, err := uc.products.ListRecipe(ctx, a.Product.ID)
	if err != nil {
		return err
	}

	for _, ri := range recipe {
		ing, err := uc.products.FindIngredientByID(ctx, ri.IngredientID)
		if err != nil {
			return err
		}
		if ing == nil {
			return apperror.NotFound("ingredient %s of product %q not found", ri.IngredientID, a.Product.Name)
		}

		required := ri.Quantity.Mul(decimal.NewFromInt(a.Quantity))
		converted, err := uc.converter.Convert(ctx, ri.UnitID, ing.UnitID, required)
		if err != nil {
			return err
		}
		units := converted.Ceil().IntPart()
		if units <= 0 {
			continue
		}

		if _, err := uc.ledger.Record(ctx, inventory.Movement{
			Target:     model.IngredientTarget(ing.ID),
			Type:       model.TransactionOut,
			Quantity:   units,
			SourceType: model.SourceSale,
			SourceID:   saleID,
			Actor:      actor,
			Label:      ing.Name,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (uc *saleUseCase) GetSale(ctx context.Context, id string) (*model.Sale, error) {
	s, err := uc.sales.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Report(uc.logger, "get sale", err)
	}
	if s == nil {
		return nil, apperror.NotFound("sale %s not found", id)
	}
	return s, nil
}
