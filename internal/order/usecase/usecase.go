package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/apperror"
	"github.com/fekuna/omnipos-inventory-service/internal/audit"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/notification"
	"github.com/fekuna/omnipos-inventory-service/internal/order"
	"github.com/fekuna/omnipos-inventory-service/internal/order/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/product"
	"github.com/fekuna/omnipos-inventory-service/internal/sale"
	"github.com/fekuna/omnipos-inventory-service/pkg/clock"
	"github.com/fekuna/omnipos-inventory-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

type orderUseCase struct {
	txm      postgres.TxManager
	orders   order.Repository
	sales    sale.Repository
	products product.Repository
	stock    inventory.Repository
	ledger   inventory.Ledger
	audit    audit.Sink
	notifier notification.Notifier
	clock    clock.Clock
	logger   logger.ZapLogger

	publishes sync.WaitGroup
}

func NewOrderUseCase(
	txm postgres.TxManager,
	orders order.Repository,
	sales sale.Repository,
	products product.Repository,
	stock inventory.Repository,
	ledger inventory.Ledger,
	auditSink audit.Sink,
	notifier notification.Notifier,
	clk clock.Clock,
	log logger.ZapLogger,
) order.UseCase {
	return &orderUseCase{
		txm:      txm,
		orders:   orders,
		sales:    sales,
		products: products,
		stock:    stock,
		ledger:   ledger,
		audit:    auditSink,
		notifier: notifier,
		clock:    clk,
		logger:   log,
	}
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, in *dto.CreateOrderInput) (*dto.OrderResult, error) {
	if err := apperror.Validate(in); err != nil {
		return nil, err
	}

	lines := make([]inventory.Line, len(in.Items))
	for i, item := range in.Items {
		lines[i] = inventory.Line{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	var o, replayed *model.Order
	var s *model.Sale
	err := uc.txm.WithinTx(ctx, sql.LevelSerializable, func(ctx context.Context) error {
		if in.EventID != "" {
			orderID, err := uc.orders.OrderIDForEvent(ctx, in.EventID)
			if err != nil {
				return err
			}
			if orderID != "" {
				replayed, err = uc.orders.FindByID(ctx, orderID)
				if err == nil && replayed == nil {
					err = fmt.Errorf("order %s recorded for event %s is missing", orderID, in.EventID)
				}
				return err
			}
		}

		avail, err := inventory.CheckAvailability(ctx, uc.products, uc.stock, lines)
		if err != nil {
			return err
		}

		now := uc.clock.Now()
		o = &model.Order{
			ID:        uuid.New().String(),
			TableName: in.TableName,
			OrderType: model.OrderType(in.OrderType),
			Status:    model.OrderStatusPlaced,
			Total:     decimal.Zero,
			CreatedBy: in.Actor,
			CreatedAt: now,
		}
		s = &model.Sale{
			ID:              uuid.New().String(),
			OrderID:         &o.ID,
			Total:           decimal.Zero,
			CostOfGoodsSold: decimal.Zero,
			CreatedBy:       in.Actor,
			SaleDate:        now,
		}

		for i, a := range avail {
			item := in.Items[i]
			lineTotal, err := sale.LineTotal(a.Product.BasePrice, a.Quantity, item.Discount, fmt.Sprintf("items[%d]", i))
			if err != nil {
				return err
			}
			o.Items = append(o.Items, model.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   o.ID,
				ProductID: a.Product.ID,
				Quantity:  a.Quantity,
				UnitPrice: a.Product.BasePrice,
				Discount:  item.Discount,
				LineTotal: lineTotal,
			})
			s.Items = append(s.Items, model.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    s.ID,
				ProductID: a.Product.ID,
				Quantity:  a.Quantity,
				UnitPrice: a.Product.BasePrice,
				Discount:  item.Discount,
				LineTotal: lineTotal,
			})
			o.Total = o.Total.Add(lineTotal)
			s.CostOfGoodsSold = s.CostOfGoodsSold.Add(sale.Cost(a.Product.CostPrice, a.Quantity))
		}
		s.Total = o.Total

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
		}

		if err := uc.orders.Create(ctx, o); err != nil {
			return err
		}
		if err := uc.sales.Create(ctx, s); err != nil {
			return err
		}
		if in.EventID != "" {
			fresh, err := uc.orders.MarkEventProcessed(ctx, in.EventID, o.ID, now)
			if err != nil {
				return err
			}
			if !fresh {
				return apperror.Conflict("order event %s is already being processed", in.EventID)
			}
		}
		return uc.audit.Record(ctx, audit.Entry{
			Action:      audit.ActionOrderCreated,
			EntityType:  "order",
			EntityID:    o.ID,
			PerformedBy: in.Actor,
			Details:     map[string]any{"sale_id": s.ID, "lines": len(o.Items), "total": o.Total},
		})
	})
	if err != nil {
		return nil, apperror.Report(uc.logger, "create order", err)
	}
	if replayed != nil {
		uc.logger.Info("Order event already processed",
			zap.String("event_id", in.EventID),
			zap.String("order_id", replayed.ID),
		)
		return &dto.OrderResult{Order: replayed, Replayed: true}, nil
	}

	uc.logger.Info("Order placed",
		zap.String("order_id", o.ID),
		zap.String("sale_id", s.ID),
		zap.String("created_by", in.Actor),
	)

	uc.publishes.Add(1)
	go func() {
		defer uc.publishes.Done()
		uc.publishOrderUpdate(*o)
	}()

	return &dto.OrderResult{Order: o, Sale: s}, nil
}

// publishOrderUpdate runs after commit; a failure is logged and never undoes the order.
func (uc *orderUseCase) publishOrderUpdate(o model.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	msg := fmt.Sprintf("New %s order", o.OrderType)
	if o.TableName != "" {
		msg = fmt.Sprintf("New order for table %s", o.TableName)
	}

	err := uc.notifier.PublishOrderUpdate(ctx, notification.OrderUpdate{
		OrderID:   o.ID,
		TableName: o.TableName,
		OrderType: string(o.OrderType),
		Status:    string(o.Status),
		Message:   msg,
		Timestamp: o.CreatedAt,
	})
	if err != nil {
		uc.logger.Warn("Failed to publish order update", zap.String("order_id", o.ID), zap.Error(err))
	}
}

func (uc *orderUseCase) Wait() {
	uc.publishes.Wait()
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	o, err := uc.orders.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Report(uc.logger, "get order", err)
	}
	if o == nil {
		return nil, apperror.NotFound("order %s not found", id)
	}
	return o, nil
}
