package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/order"
	"github.com/fekuna/omnipos-inventory-service/internal/order/dto"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const EventOrderSubmitted = "OrderSubmitted"

// MessageReader is satisfied by broker.KafkaConsumer.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OrderListener turns OrderSubmitted events from the POS front end into orders.
type OrderListener struct {
	reader  MessageReader
	uc      order.UseCase
	logger  logger.ZapLogger
	backoff time.Duration
}

func NewOrderListener(reader MessageReader, uc order.UseCase, logger logger.ZapLogger) *OrderListener {
	return &OrderListener{
		reader:  reader,
		uc:      uc,
		logger:  logger,
		backoff: time.Second,
	}
}

// Start consumes until ctx ends. An offset is committed only after its message
// has been handled, so a crash redelivers it; CreateOrder dedupes on event_id.
func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("Starting order Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping order Kafka listener")
			return
		default:
			msg, err := l.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(l.backoff)
				continue
			}
			l.processMessage(ctx, msg.Value)
			if err := l.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
				l.logger.Error("Failed to commit kafka offset",
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
			}
		}
	}
}

type OrderSubmittedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	TableName string             `json:"table_name"`
	OrderType string             `json:"order_type"`
	Actor     string             `json:"actor"`
	Items     []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Discount  decimal.Decimal `json:"discount"`
}

func (l *OrderListener) processMessage(ctx context.Context, value []byte) {
	var event OrderSubmittedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != EventOrderSubmitted {
		return
	}

	if event.Payload.Actor == "" {
		l.logger.Error("Dropping order event without actor", zap.String("event_id", event.EventID))
		return
	}

	in := &dto.CreateOrderInput{
		TableName: event.Payload.TableName,
		OrderType: event.Payload.OrderType,
		Actor:     event.Payload.Actor,
		EventID:   event.EventID,
	}
	for _, item := range event.Payload.Items {
		in.Items = append(in.Items, dto.OrderLineInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Discount:  item.Discount,
		})
	}

	res, err := l.uc.CreateOrder(ctx, in)
	if err != nil {
		// Rejected orders are not redelivered; the front end learns of them
		// through the missing OrderUpdated event.
		l.logger.Error("Failed to create order from event",
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
		return
	}

	if res.Replayed {
		l.logger.Info("Skipped redelivered order event",
			zap.String("event_id", event.EventID),
			zap.String("order_id", res.Order.ID),
		)
		return
	}

	l.logger.Info("Order created from event",
		zap.String("event_id", event.EventID),
		zap.String("order_id", res.Order.ID),
	)
}
