package notification

import (
	"context"
	"time"
)

// OrderUpdate is published to kitchen and front-of-house displays.
type OrderUpdate struct {
	OrderID   string    `json:"order_id"`
	TableName string    `json:"table_name"`
	OrderType string    `json:"order_type"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type Notifier interface {
	PublishOrderUpdate(ctx context.Context, u OrderUpdate) error
}

type Nop struct{}

func (Nop) PublishOrderUpdate(context.Context, OrderUpdate) error { return nil }
