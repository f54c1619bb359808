package notification

import (
	"context"
	"encoding/json"
	"fmt"
)

// Publisher is satisfied by broker.KafkaProducer.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type KafkaNotifier struct {
	pub Publisher
}

func NewKafkaNotifier(pub Publisher) *KafkaNotifier {
	return &KafkaNotifier{pub: pub}
}

type orderUpdateEvent struct {
	EventType string      `json:"event_type"`
	Payload   OrderUpdate `json:"payload"`
}

func (n *KafkaNotifier) PublishOrderUpdate(ctx context.Context, u OrderUpdate) error {
	b, err := json.Marshal(orderUpdateEvent{EventType: "OrderUpdated", Payload: u})
	if err != nil {
		return fmt.Errorf("encode order update: %w", err)
	}
	return n.pub.Publish(ctx, u.OrderID, b)
}
