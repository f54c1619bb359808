package listener

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/order/dto"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUseCase struct {
	inputs []*dto.CreateOrderInput
	err    error
	seen   map[string]bool
}

func (s *stubUseCase) CreateOrder(_ context.Context, in *dto.CreateOrderInput) (*dto.OrderResult, error) {
	s.inputs = append(s.inputs, in)
	if s.err != nil {
		return nil, s.err
	}
	if in.EventID != "" {
		if s.seen[in.EventID] {
			return &dto.OrderResult{Order: &model.Order{ID: "ord-1"}, Replayed: true}, nil
		}
		if s.seen == nil {
			s.seen = map[string]bool{}
		}
		s.seen[in.EventID] = true
	}
	return &dto.OrderResult{Order: &model.Order{ID: "ord-1"}, Sale: &model.Sale{ID: "sale-1"}}, nil
}

func (s *stubUseCase) GetOrder(context.Context, string) (*model.Order, error) { return nil, nil }

func (s *stubUseCase) Wait() {}

// scriptedReader hands out queued messages, then blocks until the context ends.
type scriptedReader struct {
	msgs      []kafka.Message
	errs      []error
	committed []int64
	cancel    context.CancelFunc
}

func (r *scriptedReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *scriptedReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		return kafka.Message{}, err
	}
	if len(r.msgs) > 0 {
		m := r.msgs[0]
		r.msgs = r.msgs[1:]
		return m, nil
	}
	r.cancel()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func run(t *testing.T, uc *stubUseCase, reader *scriptedReader) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	reader.cancel = cancel
	l := NewOrderListener(reader, uc, logger.NewNop())
	l.backoff = time.Millisecond

	done := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}
}

func TestOrderListener_CreatesOrderFromEvent(t *testing.T) {
	uc := &stubUseCase{}
	reader := &scriptedReader{
		errs: []error{errors.New("leader not available")},
		msgs: []kafka.Message{
			{Value: []byte(`{"event_id":"e1","event_type":"OrderSubmitted","payload":{"table_name":"T2","order_type":"DineIn","actor":"waiter-1","items":[{"product_id":"p1","quantity":2,"discount":"1.5"},{"product_id":"p2","quantity":1}]}}`)},
		},
	}

	run(t, uc, reader)

	require.Len(t, uc.inputs, 1)
	in := uc.inputs[0]
	assert.Equal(t, "T2", in.TableName)
	assert.Equal(t, "DineIn", in.OrderType)
	assert.Equal(t, "waiter-1", in.Actor)
	assert.Equal(t, "e1", in.EventID)
	require.Len(t, in.Items, 2)
	assert.Equal(t, int64(2), in.Items[0].Quantity)
	assert.Equal(t, "1.5", in.Items[0].Discount.String())
}

func TestOrderListener_SkipsUnusableEvents(t *testing.T) {
	uc := &stubUseCase{}
	reader := &scriptedReader{
		msgs: []kafka.Message{
			{Value: []byte(`not json`)},
			{Value: []byte(`{"event_type":"OrderUpdated","payload":{"actor":"x"}}`)},
			{Value: []byte(`{"event_id":"e2","event_type":"OrderSubmitted","payload":{"order_type":"TakeAway","items":[{"product_id":"p1","quantity":1}]}}`)},
		},
	}

	run(t, uc, reader)

	assert.Empty(t, uc.inputs)
}

func TestOrderListener_KeepsConsumingAfterRejectedOrder(t *testing.T) {
	uc := &stubUseCase{err: errors.New("insufficient stock")}
	event := `{"event_type":"OrderSubmitted","payload":{"order_type":"TakeAway","actor":"kiosk","items":[{"product_id":"p1","quantity":1}]}}`
	reader := &scriptedReader{
		msgs: []kafka.Message{{Value: []byte(event)}, {Value: []byte(event)}},
	}

	run(t, uc, reader)

	assert.Len(t, uc.inputs, 2)
}

func TestOrderListener_RedeliveredEventCreatesOneOrder(t *testing.T) {
	uc := &stubUseCase{}
	event := `{"event_id":"e9","event_type":"OrderSubmitted","payload":{"order_type":"TakeAway","actor":"kiosk","items":[{"product_id":"p1","quantity":1}]}}`
	reader := &scriptedReader{
		msgs: []kafka.Message{
			{Offset: 10, Value: []byte(event)},
			{Offset: 11, Value: []byte(event)},
		},
	}

	run(t, uc, reader)

	require.Len(t, uc.inputs, 2)
	assert.Len(t, uc.seen, 1)
	assert.Equal(t, []int64{10, 11}, reader.committed)
}

func TestOrderListener_CommitsAfterHandlingEveryMessage(t *testing.T) {
	uc := &stubUseCase{err: errors.New("insufficient stock")}
	reader := &scriptedReader{
		msgs: []kafka.Message{
			{Offset: 3, Value: []byte(`not json`)},
			{Offset: 4, Value: []byte(`{"event_id":"e4","event_type":"OrderSubmitted","payload":{"order_type":"TakeAway","actor":"kiosk","items":[{"product_id":"p1","quantity":1}]}}`)},
		},
	}

	run(t, uc, reader)

	assert.Len(t, uc.inputs, 1)
	assert.Equal(t, []int64{3, 4}, reader.committed)
}
