package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/events"
	"github.com/your-org/storefront/internal/pkg/logger"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_ForwardsOrderAndWalletEvents(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducer(w, "storefront_events", logger.Discard())
	bus := events.NewBus()
	detach := p.Attach(bus)

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bus.Publish(events.Event{Topic: events.OrdersChanged, SessionID: "s-1", Payload: map[string]string{"id": "123456"}, OccurredAt: at})
	bus.Publish(events.Event{Topic: events.CartChanged, SessionID: "s-1"})
	bus.Publish(events.Event{Topic: events.WalletChanged, SessionID: "s-2"})

	require.Len(t, w.msgs, 2)
	assert.Equal(t, "s-1", string(w.msgs[0].Key))
	assert.Equal(t, "s-2", string(w.msgs[1].Key))
	assert.Equal(t, at, w.msgs[0].Time)
	assert.Equal(t, "orders.changed", string(w.msgs[0].Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, "orders.changed", decoded["topic"])
	assert.Equal(t, "s-1", decoded["session_id"])
	assert.Equal(t, map[string]any{"id": "123456"}, decoded["payload"])

	detach()
	bus.Publish(events.Event{Topic: events.OrdersChanged, SessionID: "s-3"})
	assert.Len(t, w.msgs, 2)
	assert.Zero(t, bus.Subscribers())
}

func TestProducer_WriteErrorIsWrapped(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := NewProducer(w, "storefront_events", logger.Discard())

	err := p.PublishEvent(context.Background(), events.Event{Topic: events.WalletChanged, SessionID: "s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storefront_events")
	assert.ErrorIs(t, err, w.err)

	// Handle only logs
	assert.NotPanics(t, func() { p.Handle(events.Event{Topic: events.WalletChanged}) })
}

func TestProducer_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, NewProducer(w, "t", logger.Discard()).Close())
	assert.True(t, w.closed)
}
