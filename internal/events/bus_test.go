package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toyland-orders/internal/events"
)

type captureNotifier struct {
	received []events.Event
	err      error
}

func (c *captureNotifier) Notify(_ context.Context, ev events.Event) error {
	c.received = append(c.received, ev)
	return c.err
}

func TestEmitFansOut(t *testing.T) {
	first := &captureNotifier{}
	second := &captureNotifier{}
	batchID := uuid.New()
	bus := &events.Bus{BatchID: batchID, Notifiers: []events.Notifier{first, second}}

	err := bus.Emit(context.Background(), events.TopicOrderSucceeded, "CT-1001", map[string]string{"final_total": "26.27"})
	require.NoError(t, err)

	require.Len(t, first.received, 1)
	require.Len(t, second.received, 1)
	ev := first.received[0]
	require.Equal(t, events.TopicOrderSucceeded, ev.Topic)
	require.Equal(t, batchID, ev.BatchID)
	require.Equal(t, "CT-1001", ev.OrderID)
	require.False(t, ev.OccurredAt.IsZero())
}

func TestEmitRequiresTopic(t *testing.T) {
	bus := &events.Bus{}
	err := bus.Emit(context.Background(), "  ", "CT-1001", nil)
	require.Error(t, err)
}

func TestEmitJoinsNotifierFailures(t *testing.T) {
	boom := errors.New("boom")
	failing := &captureNotifier{err: boom}
	healthy := &captureNotifier{}
	bus := &events.Bus{Notifiers: []events.Notifier{failing, healthy}}

	err := bus.Emit(context.Background(), events.TopicOrderFailed, "CT-1002", nil)
	require.ErrorIs(t, err, boom)
	require.Len(t, healthy.received, 1, "one failing notifier must not starve the others")
}

func TestEmitOnNilBus(t *testing.T) {
	var bus *events.Bus
	require.NoError(t, bus.Emit(context.Background(), events.TopicOrderFailed, "CT-1003", nil))
}
