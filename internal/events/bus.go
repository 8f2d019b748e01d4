// Package events fans batch processing events out to in-process handlers.
package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event describes a single occurrence within a batch run.
type Event struct {
	Topic      string
	BatchID    uuid.UUID
	OrderID    string
	OccurredAt time.Time
	Payload    any
}

// Notifier reacts to emitted events (audit trail, metrics, etc.).
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Bus dispatches batch events to all configured handlers.
type Bus struct {
	BatchID   uuid.UUID
	Notifiers []Notifier
}

// Emit builds the event and dispatches it to every notifier. Notifier
// failures are joined so one handler cannot starve the others.
func (b *Bus) Emit(ctx context.Context, topic, orderID string, payload any) error {
	if b == nil {
		return nil
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return errors.New("events: topic is required")
	}
	ev := Event{
		Topic:      topic,
		BatchID:    b.BatchID,
		OrderID:    orderID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	var joined error
	for _, notifier := range b.Notifiers {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, ev); err != nil {
			joined = errors.Join(joined, fmt.Errorf("events: notifier: %w", err))
		}
	}
	return joined
}
