package audit

import (
	"context"

	"github.com/noah-isme/toyland-orders/internal/events"
)

// Notifier bridges the event bus to the audit trail: every emitted event
// becomes one audit entry.
type Notifier struct {
	Service Service
}

// Notify implements events.Notifier.
func (n Notifier) Notify(ctx context.Context, ev events.Event) error {
	entry := Entry{
		Timestamp: ev.OccurredAt,
		BatchID:   ev.BatchID.String(),
		OrderID:   ev.OrderID,
		Action:    ev.Topic,
		Metadata:  ev.Payload,
	}
	return n.Service.Record(ctx, entry)
}
