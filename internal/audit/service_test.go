package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toyland-orders/internal/audit"
	"github.com/noah-isme/toyland-orders/internal/events"
)

func TestServiceRecord(t *testing.T) {
	var buf bytes.Buffer
	svc := audit.Service{Trail: audit.NewTrail(&buf), Enabled: true}

	err := svc.Record(context.Background(), audit.Entry{
		OrderID: "CT-1001",
		Action:  "order.succeeded",
		Metadata: map[string]string{
			"final_total": "26.27",
		},
	})
	require.NoError(t, err)

	var decoded audit.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "CT-1001", decoded.OrderID)
	require.Equal(t, "order.succeeded", decoded.Action)
	require.False(t, decoded.Timestamp.IsZero(), "timestamp is defaulted when absent")
}

func TestServiceRecordRequiresAction(t *testing.T) {
	svc := audit.Service{Trail: audit.NewTrail(&bytes.Buffer{}), Enabled: true}
	err := svc.Record(context.Background(), audit.Entry{OrderID: "CT-1001"})
	require.Error(t, err)
}

func TestServiceDisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	svc := audit.Service{Trail: audit.NewTrail(&buf), Enabled: false}

	require.NoError(t, svc.Record(context.Background(), audit.Entry{Action: "order.failed"}))
	require.Zero(t, buf.Len())
}

func TestNotifierMapsEvents(t *testing.T) {
	var buf bytes.Buffer
	notifier := audit.Notifier{Service: audit.Service{Trail: audit.NewTrail(&buf), Enabled: true}}

	batchID := uuid.New()
	occurred := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
	err := notifier.Notify(context.Background(), events.Event{
		Topic:      events.TopicOrderFailed,
		BatchID:    batchID,
		OrderID:    "CT-1002",
		OccurredAt: occurred,
		Payload:    map[string]string{"code": "invalid_quantity", "raw_quantity": "abc"},
	})
	require.NoError(t, err)

	var decoded audit.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, events.TopicOrderFailed, decoded.Action)
	require.Equal(t, batchID.String(), decoded.BatchID)
	require.Equal(t, "CT-1002", decoded.OrderID)
	require.True(t, decoded.Timestamp.Equal(occurred))
}

func TestTrailAppendsOneLinePerEntry(t *testing.T) {
	var buf bytes.Buffer
	trail := audit.NewTrail(&buf)

	require.NoError(t, trail.Append(audit.Entry{Action: "order.succeeded"}))
	require.NoError(t, trail.Append(audit.Entry{Action: "order.failed"}))

	lines := bytes.Count(buf.Bytes(), []byte("\n"))
	require.Equal(t, 2, lines)
}
