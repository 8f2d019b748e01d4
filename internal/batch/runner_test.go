package batch_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toyland-orders/internal/batch"
	"github.com/noah-isme/toyland-orders/internal/discount"
	"github.com/noah-isme/toyland-orders/internal/events"
	"github.com/noah-isme/toyland-orders/internal/ingest"
	"github.com/noah-isme/toyland-orders/internal/inventory"
	"github.com/noah-isme/toyland-orders/internal/obs"
	"github.com/noah-isme/toyland-orders/internal/pipeline"
	"github.com/noah-isme/toyland-orders/internal/pricing"
	"github.com/noah-isme/toyland-orders/internal/shipping"
)

var registerMetrics sync.Once

func newRunner(t *testing.T, provider discount.Provider, bus *events.Bus) *batch.Runner {
	t.Helper()
	registerMetrics.Do(func() {
		obs.MustRegisterDomainMetrics("test", prometheus.NewRegistry())
	})
	pipe := &pipeline.Pipeline{
		Inventory: inventory.Checker{Log: zerolog.Nop()},
		Discounts: &discount.Engine{Provider: provider, Ledger: discount.NewLedger(), Log: zerolog.Nop()},
		Shipping:  shipping.NewCalculator(),
		TaxRate:   pricing.DefaultTaxRate,
		Log:       zerolog.Nop(),
	}
	return &batch.Runner{Pipeline: pipe, Bus: bus, Log: zerolog.Nop()}
}

func holidayProvider() discount.Provider {
	return discount.StaticProvider{Cfg: discount.NewConfig(
		decimal.RequireFromString("0.15"),
		decimal.RequireFromString("0.25"),
		[]string{"RC", "ROBOT"},
	)}
}

type captureNotifier struct {
	events []events.Event
}

func (c *captureNotifier) Notify(_ context.Context, ev events.Event) error {
	c.events = append(c.events, ev)
	return nil
}

func (c *captureNotifier) topics() map[string]int {
	counts := map[string]int{}
	for _, ev := range c.events {
		counts[ev.Topic]++
	}
	return counts
}

func rec(orderID, qty, price string) ingest.OrderRecord {
	return ingest.OrderRecord{
		OrderID:     orderID,
		ProductID:   "RC-Robot",
		ProductName: "RC Robot Deluxe",
		Quantity:    qty,
		UnitPrice:   price,
	}
}

func TestRunTalliesEveryOrderExactlyOnce(t *testing.T) {
	notifier := &captureNotifier{}
	bus := &events.Bus{Notifiers: []events.Notifier{notifier}}
	runner := newRunner(t, holidayProvider(), bus)

	records := []ingest.OrderRecord{
		rec("CT-1001", "2", "10.00"),
		rec("CT-1002", "abc", "10.00"),
		rec("CT-1003", "1", "oops"),
		rec("CT-1004", "-3", "10.00"),
		rec("CT-1005", "1", "4.99"),
	}

	summary, err := runner.Run(context.Background(), records)
	require.NoError(t, err)
	require.Equal(t, len(records), summary.Total)
	require.Equal(t, 2, summary.Succeeded)
	require.Equal(t, 3, summary.Failed)
	require.Equal(t, summary.Total, summary.Succeeded+summary.Failed)

	topics := notifier.topics()
	require.Equal(t, 2, topics[events.TopicOrderSucceeded])
	require.Equal(t, 3, topics[events.TopicOrderFailed])
	require.Equal(t, 1, topics[events.TopicBatchCompleted])
}

func TestRunFlagsZeroQuantity(t *testing.T) {
	notifier := &captureNotifier{}
	bus := &events.Bus{Notifiers: []events.Notifier{notifier}}
	runner := newRunner(t, holidayProvider(), bus)

	summary, err := runner.Run(context.Background(), []ingest.OrderRecord{rec("CT-2001", "0", "10.00")})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Succeeded, "zero quantity succeeds with a warning")
	require.Equal(t, 1, notifier.topics()[events.TopicOrderReview])
}

func TestRunAbortsWhenConfigUnavailable(t *testing.T) {
	provider := discount.NewLazyProvider(func(context.Context) (discount.Config, error) {
		return discount.Config{}, errors.New("backend down")
	})
	runner := newRunner(t, provider, nil)

	summary, err := runner.Run(context.Background(), []ingest.OrderRecord{rec("CT-3001", "1", "10.00")})
	require.ErrorIs(t, err, discount.ErrConfigUnavailable)
	require.Zero(t, summary.Total, "config is resolved before any order is processed")
}

func TestRunWithoutBus(t *testing.T) {
	runner := newRunner(t, holidayProvider(), nil)

	summary, err := runner.Run(context.Background(), []ingest.OrderRecord{rec("CT-4001", "1", "10.00")})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Succeeded)
}
