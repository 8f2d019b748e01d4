// Package batch drives the pricing pipeline across a full order set.
package batch

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/toyland-orders/internal/common"
	"github.com/noah-isme/toyland-orders/internal/events"
	"github.com/noah-isme/toyland-orders/internal/ingest"
	"github.com/noah-isme/toyland-orders/internal/obs"
	"github.com/noah-isme/toyland-orders/internal/pipeline"
)

// Summary aggregates per-order outcomes for one run. Every processed
// order is reflected exactly once: Succeeded + Failed == Total.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Runner executes the pricing pipeline over a set of orders, in input
// order, and tallies the outcomes. A single order's failure never aborts
// the batch; only an unavailable discount configuration does.
type Runner struct {
	Pipeline *pipeline.Pipeline
	Bus      *events.Bus
	Log      zerolog.Logger
}

// Run processes every record and returns the batch summary.
func (r *Runner) Run(ctx context.Context, records []ingest.OrderRecord) (Summary, error) {
	started := time.Now()

	// Resolve the discount configuration up front so the first orders
	// never race an unready config.
	if err := r.Pipeline.Warm(ctx); err != nil {
		r.Log.Error().Err(err).Str("code", common.CodeOf(err)).Msg("discount configuration unavailable, aborting batch")
		return Summary{}, err
	}

	var summary Summary
	for _, rec := range records {
		summary.Total++
		res, err := r.Pipeline.Process(ctx, rec)
		if err != nil {
			r.Log.Error().Err(err).Str("order_id", rec.OrderID).Msg("batch aborted")
			return summary, err
		}
		r.tally(ctx, res, &summary)
	}

	obs.BatchDuration.Observe(time.Since(started).Seconds())
	r.emit(ctx, events.TopicBatchCompleted, "", map[string]int{
		"total":     summary.Total,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
	})
	r.Log.Info().
		Int("total", summary.Total).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Msg("batch processing complete")
	return summary, nil
}

func (r *Runner) tally(ctx context.Context, res pipeline.Result, summary *Summary) {
	if res.Ok {
		summary.Succeeded++
		obs.OrdersProcessedTotal.WithLabelValues("succeeded").Inc()
		total, _ := res.Breakdown.FinalTotal.Float64()
		obs.OrderFinalTotal.Observe(total)
		r.emit(ctx, events.TopicOrderSucceeded, res.OrderID, map[string]string{
			"subtotal":         res.Breakdown.Subtotal.StringFixed(2),
			"discounted_total": res.Breakdown.DiscountedTotal.StringFixed(2),
			"tax":              res.Breakdown.Tax.StringFixed(2),
			"shipping":         res.Breakdown.Shipping.StringFixed(2),
			"final_total":      res.Breakdown.FinalTotal.StringFixed(2),
		})
		if res.Review {
			obs.OrdersFlaggedTotal.Inc()
			r.emit(ctx, events.TopicOrderReview, res.OrderID, map[string]string{
				"reason": "zero quantity",
			})
		}
		return
	}
	summary.Failed++
	obs.OrdersProcessedTotal.WithLabelValues("failed").Inc()
	obs.OrderFailuresTotal.WithLabelValues(res.Code).Inc()
	r.emit(ctx, events.TopicOrderFailed, res.OrderID, map[string]string{
		"code":           res.Code,
		"raw_quantity":   res.Record.Quantity,
		"raw_unit_price": res.Record.UnitPrice,
	})
}

func (r *Runner) emit(ctx context.Context, topic, orderID string, payload any) {
	if r.Bus == nil {
		return
	}
	if err := r.Bus.Emit(ctx, topic, orderID, payload); err != nil {
		r.Log.Error().Err(err).Str("topic", topic).Msg("emit event")
	}
}
