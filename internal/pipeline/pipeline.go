// Package pipeline runs one order end-to-end: parse, validate, price,
// discount, tax, total.
package pipeline

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/toyland-orders/internal/common"
	"github.com/noah-isme/toyland-orders/internal/discount"
	"github.com/noah-isme/toyland-orders/internal/ingest"
	"github.com/noah-isme/toyland-orders/internal/inventory"
	"github.com/noah-isme/toyland-orders/internal/obs"
	"github.com/noah-isme/toyland-orders/internal/pricing"
	"github.com/noah-isme/toyland-orders/internal/shipping"
)

// Result is the terminal outcome for a single order. Failed results keep
// the raw record so the offending field values reach the audit trail.
type Result struct {
	OrderID   string
	Record    ingest.OrderRecord
	Ok        bool
	Code      string
	Review    bool
	Breakdown pricing.Breakdown
}

// Pipeline prices one order at a time. All state lives in the injected
// collaborators; the pipeline itself holds none.
type Pipeline struct {
	Inventory inventory.Checker
	Discounts *discount.Engine
	Shipping  shipping.Calculator
	TaxRate   decimal.Decimal
	Log       zerolog.Logger
}

// Warm resolves the discount configuration before the first order, so no
// order ever observes an unready configuration.
func (p *Pipeline) Warm(ctx context.Context) error {
	return p.Discounts.Warm(ctx)
}

// Process runs the order through the full pricing flow. Parse and
// validation failures are converted into a failed Result; only a
// config-unavailable condition is returned as an error, since it is
// fatal to the whole batch.
func (p *Pipeline) Process(ctx context.Context, rec ingest.OrderRecord) (Result, error) {
	orderID := rec.OrderID
	if strings.TrimSpace(orderID) == "" {
		orderID = "UNKNOWN"
	}
	ctx = obs.WithOrderID(ctx, orderID)
	log := p.Log.With().Str("order_id", orderID).Logger()

	log.Info().Str("product", rec.ProductName).Msg("processing order")

	if err := rec.Validate(); err != nil {
		return p.fail(log, orderID, rec, common.CodeInvalidRecord, "order record is missing required fields"), nil
	}

	log.Debug().Str("raw_quantity", rec.Quantity).Msg("parsing quantity")
	qty, err := strconv.Atoi(rec.Quantity)
	if err != nil {
		return p.fail(log, orderID, rec, common.CodeInvalidQuantity, "quantity is not a number"), nil
	}

	log.Debug().Str("raw_unit_price", rec.UnitPrice).Msg("parsing unit price")
	price, err := decimal.NewFromString(rec.UnitPrice)
	if err != nil || price.IsNegative() {
		return p.fail(log, orderID, rec, common.CodeInvalidPrice, "unit price is not a non-negative number"), nil
	}

	if qty < 0 {
		return p.fail(log, orderID, rec, common.CodeNegativeQuantity, "quantity cannot be negative"), nil
	}

	review := false
	if qty == 0 {
		review = true
		log.Warn().Msg("order has zero quantity, flagging for review")
	}

	p.Inventory.Check(ctx, rec.ProductID)

	rate, err := p.Discounts.Rate(ctx, rec.ProductID, orderID)
	if err != nil {
		return Result{}, err
	}

	bd := pricing.Compute(qty, price, rate, p.TaxRate, p.Shipping.Cost(qty))

	log.Info().
		Str("product", rec.ProductName).
		Str("subtotal", bd.Subtotal.StringFixed(2)).
		Str("discount_rate", bd.DiscountRate.String()).
		Str("discount_amount", bd.DiscountAmount.StringFixed(2)).
		Str("discounted_total", bd.DiscountedTotal.StringFixed(2)).
		Str("tax", bd.Tax.StringFixed(2)).
		Str("shipping", bd.Shipping.StringFixed(2)).
		Str("final_total", bd.FinalTotal.StringFixed(2)).
		Msg("order processed")

	return Result{OrderID: orderID, Record: rec, Ok: true, Review: review, Breakdown: bd}, nil
}

func (p *Pipeline) fail(log zerolog.Logger, orderID string, rec ingest.OrderRecord, code, message string) Result {
	log.Error().
		Str("code", code).
		Str("raw_quantity", rec.Quantity).
		Str("raw_unit_price", rec.UnitPrice).
		Msg(message)
	return Result{OrderID: orderID, Record: rec, Code: code}
}
