package discount

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// loyaltyPrefix marks order ids from the repeat-customer programme.
const loyaltyPrefix = "CT-100"

var (
	categoryBonus = decimal.RequireFromString("0.05")
	loyaltyBonus  = decimal.RequireFromString("0.02")
)

// Engine composes the final discount rate per order from the base rate,
// the category bonus and the loyalty bonus, clamped to the configured cap.
type Engine struct {
	Provider Provider
	Ledger   *Ledger
	Log      zerolog.Logger
}

// Warm resolves the configuration before the first order is priced.
func (e *Engine) Warm(ctx context.Context) error {
	_, err := e.Provider.Config(ctx)
	return err
}

// Rate returns the discount rate for the order, always within
// [0, MaxDiscount]. The order id is appended to the ledger exactly once
// per call.
func (e *Engine) Rate(ctx context.Context, productID, orderID string) (decimal.Decimal, error) {
	cfg, err := e.Provider.Config(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	rate := cfg.BaseRate
	if bonus := e.categoryBonus(cfg, productID); !bonus.IsZero() {
		rate = rate.Add(bonus)
	}
	if bonus := e.loyaltyBonus(orderID); !bonus.IsZero() {
		rate = rate.Add(bonus)
	}

	if rate.GreaterThan(cfg.MaxDiscount) {
		e.Log.Debug().
			Str("order_id", orderID).
			Str("rate", rate.String()).
			Str("max_discount", cfg.MaxDiscount.String()).
			Msg("discount rate clamped to cap")
		rate = cfg.MaxDiscount
	}
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	return rate, nil
}

// categoryBonus grants the bonus when the segment after the first "-" in
// the product id names a bonus category. Ids without a category segment
// earn no bonus; they are not an error.
func (e *Engine) categoryBonus(cfg Config, productID string) decimal.Decimal {
	parts := strings.Split(productID, "-")
	if len(parts) < 2 {
		e.Log.Debug().Str("product_id", productID).Msg("product id has no category segment")
		return decimal.Zero
	}
	category := strings.ToUpper(parts[1])
	if !cfg.HasBonusCategory(category) {
		return decimal.Zero
	}
	e.Log.Debug().Str("product_id", productID).Str("category", category).Msg("category bonus applied")
	return categoryBonus
}

// loyaltyBonus records the order and grants the bonus when the previously
// recorded order shares the loyalty prefix. The first order of a batch
// has no prior entry and earns nothing.
func (e *Engine) loyaltyBonus(orderID string) decimal.Decimal {
	e.Ledger.Append(orderID)
	previous, ok := e.Ledger.Previous()
	if !ok || !strings.HasPrefix(previous, loyaltyPrefix) {
		return decimal.Zero
	}
	e.Log.Debug().Str("order_id", orderID).Str("previous_order_id", previous).Msg("loyalty bonus applied")
	return loyaltyBonus
}
