// Package pricing holds the pure order pricing math.
package pricing

import "github.com/shopspring/decimal"

// DefaultTaxRate is the flat sales-tax rate applied after discounts.
var DefaultTaxRate = decimal.RequireFromString("0.08")

// Breakdown aggregates the computed pricing components for one order.
// It is immutable once computed.
type Breakdown struct {
	Subtotal        decimal.Decimal
	DiscountRate    decimal.Decimal
	DiscountAmount  decimal.Decimal
	DiscountedTotal decimal.Decimal
	Tax             decimal.Decimal
	Shipping        decimal.Decimal
	FinalTotal      decimal.Decimal
}

// Compute derives the full price breakdown from validated inputs.
// The discount rate is clamped upstream, so the discounted total can
// never go negative; the guard mirrors that invariant anyway.
func Compute(quantity int, unitPrice, discountRate, taxRate, shipping decimal.Decimal) Breakdown {
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	discountAmount := subtotal.Mul(discountRate)
	discounted := subtotal.Sub(discountAmount)
	if discounted.IsNegative() {
		discounted = decimal.Zero
	}
	tax := discounted.Mul(taxRate)
	total := discounted.Add(tax).Add(shipping)
	return Breakdown{
		Subtotal:        subtotal,
		DiscountRate:    discountRate,
		DiscountAmount:  discountAmount,
		DiscountedTotal: discounted,
		Tax:             tax,
		Shipping:        shipping,
		FinalTotal:      total,
	}
}
