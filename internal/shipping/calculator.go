// Package shipping prices order shipping as a flat base fee plus a
// per-item charge.
package shipping

import "github.com/shopspring/decimal"

// Default rates for the holiday batch.
var (
	DefaultBase    = decimal.RequireFromString("5.99")
	DefaultPerItem = decimal.RequireFromString("1.50")
)

// Calculator computes shipping cost from item quantity.
type Calculator struct {
	Base    decimal.Decimal
	PerItem decimal.Decimal
}

// NewCalculator returns a Calculator with the default rates.
func NewCalculator() Calculator {
	return Calculator{Base: DefaultBase, PerItem: DefaultPerItem}
}

// Cost returns the shipping cost for the quantity. Quantity is validated
// upstream; the function is total for all non-negative inputs.
func (c Calculator) Cost(quantity int) decimal.Decimal {
	return c.Base.Add(c.PerItem.Mul(decimal.NewFromInt(int64(quantity))))
}
