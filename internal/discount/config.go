// Package discount composes the holiday discount rate applied to each order.
package discount

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Config is the discount configuration for one batch run. It is immutable
// once loaded; Provider guarantees it is fully populated before first use.
type Config struct {
	BaseRate        decimal.Decimal
	BonusCategories map[string]struct{}
	MaxDiscount     decimal.Decimal
}

// NewConfig builds a Config, normalising category names to upper case.
func NewConfig(baseRate, maxDiscount decimal.Decimal, categories []string) Config {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		trimmed := strings.ToUpper(strings.TrimSpace(c))
		if trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}
	return Config{BaseRate: baseRate, BonusCategories: set, MaxDiscount: maxDiscount}
}

// Validate ensures the rates fall inside [0,1].
func (c Config) Validate() error {
	one := decimal.NewFromInt(1)
	if c.BaseRate.IsNegative() || c.BaseRate.GreaterThan(one) {
		return fmt.Errorf("discount: base rate %s out of range [0,1]", c.BaseRate)
	}
	if c.MaxDiscount.IsNegative() || c.MaxDiscount.GreaterThan(one) {
		return fmt.Errorf("discount: max discount %s out of range [0,1]", c.MaxDiscount)
	}
	return nil
}

// HasBonusCategory reports whether the category earns the bonus rate.
func (c Config) HasBonusCategory(category string) bool {
	_, ok := c.BonusCategories[strings.ToUpper(category)]
	return ok
}
