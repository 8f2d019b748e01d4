// Package inventory confirms products can be fulfilled. The current
// implementation always succeeds; it exists as a seam for a real
// inventory backend.
package inventory

import (
	"context"

	"github.com/rs/zerolog"
)

// Checker validates product availability.
type Checker struct {
	Log zerolog.Logger
}

// Check reports whether the product can be fulfilled.
func (c Checker) Check(ctx context.Context, productID string) bool {
	c.Log.Debug().Str("product_id", productID).Msg("checking inventory")
	c.Log.Debug().Str("product_id", productID).Msg("inventory check passed")
	return true
}
