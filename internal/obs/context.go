package obs

import "context"

// orderIDKey is the context key storing the order id being processed.
type orderIDKey struct{}

// WithOrderID stores the current order id on the context.
func WithOrderID(ctx context.Context, orderID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, orderIDKey{}, orderID)
}

// OrderIDFromContext extracts the order id from context if present.
func OrderIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(orderIDKey{}).(string); ok {
		return v
	}
	return ""
}
