package shared

import "context"

type contextKey string

const (
	sessionContextKey   contextKey = "session"
	cartCountContextKey contextKey = "cart_count"
)

// ContextWithSession attaches a session to the context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SessionFromContext retrieves the session stored by the middleware, nil if absent.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey).(*Session)
	return sess
}

// ContextWithCartCount stores the shopper's cart item count so every
// page can render the nav badge without reloading the cart.
func ContextWithCartCount(ctx context.Context, count int) context.Context {
	return context.WithValue(ctx, cartCountContextKey, count)
}

// CartCountFromContext retrieves the cart item count, 0 if absent.
func CartCountFromContext(ctx context.Context) int {
	count, _ := ctx.Value(cartCountContextKey).(int)
	return count
}
