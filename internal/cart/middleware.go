package cart

import (
	"log/slog"
	"net/http"

	internalShared "github.com/sparkbazaar/sparkbazaar/internal/shared"
)

// CountMiddleware loads the session cart once per request and puts its
// item count on the context so the nav badge renders on every page,
// not just the cart view. Load failures degrade to a zero badge.
func CountMiddleware(store Store, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := internalShared.SessionFromContext(r.Context())
			if sess == nil {
				next.ServeHTTP(w, r)
				return
			}
			c, err := store.Get(r.Context(), sess.ID)
			if err != nil {
				logger.Warn("load cart for badge failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			ctx := internalShared.ContextWithCartCount(r.Context(), c.ItemCount())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
