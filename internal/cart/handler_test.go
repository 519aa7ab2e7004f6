package cart

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	internalShared "github.com/sparkbazaar/sparkbazaar/internal/shared"
)

func requestWithSession(method, target, sessionID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := internalShared.ContextWithSession(req.Context(), &internalShared.Session{ID: sessionID})
	return req.WithContext(ctx)
}

func TestClearEmptiesCart(t *testing.T) {
	store := NewMemoryStore()
	var c Cart
	c.Add(Item{ProductID: "a", UnitPrice: 15.50, Quantity: 2})
	c.Add(Item{ProductID: "b", UnitPrice: 41.00, Quantity: 1})
	require.NoError(t, store.Save(context.Background(), "sess-1", c))

	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), store, nil, nil, nil)

	res := httptest.NewRecorder()
	h.Clear(res, requestWithSession(http.MethodPost, "/cart/clear", "sess-1"))

	require.Equal(t, http.StatusSeeOther, res.Code)
	require.Equal(t, "/cart", res.Header().Get("Location"))

	got, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}

func TestCountMiddlewareExposesBadgeCount(t *testing.T) {
	store := NewMemoryStore()
	var c Cart
	c.Add(Item{ProductID: "a", UnitPrice: 15.50, Quantity: 2})
	c.Add(Item{ProductID: "b", UnitPrice: 41.00, Quantity: 1})
	require.NoError(t, store.Save(context.Background(), "sess-1", c))

	var seen int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = internalShared.CartCountFromContext(r.Context())
	})

	mw := CountMiddleware(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	mw(next).ServeHTTP(httptest.NewRecorder(), requestWithSession(http.MethodGet, "/", "sess-1"))
	require.Equal(t, 3, seen)

	// a session with no cart renders a zero badge
	mw(next).ServeHTTP(httptest.NewRecorder(), requestWithSession(http.MethodGet, "/", "sess-2"))
	require.Equal(t, 0, seen)
}

func TestCountMiddlewareNoSession(t *testing.T) {
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		require.Equal(t, 0, internalShared.CartCountFromContext(r.Context()))
	})

	mw := CountMiddleware(NewMemoryStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	mw(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, called)
}
