package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Hour)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var c Cart
	c.Add(Item{ProductID: "a", Name: "Sparkler", UnitPrice: 15.50, Quantity: 3})
	require.NoError(t, store.Save(ctx, "sess-1", c))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, 3, got.ItemCount())
	require.InDelta(t, 46.50, got.TotalPrice(), 0.001)
}

func TestRedisStoreMissingCartIsEmpty(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Get(context.Background(), "never-seen")
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}

func TestRedisStoreCartsAreSessionScoped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var c Cart
	c.Add(Item{ProductID: "a", UnitPrice: 10, Quantity: 1})
	require.NoError(t, store.Save(ctx, "sess-1", c))

	other, err := store.Get(ctx, "sess-2")
	require.NoError(t, err)
	require.True(t, other.IsEmpty())
}

func TestRedisStoreSavingEmptyCartClears(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var c Cart
	c.Add(Item{ProductID: "a", UnitPrice: 10, Quantity: 1})
	require.NoError(t, store.Save(ctx, "sess-1", c))

	c.Clear()
	require.NoError(t, store.Save(ctx, "sess-1", c))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}

func TestRedisStoreClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var c Cart
	c.Add(Item{ProductID: "a", UnitPrice: 10, Quantity: 2})
	require.NoError(t, store.Save(ctx, "sess-1", c))
	require.NoError(t, store.Clear(ctx, "sess-1"))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}
