package orders

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestNotifierPublishSubscribe(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	notifier := NewNotifier(client, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, stop := notifier.Subscribe(ctx)
	defer stop()

	// give the subscriber a moment to attach
	time.Sleep(50 * time.Millisecond)

	sent := Event{OrderID: "ord-1", CustomerName: "Asha Rao", TotalAmount: 72.00, CreatedAt: time.Now()}
	notifier.Publish(ctx, sent)

	select {
	case got := <-events:
		require.Equal(t, "ord-1", got.OrderID)
		require.InDelta(t, 72.00, got.TotalAmount, 0.001)
	case <-ctx.Done():
		t.Fatal("timed out waiting for order event")
	}
}
