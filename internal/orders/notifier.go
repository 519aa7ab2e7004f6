package orders

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const eventChannel = "orders:events"

// Event is broadcast whenever a new order lands, so every running
// admin page can bump its badge without polling.
type Event struct {
	OrderID      string    `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	TotalAmount  float64   `json:"total_amount"`
	CreatedAt    time.Time `json:"created_at"`
}

// Notifier fans order events out over a Redis pub/sub channel.
type Notifier struct {
	client *redis.Client
	logger *slog.Logger
}

func NewNotifier(client *redis.Client, logger *slog.Logger) *Notifier {
	return &Notifier{client: client, logger: logger}
}

// Publish broadcasts an event. Failures are logged, never returned:
// a checkout must not fail because the badge channel is down.
func (n *Notifier) Publish(ctx context.Context, event Event) {
	raw, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("encode order event", "error", err)
		return
	}
	if err := n.client.Publish(ctx, eventChannel, raw).Err(); err != nil {
		n.logger.Error("publish order event", "error", err, "order_id", event.OrderID)
	}
}

// Subscribe delivers events until ctx is cancelled. The returned
// cancel function must be called to release the subscription.
func (n *Notifier) Subscribe(ctx context.Context) (<-chan Event, func()) {
	sub := n.client.Subscribe(ctx, eventChannel)
	events := make(chan Event)

	go func() {
		defer close(events)
		for msg := range sub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				n.logger.Warn("decode order event", "error", err)
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, func() { _ = sub.Close() }
}
