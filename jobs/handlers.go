package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sparkbazaar/sparkbazaar/internal/shared"
)

const idempotencyRetention = 24 * time.Hour

// Handlers bundles the task handlers with their dependencies.
type Handlers struct {
	logger            *slog.Logger
	pool              *pgxpool.Pool
	idempotency       *shared.IdempotencyStore
	mailer            *Mailer
	lowStockThreshold int
}

func NewHandlers(logger *slog.Logger, pool *pgxpool.Pool, idempotency *shared.IdempotencyStore, mailer *Mailer, lowStockThreshold int) *Handlers {
	return &Handlers{
		logger:            logger,
		pool:              pool,
		idempotency:       idempotency,
		mailer:            mailer,
		lowStockThreshold: lowStockThreshold,
	}
}

// HandleOrderConfirmation processes TaskTypeOrderConfirmation tasks.
func (h *Handlers) HandleOrderConfirmation(ctx context.Context, t *asynq.Task) error {
	var payload OrderConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	subject := "Your SparkBazaar order " + payload.OrderID
	body := fmt.Sprintf("Hi %s,\n\nThanks for your order! We received it and will confirm it shortly.\n\nOrder ID: %s\nTotal: %.2f\n\nSparkBazaar",
		payload.CustomerName, payload.OrderID, payload.TotalAmount)

	if err := h.mailer.Send(payload.Email, subject, body); err != nil {
		h.logger.Error("send confirmation mail failed", "error", err, "order_id", payload.OrderID)
		return err
	}
	h.logger.Info("order confirmation sent", "order_id", payload.OrderID, "to", payload.Email)
	return nil
}

// HandleLowStockScan warns about active products running out of stock.
func (h *Handlers) HandleLowStockScan(ctx context.Context, _ *asynq.Task) error {
	rows, err := h.pool.Query(ctx,
		`SELECT id, name, stock_quantity FROM products WHERE is_active = TRUE AND stock_quantity < $1 ORDER BY stock_quantity ASC`,
		h.lowStockThreshold)
	if err != nil {
		return err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id, name string
		var stock int
		if err := rows.Scan(&id, &name, &stock); err != nil {
			return err
		}
		h.logger.Warn("product low on stock", "product_id", id, "name", name, "stock", stock)
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	h.logger.Info("low stock scan finished", "flagged", count)
	return nil
}

// HandleIdempotencyCleanup prunes stale checkout keys.
func (h *Handlers) HandleIdempotencyCleanup(ctx context.Context, _ *asynq.Task) error {
	if err := h.idempotency.Cleanup(ctx, idempotencyRetention); err != nil {
		return err
	}
	h.logger.Info("idempotency cleanup finished")
	return nil
}
