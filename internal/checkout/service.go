package checkout

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sparkbazaar/sparkbazaar/internal/cart"
	"github.com/sparkbazaar/sparkbazaar/internal/orders"
	"github.com/sparkbazaar/sparkbazaar/internal/platform/httpx"
	"github.com/sparkbazaar/sparkbazaar/internal/shared"
	"github.com/sparkbazaar/sparkbazaar/jobs"
)

// Notifier publishes a new-order event. Satisfied by orders.Notifier.
type Notifier interface {
	Publish(ctx context.Context, event orders.Event)
}

// Enqueuer queues the confirmation email. Satisfied by jobs.Client.
type Enqueuer interface {
	EnqueueOrderConfirmation(ctx context.Context, payload jobs.OrderConfirmationPayload) error
}

// Service runs the checkout workflow: resolve the customer by email,
// write the order and its lines, and decrement stock, all in a single
// transaction.
type Service struct {
	logger      *slog.Logger
	carts       cart.Store
	repo        Repository
	idempotency *shared.IdempotencyStore
	notifier    Notifier
	enqueuer    Enqueuer
}

func NewService(
	logger *slog.Logger,
	carts cart.Store,
	repo Repository,
	idempotency *shared.IdempotencyStore,
	notifier Notifier,
	enqueuer Enqueuer,
) *Service {
	return &Service{
		logger:      logger,
		carts:       carts,
		repo:        repo,
		idempotency: idempotency,
		notifier:    notifier,
		enqueuer:    enqueuer,
	}
}

// PlaceOrder submits the session's cart and returns the new order ID.
// An empty cart is rejected before any database work starts.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, info CustomerInfo) (string, error) {
	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if c.IsEmpty() {
		return "", ErrEmptyCart
	}
	info = info.Normalized()
	if err := info.Validate(); err != nil {
		return "", err
	}

	key := submissionKey(sessionID, c)
	if s.idempotency != nil {
		if err := s.idempotency.CheckAndInsert(ctx, key, "checkout"); err != nil {
			if errors.Is(err, shared.ErrIdempotencyConflict) {
				return "", ErrDuplicateSubmission
			}
			return "", err
		}
	}

	var orderID string
	total := c.TotalPrice()

	err = s.repo.InTx(ctx, func(tx TxRepository) error {
		customerID, err := tx.FindCustomerByEmail(ctx, info.Email)
		if errors.Is(err, httpx.ErrNotFound) {
			customerID, err = tx.CreateCustomer(ctx, info)
		}
		if err != nil {
			return fmt.Errorf("resolve customer: %w", err)
		}

		orderID, err = tx.CreateOrder(ctx, customerID, total)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, line := range c.Items {
			item := ItemInput{
				ProductID:   line.ProductID,
				ProductName: line.Name,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				TotalPrice:  line.UnitPrice * float64(line.Quantity),
			}
			if err := tx.AddOrderItem(ctx, orderID, item); err != nil {
				return fmt.Errorf("add order item: %w", err)
			}
			if err := tx.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return fmt.Errorf("product %s: %w", line.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		if s.idempotency != nil {
			if delErr := s.idempotency.Delete(ctx, key); delErr != nil {
				s.logger.Warn("release idempotency key failed", "error", delErr)
			}
		}
		return "", err
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logger.Warn("clear cart after checkout failed", "error", err, "session_id", sessionID)
	}

	if s.notifier != nil {
		s.notifier.Publish(ctx, orders.Event{
			OrderID:      orderID,
			CustomerName: info.Name,
			TotalAmount:  total,
			CreatedAt:    time.Now(),
		})
	}
	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueueOrderConfirmation(ctx, jobs.OrderConfirmationPayload{
			OrderID:      orderID,
			Email:        info.Email,
			CustomerName: info.Name,
			TotalAmount:  total,
		}); err != nil {
			s.logger.Warn("enqueue confirmation mail failed", "error", err, "order_id", orderID)
		}
	}

	s.logger.Info("order placed", "order_id", orderID, "total", total, "items", c.DistinctCount())
	return orderID, nil
}

// submissionKey fingerprints a cart so resubmitting the exact same
// cart from the same session is caught as a duplicate.
func submissionKey(sessionID string, c cart.Cart) string {
	raw, _ := json.Marshal(c.Items)
	sum := sha256.Sum256(append([]byte(sessionID+"|"), raw...))
	return hex.EncodeToString(sum[:])
}
