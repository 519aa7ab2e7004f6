package orders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sparkbazaar/sparkbazaar/internal/platform/httpx"
	"github.com/sparkbazaar/sparkbazaar/internal/shared"
)

type Service struct {
	logger *slog.Logger
	repo   Repository
	audit  *shared.AuditLogger
}

func NewService(logger *slog.Logger, repo Repository, audit *shared.AuditLogger) *Service {
	return &Service{logger: logger, repo: repo, audit: audit}
}

func (s *Service) List(ctx context.Context, filters Filters) ([]Order, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) ListByEmail(ctx context.Context, email string) ([]Order, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email required", httpx.ErrValidation)
	}
	return s.repo.ListByEmail(ctx, email)
}

func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	if id == "" {
		return Order{}, fmt.Errorf("%w: order id required", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// UpdateStatus moves an order to any valid status and records who did it.
func (s *Service) UpdateStatus(ctx context.Context, actorID, id, rawStatus string) error {
	if id == "" {
		return fmt.Errorf("%w: order id required", httpx.ErrValidation)
	}
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	if err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "order.status_changed",
		Entity:   "order",
		EntityID: id,
		Meta:     map[string]any{"status": string(status)},
	}); err != nil {
		s.logger.Warn("audit order status change failed", "error", err, "order_id", id)
	}
	return nil
}

func (s *Service) CountByStatus(ctx context.Context) (map[Status]int, error) {
	return s.repo.CountByStatus(ctx)
}

func (s *Service) Revenue(ctx context.Context) (float64, error) {
	return s.repo.Revenue(ctx)
}
