package orders

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sparkbazaar/sparkbazaar/internal/platform/httpx"
)

type memoryRepo struct {
	orders map[string]Order
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{orders: map[string]Order{}}
}

func (m *memoryRepo) List(_ context.Context, filters Filters) ([]Order, int, error) {
	var list []Order
	for _, o := range m.orders {
		if filters.Status != "" && o.Status != filters.Status {
			continue
		}
		list = append(list, o)
	}
	return list, len(list), nil
}

func (m *memoryRepo) ListByEmail(_ context.Context, email string) ([]Order, error) {
	var list []Order
	for _, o := range m.orders {
		if o.CustomerEmail == email {
			list = append(list, o)
		}
	}
	return list, nil
}

func (m *memoryRepo) Get(_ context.Context, id string) (Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return Order{}, httpx.ErrNotFound
	}
	return o, nil
}

func (m *memoryRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	o, ok := m.orders[id]
	if !ok {
		return httpx.ErrNotFound
	}
	o.Status = status
	m.orders[id] = o
	return nil
}

func (m *memoryRepo) CountByStatus(_ context.Context) (map[Status]int, error) {
	counts := map[Status]int{}
	for _, o := range m.orders {
		counts[o.Status]++
	}
	return counts, nil
}

func (m *memoryRepo) Revenue(_ context.Context) (float64, error) {
	total := 0.0
	for _, o := range m.orders {
		if o.Status != StatusCancelled {
			total += o.TotalAmount
		}
	}
	return total, nil
}

func newTestService(repo Repository) *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), repo, nil)
}

func TestParseStatus(t *testing.T) {
	for _, valid := range AllStatuses() {
		got, err := ParseStatus(string(valid))
		require.NoError(t, err)
		require.Equal(t, valid, got)
	}

	_, err := ParseStatus("returned")
	require.Error(t, err)
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	repo := newMemoryRepo()
	repo.orders["ord-1"] = Order{ID: "ord-1", Status: StatusDelivered}
	svc := newTestService(repo)

	// delivered back to pending is legal, there is no one-way ladder
	require.NoError(t, svc.UpdateStatus(context.Background(), "admin-1", "ord-1", "pending"))
	require.Equal(t, StatusPending, repo.orders["ord-1"].Status)

	require.NoError(t, svc.UpdateStatus(context.Background(), "admin-1", "ord-1", "cancelled"))
	require.Equal(t, StatusCancelled, repo.orders["ord-1"].Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := newMemoryRepo()
	repo.orders["ord-1"] = Order{ID: "ord-1", Status: StatusPending}
	svc := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), "admin-1", "ord-1", "lost")
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Equal(t, StatusPending, repo.orders["ord-1"].Status)
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	err := svc.UpdateStatus(context.Background(), "admin-1", "ord-404", "confirmed")
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestListByEmailRequiresEmail(t *testing.T) {
	repo := newMemoryRepo()
	repo.orders["ord-1"] = Order{ID: "ord-1", CustomerEmail: "asha@example.com", TotalAmount: 72.00}
	svc := newTestService(repo)

	_, err := svc.ListByEmail(context.Background(), "")
	require.ErrorIs(t, err, httpx.ErrValidation)

	list, err := svc.ListByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
}
