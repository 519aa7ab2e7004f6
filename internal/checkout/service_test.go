package checkout

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sparkbazaar/sparkbazaar/internal/cart"
	"github.com/sparkbazaar/sparkbazaar/internal/orders"
	"github.com/sparkbazaar/sparkbazaar/internal/platform/httpx"
	"github.com/sparkbazaar/sparkbazaar/jobs"
)

// recordingRepo notes every step it is asked to perform, in order.
type recordingRepo struct {
	calls      []string
	customers  map[string]string
	orderTotal float64
	items      []ItemInput
	stock      map[string]int
	committed  bool
}

func newRecordingRepo() *recordingRepo {
	return &recordingRepo{
		customers: map[string]string{},
		stock:     map[string]int{},
	}
}

func (r *recordingRepo) InTx(_ context.Context, fn func(TxRepository) error) error {
	err := fn(r)
	if err == nil {
		r.committed = true
	}
	return err
}

func (r *recordingRepo) FindCustomerByEmail(_ context.Context, email string) (string, error) {
	r.calls = append(r.calls, "find_customer")
	if id, ok := r.customers[email]; ok {
		return id, nil
	}
	return "", httpx.ErrNotFound
}

func (r *recordingRepo) CreateCustomer(_ context.Context, info CustomerInfo) (string, error) {
	r.calls = append(r.calls, "create_customer")
	id := "cust-" + info.Email
	r.customers[info.Email] = id
	return id, nil
}

func (r *recordingRepo) CreateOrder(_ context.Context, customerID string, total float64) (string, error) {
	r.calls = append(r.calls, "create_order")
	r.orderTotal = total
	return "ord-1", nil
}

func (r *recordingRepo) AddOrderItem(_ context.Context, orderID string, item ItemInput) error {
	r.calls = append(r.calls, "add_item:"+item.ProductID)
	r.items = append(r.items, item)
	return nil
}

func (r *recordingRepo) DecrementStock(_ context.Context, productID string, quantity int) error {
	r.calls = append(r.calls, "decrement_stock:"+productID)
	remaining, ok := r.stock[productID]
	if !ok || remaining < quantity {
		return ErrInsufficientStock
	}
	r.stock[productID] = remaining - quantity
	return nil
}

type fakeNotifier struct {
	events []orders.Event
}

func (f *fakeNotifier) Publish(_ context.Context, event orders.Event) {
	f.events = append(f.events, event)
}

type fakeEnqueuer struct {
	payloads []jobs.OrderConfirmationPayload
}

func (f *fakeEnqueuer) EnqueueOrderConfirmation(_ context.Context, payload jobs.OrderConfirmationPayload) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

func validInfo() CustomerInfo {
	return CustomerInfo{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		Address: "12 Market Street, Sivakasi",
	}
}

func cartWith(items ...cart.Item) *cart.MemoryStore {
	store := cart.NewMemoryStore()
	var c cart.Cart
	for _, item := range items {
		c.Add(item)
	}
	_ = store.Save(context.Background(), "sess-1", c)
	return store
}

func newTestService(carts cart.Store, repo Repository, notifier Notifier, enqueuer Enqueuer) *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), carts, repo, nil, notifier, enqueuer)
}

func TestPlaceOrderEmptyCartTouchesNothing(t *testing.T) {
	repo := newRecordingRepo()
	svc := newTestService(cart.NewMemoryStore(), repo, nil, nil)

	_, err := svc.PlaceOrder(context.Background(), "sess-1", validInfo())
	require.ErrorIs(t, err, ErrEmptyCart)
	require.Empty(t, repo.calls)
}

func TestPlaceOrderStepOrder(t *testing.T) {
	repo := newRecordingRepo()
	repo.stock["prod-a"] = 10
	repo.stock["prod-b"] = 10
	carts := cartWith(
		cart.Item{ProductID: "prod-a", Name: "Sparkler", UnitPrice: 15.50, Quantity: 2},
		cart.Item{ProductID: "prod-b", Name: "Rocket", UnitPrice: 41.00, Quantity: 1},
	)

	svc := newTestService(carts, repo, nil, nil)
	orderID, err := svc.PlaceOrder(context.Background(), "sess-1", validInfo())
	require.NoError(t, err)
	require.Equal(t, "ord-1", orderID)

	require.Equal(t, []string{
		"find_customer",
		"create_customer",
		"create_order",
		"add_item:prod-a",
		"decrement_stock:prod-a",
		"add_item:prod-b",
		"decrement_stock:prod-b",
	}, repo.calls)
	require.True(t, repo.committed)
	require.InDelta(t, 72.00, repo.orderTotal, 0.001)
}

func TestPlaceOrderSnapshotsLinePrices(t *testing.T) {
	repo := newRecordingRepo()
	repo.stock["prod-a"] = 5
	carts := cartWith(cart.Item{ProductID: "prod-a", Name: "Sparkler", UnitPrice: 15.50, Quantity: 3})

	svc := newTestService(carts, repo, nil, nil)
	_, err := svc.PlaceOrder(context.Background(), "sess-1", validInfo())
	require.NoError(t, err)

	require.Len(t, repo.items, 1)
	require.InDelta(t, 15.50, repo.items[0].UnitPrice, 0.001)
	require.InDelta(t, 46.50, repo.items[0].TotalPrice, 0.001)
	require.Equal(t, 3, repo.items[0].Quantity)
}

func TestPlaceOrderReusesKnownCustomer(t *testing.T) {
	repo := newRecordingRepo()
	repo.stock["prod-a"] = 5
	repo.customers["asha@example.com"] = "cust-existing"
	carts := cartWith(cart.Item{ProductID: "prod-a", Name: "Sparkler", UnitPrice: 10, Quantity: 1})

	svc := newTestService(carts, repo, nil, nil)
	_, err := svc.PlaceOrder(context.Background(), "sess-1", validInfo())
	require.NoError(t, err)
	require.NotContains(t, repo.calls, "create_customer")
}

func TestPlaceOrderNormalizesEmailForDedup(t *testing.T) {
	repo := newRecordingRepo()
	repo.stock["prod-a"] = 5
	repo.customers["asha@example.com"] = "cust-existing"
	carts := cartWith(cart.Item{ProductID: "prod-a", Name: "Sparkler", UnitPrice: 10, Quantity: 1})

	svc := newTestService(carts, repo, nil, nil)
	info := validInfo()
	info.Email = "  Asha@Example.COM "
	_, err := svc.PlaceOrder(context.Background(), "sess-1", info)
	require.NoError(t, err)

	// same shopper, different casing: no second customer row
	require.NotContains(t, repo.calls, "create_customer")
}

func TestPlaceOrderInsufficientStockAborts(t *testing.T) {
	repo := newRecordingRepo()
	repo.stock["prod-a"] = 1
	carts := cartWith(cart.Item{ProductID: "prod-a", Name: "Sparkler", UnitPrice: 10, Quantity: 5})

	svc := newTestService(carts, repo, nil, nil)
	_, err := svc.PlaceOrder(context.Background(), "sess-1", validInfo())
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.False(t, repo.committed)

	// cart survives a failed checkout
	c, err := carts.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	require.False(t, c.IsEmpty())
}

func TestPlaceOrderRejectsInvalidInfo(t *testing.T) {
	repo := newRecordingRepo()
	carts := cartWith(cart.Item{ProductID: "prod-a", Name: "Sparkler", UnitPrice: 10, Quantity: 1})
	svc := newTestService(carts, repo, nil, nil)

	info := validInfo()
	info.Email = "not-an-email"
	_, err := svc.PlaceOrder(context.Background(), "sess-1", info)
	require.Error(t, err)
	require.Empty(t, repo.calls)
}

func TestPlaceOrderClearsCartAndNotifies(t *testing.T) {
	repo := newRecordingRepo()
	repo.stock["prod-a"] = 5
	carts := cartWith(cart.Item{ProductID: "prod-a", Name: "Sparkler", UnitPrice: 15.50, Quantity: 2})
	notifier := &fakeNotifier{}
	enqueuer := &fakeEnqueuer{}

	svc := newTestService(carts, repo, notifier, enqueuer)
	orderID, err := svc.PlaceOrder(context.Background(), "sess-1", validInfo())
	require.NoError(t, err)

	c, err := carts.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	require.True(t, c.IsEmpty())

	require.Len(t, notifier.events, 1)
	require.Equal(t, orderID, notifier.events[0].OrderID)
	require.InDelta(t, 31.00, notifier.events[0].TotalAmount, 0.001)

	require.Len(t, enqueuer.payloads, 1)
	require.Equal(t, "asha@example.com", enqueuer.payloads[0].Email)
}
