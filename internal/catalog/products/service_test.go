package products

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sparkbazaar/sparkbazaar/internal/catalog/shared"
)

type memoryRepo struct {
	items  map[string]Product
	nextID int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[string]Product{}}
}

func (m *memoryRepo) List(_ context.Context, filters shared.ListFilters) ([]Product, int, error) {
	var list []Product
	for _, p := range m.items {
		if filters.IsActive != nil && p.IsActive != *filters.IsActive {
			continue
		}
		list = append(list, p)
	}
	return list, len(list), nil
}

func (m *memoryRepo) Get(_ context.Context, id string) (Product, error) {
	p, ok := m.items[id]
	if !ok {
		return Product{}, shared.ErrNotFound
	}
	return p, nil
}

func (m *memoryRepo) Create(_ context.Context, product Product) (Product, error) {
	m.nextID++
	product.ID = "prod-" + strconv.Itoa(m.nextID)
	m.items[product.ID] = product
	return product, nil
}

func (m *memoryRepo) Update(_ context.Context, id string, product Product) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	product.ID = id
	m.items[id] = product
	return nil
}

func (m *memoryRepo) SetActive(_ context.Context, id string, active bool) error {
	p, ok := m.items[id]
	if !ok {
		return shared.ErrNotFound
	}
	p.IsActive = active
	m.items[id] = p
	return nil
}

func validProduct() Product {
	return Product{
		Name:          "Golden Sparkler",
		Content:       "Box of 10 sparklers",
		OriginalPrice: 100,
		DiscountPrice: 80,
		StockQuantity: 25,
	}
}

func TestCreateActivatesProduct(t *testing.T) {
	svc := NewService(newMemoryRepo())

	created, err := svc.Create(context.Background(), validProduct())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.True(t, created.IsActive)
}

func TestCreateRejectsInvalidProducts(t *testing.T) {
	svc := NewService(newMemoryRepo())

	cases := map[string]func(*Product){
		"missing name":            func(p *Product) { p.Name = "  " },
		"missing content":         func(p *Product) { p.Content = "" },
		"negative original price": func(p *Product) { p.OriginalPrice = -1 },
		"negative discount price": func(p *Product) { p.DiscountPrice = -5 },
		"discount above original": func(p *Product) { p.OriginalPrice = 50; p.DiscountPrice = 60 },
		"negative stock":          func(p *Product) { p.StockQuantity = -3 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validProduct()
			mutate(&p)
			_, err := svc.Create(context.Background(), p)
			require.ErrorIs(t, err, shared.ErrValidation)
		})
	}
}

func TestDeactivateKeepsProduct(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), validProduct())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), created.ID))

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Empty(t, active)

	require.NoError(t, svc.Reactivate(context.Background(), created.ID))
	active, err = svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
}

func TestDiscountPercent(t *testing.T) {
	require.Equal(t, 80, DiscountPercent(100, 20))
	require.Equal(t, 0, DiscountPercent(0, 0))
	require.Equal(t, 0, DiscountPercent(100, 100))
	require.Equal(t, 33, DiscountPercent(150, 100))
}

func TestGroupByCategory(t *testing.T) {
	list := []Product{
		{Name: "Rocket", CategoryName: "Aerial"},
		{Name: "Sparkler", CategoryName: "Sparklers"},
		{Name: "Shell", CategoryName: "Aerial"},
		{Name: "Lone Fountain"},
	}

	grouped := GroupByCategory(list)
	require.Len(t, grouped["Aerial"], 2)
	require.Len(t, grouped["Sparklers"], 1)
	require.Len(t, grouped[""], 1)
}
