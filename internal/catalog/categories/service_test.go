package categories

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sparkbazaar/sparkbazaar/internal/catalog/shared"
)

type memoryRepo struct {
	items  map[string]Category
	nextID int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[string]Category{}}
}

func (m *memoryRepo) List(_ context.Context) ([]Category, error) {
	var list []Category
	for _, c := range m.items {
		list = append(list, c)
	}
	return list, nil
}

func (m *memoryRepo) Get(_ context.Context, id string) (Category, error) {
	c, ok := m.items[id]
	if !ok {
		return Category{}, shared.ErrNotFound
	}
	return c, nil
}

func (m *memoryRepo) Create(_ context.Context, category Category) (Category, error) {
	m.nextID++
	category.ID = "cat-" + strconv.Itoa(m.nextID)
	m.items[category.ID] = category
	return category, nil
}

func (m *memoryRepo) Update(_ context.Context, id string, category Category) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	category.ID = id
	m.items[id] = category
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), Category{Name: "   "})
	require.ErrorIs(t, err, shared.ErrValidation)

	created, err := svc.Create(context.Background(), Category{Name: "Sparklers"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
}

func TestUpdateMissingCategory(t *testing.T) {
	svc := NewService(newMemoryRepo())

	err := svc.Update(context.Background(), "cat-404", Category{Name: "Rockets"})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteRemovesCategory(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), Category{Name: "Fountains"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
