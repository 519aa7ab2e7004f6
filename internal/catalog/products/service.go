package products

import (
	"context"
	"fmt"

	"github.com/sparkbazaar/sparkbazaar/internal/catalog/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error) {
	return s.repo.List(ctx, filters)
}

// ListActive returns storefront products, newest first.
func (s *Service) ListActive(ctx context.Context) ([]Product, error) {
	active := true
	list, _, err := s.repo.List(ctx, shared.ListFilters{IsActive: &active})
	return list, err
}

// GroupByCategory buckets products under their category name; products
// without a category land under the empty key.
func GroupByCategory(list []Product) map[string][]Product {
	grouped := make(map[string][]Product)
	for _, p := range list {
		grouped[p.CategoryName] = append(grouped[p.CategoryName], p)
	}
	return grouped
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	if id == "" {
		return Product{}, fmt.Errorf("%w: product id required", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, product Product) (Product, error) {
	if err := validate(product); err != nil {
		return Product{}, err
	}
	product.IsActive = true
	return s.repo.Create(ctx, product)
}

func (s *Service) Update(ctx context.Context, id string, product Product) error {
	if id == "" {
		return fmt.Errorf("%w: product id required", shared.ErrValidation)
	}
	if err := validate(product); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, product)
}

// Deactivate soft-deletes a product, keeping it on past orders.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: product id required", shared.ErrValidation)
	}
	return s.repo.SetActive(ctx, id, false)
}

// Reactivate puts a deactivated product back on the storefront.
func (s *Service) Reactivate(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: product id required", shared.ErrValidation)
	}
	return s.repo.SetActive(ctx, id, true)
}
