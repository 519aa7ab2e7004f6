package products

import (
	"fmt"
	"strings"

	"github.com/sparkbazaar/sparkbazaar/internal/catalog/shared"
)

func validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", shared.ErrValidation)
	}
	if strings.TrimSpace(p.Content) == "" {
		return fmt.Errorf("%w: product content is required", shared.ErrValidation)
	}
	if p.OriginalPrice < 0 || p.DiscountPrice < 0 {
		return fmt.Errorf("%w: prices must not be negative", shared.ErrValidation)
	}
	if p.DiscountPrice > p.OriginalPrice {
		return fmt.Errorf("%w: discount price must not exceed original price", shared.ErrValidation)
	}
	if p.StockQuantity < 0 {
		return fmt.Errorf("%w: stock quantity must not be negative", shared.ErrValidation)
	}
	return nil
}
