package products

import (
	"math"
	"time"
)

// Product represents a sellable firework item.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	Content       string    `json:"content"`
	ImageURL      string    `json:"image_url"`
	OriginalPrice float64   `json:"original_price"`
	DiscountPrice float64   `json:"discount_price"`
	CategoryID    *string   `json:"category_id,omitempty"`
	StockQuantity int       `json:"stock_quantity"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`

	CategoryName string `json:"category_name,omitempty"`
}

// DiscountPercent returns the rounded percentage saved against the
// original price, 0 when the original price is zero.
func (p Product) DiscountPercent() int {
	return DiscountPercent(p.OriginalPrice, p.DiscountPrice)
}

// DiscountPercent computes round(100 * (original - discount) / original).
func DiscountPercent(original, discount float64) int {
	if original == 0 {
		return 0
	}
	return int(math.Round((original - discount) / original * 100))
}

// InStock reports whether any sellable units remain.
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}
