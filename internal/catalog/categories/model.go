package categories

import "time"

// Category is a storefront grouping such as sparklers or rockets.
// DisplayOrder controls storefront ordering, lowest first.
type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	ImageURL     *string   `json:"image_url,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`

	ProductCount int `json:"product_count,omitempty"`
}
