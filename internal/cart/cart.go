package cart

// Item is one product line in a cart. UnitPrice and CategoryID are
// captured from the product when the item was added.
type Item struct {
	ProductID  string  `json:"product_id"`
	Name       string  `json:"name"`
	ImageURL   string  `json:"image_url"`
	CategoryID string  `json:"category_id,omitempty"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
}

// Cart is the single cart representation used across the storefront.
// It is a plain value: persistence lives behind Store.
type Cart struct {
	Items []Item `json:"items"`
}

// Add merges quantity into an existing line or appends a new one.
// A non-positive quantity is ignored.
func (c *Cart) Add(item Item) {
	if item.Quantity <= 0 {
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// SetQuantity updates a line's quantity. A quantity of zero or less
// removes the line; setting an absent product is a no-op either way,
// so the call is idempotent.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Remove drops a line from the cart.
func (c *Cart) Remove(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// ItemCount is the total number of units across all lines.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// DistinctCount is the number of product lines.
func (c Cart) DistinctCount() int {
	return len(c.Items)
}

// CategoryCount is the number of distinct categories across all lines.
// Uncategorized products count as one category of their own.
func (c Cart) CategoryCount() int {
	seen := make(map[string]struct{}, len(c.Items))
	for _, item := range c.Items {
		seen[item.CategoryID] = struct{}{}
	}
	return len(seen)
}

// TotalPrice sums unit price times quantity across all lines.
func (c Cart) TotalPrice() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
