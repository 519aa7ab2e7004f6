package orders

import (
	"fmt"
	"time"
)

// Status is the fulfilment state of an order. Admins may move an order
// between any two states, so there is no transition table, only a
// validity check.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// AllStatuses lists every valid status in display order.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusConfirmed,
		StatusProcessing,
		StatusShipped,
		StatusDelivered,
		StatusCancelled,
	}
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	for _, valid := range AllStatuses() {
		if s == valid {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", raw)
}

// Order is a placed storefront order with its customer denormalised
// for listing.
type Order struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	Status      Status    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`

	CustomerName    string `json:"customer_name,omitempty"`
	CustomerEmail   string `json:"customer_email,omitempty"`
	CustomerPhone   string `json:"customer_phone,omitempty"`
	CustomerAddress string `json:"customer_address,omitempty"`

	Items []Item `json:"items,omitempty"`
}

// Item is one order line. Prices are snapshots taken at checkout so
// later catalog edits never rewrite order history.
type Item struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// Filters narrows the admin order listing.
type Filters struct {
	Page   int
	Limit  int
	Search string
	Status Status
}
