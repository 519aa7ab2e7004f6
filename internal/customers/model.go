package customers

import "time"

// Customer is a storefront buyer. Email is the natural key: checkout
// reuses the existing row when the email is already known.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`

	OrderCount int `json:"order_count,omitempty"`
}
