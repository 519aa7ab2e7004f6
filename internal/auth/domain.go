package auth

import "time"

// User is a console administrator. Shoppers never log in; only admin
// accounts exist.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
