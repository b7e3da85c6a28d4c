package domain

import "time"

// User is the domain model for storefront customers.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Cart         []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

