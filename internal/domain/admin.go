package domain

import "time"

// Admin models the single store administrator. Admins have no cart.
type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
