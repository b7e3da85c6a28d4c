package domain

import "time"

// Product is a catalog entry referenced from carts by its opaque ID.
type Product struct {
	ID        string
	Name      string
	Price     float64
	Discount  float64
	CreatedAt time.Time
}
