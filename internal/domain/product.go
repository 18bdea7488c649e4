package domain

import "time"

// Product is a catalog item managed from the admin console.
type Product struct {
	ID          string
	Name        string
	Brand       string
	Category    string
	Description string
	PriceCents  int64
	Stock       int
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
