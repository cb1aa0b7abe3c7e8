package domain

import "time"

// Product is a catalog item offered by a seller.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	ImageURL    *string
	CategoryID  *string
	SellerID    string
	Stock       int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
