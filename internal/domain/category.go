package domain

import "time"

// ProductCategory groups catalog items. Names are unique case-insensitively.
type ProductCategory struct {
	ID          string
	Name        string
	Description string
	ImageURL    *string
	Icon        *string
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
