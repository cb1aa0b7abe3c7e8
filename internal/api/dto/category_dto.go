package dto

import (
	"time"

	"github.com/spec-kit/live-commerce/internal/domain"
)

// CategoryCreateRequest payload for new categories.
type CategoryCreateRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Icon        *string `json:"icon"`
	SortOrder   int     `json:"sortOrder"`
}

// CategoryUpdateRequest payload for partial category updates.
type CategoryUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Icon        *string `json:"icon"`
	IsActive    *bool   `json:"isActive"`
	SortOrder   *int    `json:"sortOrder"`
}

// CategoryResponse is the public category representation.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	Icon        *string   `json:"icon"`
	IsActive    bool      `json:"isActive"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewCategoryResponse maps the domain model.
func NewCategoryResponse(c *domain.ProductCategory) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		Icon:        c.Icon,
		IsActive:    c.IsActive,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// NewCategoryResponses maps a slice.
func NewCategoryResponses(categories []domain.ProductCategory) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, NewCategoryResponse(&categories[i]))
	}
	return out
}

// CategoryProductCountResponse pairs a category with its product total.
type CategoryProductCountResponse struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	ProductCount int64  `json:"productCount"`
}
