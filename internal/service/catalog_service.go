package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/live-commerce/internal/domain"
	"github.com/spec-kit/live-commerce/internal/events"
	"github.com/spec-kit/live-commerce/internal/repository"
	apperrors "github.com/spec-kit/live-commerce/pkg/util"
)

// CategoryUpdate carries optional category fields; nil means leave unchanged.
type CategoryUpdate struct {
	Name        *string
	Description *string
	ImageURL    *string
	Icon        *string
	IsActive    *bool
	SortOrder   *int
}

// CategoryStats aggregates totals for the admin category dashboard.
type CategoryStats struct {
	TotalCategories  int64
	ActiveCategories int64
	PerCategory      []repository.CategoryProductCount
}

// CatalogService covers public product and category operations.
type CatalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	dispatcher events.Dispatcher
}

// NewCatalogService builds the service.
func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository, dispatcher events.Dispatcher) *CatalogService {
	return &CatalogService{products: products, categories: categories, dispatcher: dispatcher}
}

// CreateProduct stores a new catalog item owned by the caller.
func (s *CatalogService) CreateProduct(ctx context.Context, sellerID string, product *domain.Product) (*domain.Product, error) {
	product.SellerID = sellerID
	product.IsActive = true
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventProductCreated,
			SubjectID: product.ID,
			ActorID:   sellerID,
			Timestamp: time.Now(),
			Payload:   events.ProductCreatedPayload{Name: product.Name, Price: product.Price},
		})
	}
	return product, nil
}

// ListProducts returns the full catalog, newest first.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// ListCategories returns categories ordered by sort order then name.
func (s *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]domain.ProductCategory, error) {
	return s.categories.List(ctx, activeOnly)
}

// GetCategory fetches a category by id.
func (s *CatalogService) GetCategory(ctx context.Context, id string) (*domain.ProductCategory, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", nil)
		}
		return nil, err
	}
	return category, nil
}

// CreateCategory stores a new category; names are unique case-insensitively.
func (s *CatalogService) CreateCategory(ctx context.Context, category *domain.ProductCategory) (*domain.ProductCategory, error) {
	if _, err := s.categories.GetByName(ctx, category.Name); err == nil {
		return nil, apperrors.NewConflict("Category with this name already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	category.IsActive = true
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory applies partial changes; renames re-check uniqueness.
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, update CategoryUpdate) (*domain.ProductCategory, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name != category.Name {
		if existing, err := s.categories.GetByName(ctx, *update.Name); err == nil && existing.ID != id {
			return nil, apperrors.NewConflict("Category with this name already exists", nil)
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		category.Name = *update.Name
	}
	if update.Description != nil {
		category.Description = *update.Description
	}
	if update.ImageURL != nil {
		category.ImageURL = update.ImageURL
	}
	if update.Icon != nil {
		category.Icon = update.Icon
	}
	if update.IsActive != nil {
		category.IsActive = *update.IsActive
	}
	if update.SortOrder != nil {
		category.SortOrder = *update.SortOrder
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes an unused category. Deletion is blocked while any
// product still references it.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	inUse, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return apperrors.NewConflict(
			fmt.Sprintf("Cannot delete category. %d product(s) are using this category.", inUse),
			map[string]any{"products_count": inUse})
	}
	return s.categories.Delete(ctx, id)
}

// CategoryProducts lists active products in a category, paginated.
func (s *CatalogService) CategoryProducts(ctx context.Context, categoryID string, limit, offset int) (*domain.ProductCategory, []domain.Product, int64, error) {
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, nil, 0, err
	}
	if limit <= 0 {
		limit = 20
	}
	products, total, err := s.products.ListActiveByCategory(ctx, categoryID, limit, offset)
	if err != nil {
		return nil, nil, 0, err
	}
	return category, products, total, nil
}

// CategoryStats aggregates category totals and per-category product counts.
func (s *CatalogService) CategoryStats(ctx context.Context) (*CategoryStats, error) {
	total, active, err := s.categories.Count(ctx)
	if err != nil {
		return nil, err
	}
	perCategory, err := s.products.CountGroupedByCategory(ctx)
	if err != nil {
		return nil, err
	}
	return &CategoryStats{
		TotalCategories:  total,
		ActiveCategories: active,
		PerCategory:      perCategory,
	}, nil
}
