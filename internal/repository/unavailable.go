package repository

import (
	"context"
	"time"

	"github.com/spec-kit/live-commerce/internal/domain"
)

// UnavailableUserStore stands in for the user repository when no database is
// configured. Accounts have no memory-mode fallback, so every call reports
// the outage; auth and role-gated routes fail deliberately instead of
// dereferencing a nil interface.
type UnavailableUserStore struct{}

// NewUnavailableUserStore returns the placeholder user store.
func NewUnavailableUserStore() UserRepository { return UnavailableUserStore{} }

func (UnavailableUserStore) Create(context.Context, *domain.User) error {
	return errDatabaseUnavailable
}

func (UnavailableUserStore) Update(context.Context, *domain.User) error {
	return errDatabaseUnavailable
}

func (UnavailableUserStore) Delete(context.Context, string) error {
	return errDatabaseUnavailable
}

func (UnavailableUserStore) GetByID(context.Context, string) (*domain.User, error) {
	return nil, errDatabaseUnavailable
}

func (UnavailableUserStore) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, errDatabaseUnavailable
}

func (UnavailableUserStore) List(context.Context, UserListFilters) ([]domain.User, int64, error) {
	return nil, 0, errDatabaseUnavailable
}

func (UnavailableUserStore) CountByRole(context.Context, time.Time) (RoleCounts, error) {
	return RoleCounts{}, errDatabaseUnavailable
}

// UnavailableCategoryStore is the category counterpart of
// UnavailableUserStore.
type UnavailableCategoryStore struct{}

// NewUnavailableCategoryStore returns the placeholder category store.
func NewUnavailableCategoryStore() CategoryRepository { return UnavailableCategoryStore{} }

func (UnavailableCategoryStore) Create(context.Context, *domain.ProductCategory) error {
	return errDatabaseUnavailable
}

func (UnavailableCategoryStore) Update(context.Context, *domain.ProductCategory) error {
	return errDatabaseUnavailable
}

func (UnavailableCategoryStore) Delete(context.Context, string) error {
	return errDatabaseUnavailable
}

func (UnavailableCategoryStore) GetByID(context.Context, string) (*domain.ProductCategory, error) {
	return nil, errDatabaseUnavailable
}

func (UnavailableCategoryStore) GetByName(context.Context, string) (*domain.ProductCategory, error) {
	return nil, errDatabaseUnavailable
}

func (UnavailableCategoryStore) List(context.Context, bool) ([]domain.ProductCategory, error) {
	return nil, errDatabaseUnavailable
}

func (UnavailableCategoryStore) Count(context.Context) (int64, int64, error) {
	return 0, 0, errDatabaseUnavailable
}
