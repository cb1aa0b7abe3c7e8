package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/live-commerce/internal/domain"
	"github.com/spec-kit/live-commerce/internal/repository"
)

type memUserRepo struct {
	users map[string]*domain.User
}

func newMemUserRepo(users ...*domain.User) *memUserRepo {
	repo := &memUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) List(ctx context.Context, filters repository.UserListFilters) ([]domain.User, int64, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *memUserRepo) CountByRole(ctx context.Context, recentSince time.Time) (repository.RoleCounts, error) {
	counts := repository.RoleCounts{}
	for _, u := range r.users {
		counts.Total++
		switch u.Role {
		case domain.RoleUser:
			counts.Users++
		case domain.RoleSeller:
			counts.Sellers++
		case domain.RoleAdmin:
			counts.Admins++
		case domain.RoleSuperAdmin:
			counts.SuperAdmins++
		}
		if u.CreatedAt.After(recentSince) {
			counts.Recent++
		}
	}
	return counts, nil
}

type memStreamRepo struct {
	streams map[string]*domain.Stream
	nextID  int
}

func newMemStreamRepo() *memStreamRepo {
	return &memStreamRepo{streams: map[string]*domain.Stream{}}
}

func (r *memStreamRepo) Create(ctx context.Context, stream *domain.Stream) error {
	r.nextID++
	stream.ID = fmt.Sprintf("stream-%d", r.nextID)
	stream.CreatedAt = time.Now()
	r.streams[stream.CallID] = stream
	return nil
}

func (r *memStreamRepo) GetByCallID(ctx context.Context, callID string) (*domain.Stream, error) {
	stream, ok := r.streams[callID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return stream, nil
}

func (r *memStreamRepo) GetByCallIDAndHost(ctx context.Context, callID, hostID string) (*domain.Stream, error) {
	stream, ok := r.streams[callID]
	if !ok || stream.HostID != hostID {
		return nil, pgx.ErrNoRows
	}
	return stream, nil
}

func (r *memStreamRepo) ListActive(ctx context.Context) ([]domain.Stream, error) {
	var out []domain.Stream
	for _, s := range r.streams {
		if s.Status == domain.StreamStatusActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memStreamRepo) ListByHost(ctx context.Context, hostID string, filters repository.StreamListFilters) ([]domain.Stream, int64, error) {
	var out []domain.Stream
	for _, s := range r.streams {
		if s.HostID != hostID {
			continue
		}
		if filters.Status != nil && s.Status != *filters.Status {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *memStreamRepo) ListRecorded(ctx context.Context, hostID string) ([]domain.Stream, error) {
	var out []domain.Stream
	for _, s := range r.streams {
		if s.HasRecording() && (hostID == "" || s.HostID == hostID) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memStreamRepo) End(ctx context.Context, callID, hostID string, endedAt time.Time) (*domain.Stream, error) {
	stream, ok := r.streams[callID]
	if !ok || stream.HostID != hostID || stream.Status != domain.StreamStatusActive {
		return nil, pgx.ErrNoRows
	}
	stream.Status = domain.StreamStatusEnded
	stream.EndedAt = &endedAt
	return stream, nil
}

func (r *memStreamRepo) SetRecording(ctx context.Context, callID string, rec domain.Recording, endedAt time.Time) error {
	stream, ok := r.streams[callID]
	if !ok {
		return pgx.ErrNoRows
	}
	stream.Recording = &rec
	stream.Status = domain.StreamStatusEnded
	if stream.EndedAt == nil {
		stream.EndedAt = &endedAt
	}
	return nil
}

func (r *memStreamRepo) CountByHost(ctx context.Context, hostID string) (repository.HostStreamCounts, error) {
	counts := repository.HostStreamCounts{}
	for _, s := range r.streams {
		if s.HostID != hostID {
			continue
		}
		counts.Total++
		if s.Status == domain.StreamStatusActive {
			counts.Active++
		}
		if s.HasRecording() {
			counts.Recorded++
		}
	}
	return counts, nil
}

func (r *memStreamRepo) RecentByHost(ctx context.Context, hostID string, limit int) ([]domain.Stream, error) {
	streams, _, err := r.ListByHost(ctx, hostID, repository.StreamListFilters{})
	if err != nil {
		return nil, err
	}
	if len(streams) > limit {
		streams = streams[:limit]
	}
	return streams, nil
}

type memProductRepo struct {
	products map[string]*domain.Product
	nextID   int
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]*domain.Product{}}
}

func (r *memProductRepo) Create(ctx context.Context, product *domain.Product) error {
	r.nextID++
	product.ID = fmt.Sprintf("product-%d", r.nextID)
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	r.products[product.ID] = product
	return nil
}

func (r *memProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = product
	return nil
}

func (r *memProductRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return product, nil
}

func (r *memProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProductRepo) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Product, int64, error) {
	var out []domain.Product
	for _, p := range r.products {
		if p.SellerID == sellerID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memProductRepo) ListActiveByCategory(ctx context.Context, categoryID string, limit, offset int) ([]domain.Product, int64, error) {
	var out []domain.Product
	for _, p := range r.products {
		if p.IsActive && p.CategoryID != nil && *p.CategoryID == categoryID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memProductRepo) CountBySeller(ctx context.Context, sellerID string) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.SellerID == sellerID {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) CountGroupedByCategory(ctx context.Context) ([]repository.CategoryProductCount, error) {
	return nil, nil
}

type memCategoryRepo struct {
	categories map[string]*domain.ProductCategory
	nextID     int
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: map[string]*domain.ProductCategory{}}
}

func (r *memCategoryRepo) Create(ctx context.Context, category *domain.ProductCategory) error {
	r.nextID++
	category.ID = fmt.Sprintf("category-%d", r.nextID)
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	r.categories[category.ID] = category
	return nil
}

func (r *memCategoryRepo) Update(ctx context.Context, category *domain.ProductCategory) error {
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	category.UpdatedAt = time.Now()
	r.categories[category.ID] = category
	return nil
}

func (r *memCategoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.categories, id)
	return nil
}

func (r *memCategoryRepo) GetByID(ctx context.Context, id string) (*domain.ProductCategory, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return category, nil
}

func (r *memCategoryRepo) GetByName(ctx context.Context, name string) (*domain.ProductCategory, error) {
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memCategoryRepo) List(ctx context.Context, activeOnly bool) ([]domain.ProductCategory, error) {
	var out []domain.ProductCategory
	for _, c := range r.categories {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCategoryRepo) Count(ctx context.Context) (int64, int64, error) {
	var total, active int64
	for _, c := range r.categories {
		total++
		if c.IsActive {
			active++
		}
	}
	return total, active, nil
}
