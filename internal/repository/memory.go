package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/live-commerce/internal/domain"
)

// MemoryStreamStore is the non-durable secondary store for livestream
// sessions, used while the primary store is unreachable. It is process-local
// and never reconciled back into the database.
type MemoryStreamStore struct {
	mu      sync.RWMutex
	streams []domain.Stream
}

// NewMemoryStreamStore constructs an empty store.
func NewMemoryStreamStore() *MemoryStreamStore {
	return &MemoryStreamStore{}
}

// Create appends a session with a generated id.
func (m *MemoryStreamStore) Create(_ context.Context, stream *domain.Stream) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stream.ID = uuid.NewString()
	if stream.CreatedAt.IsZero() {
		stream.CreatedAt = time.Now()
	}
	m.streams = append(m.streams, *stream)
	return nil
}

// GetByCallID returns the session or pgx.ErrNoRows.
func (m *MemoryStreamStore) GetByCallID(_ context.Context, callID string) (*domain.Stream, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.streams {
		if m.streams[i].CallID == callID {
			s := m.streams[i]
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// ListActive returns active sessions, newest first.
func (m *MemoryStreamStore) ListActive(_ context.Context) ([]domain.Stream, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	active := make([]domain.Stream, 0)
	for i := range m.streams {
		if m.streams[i].Status == domain.StreamStatusActive {
			active = append(active, m.streams[i])
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	return active, nil
}

// End marks the host's session ended, or returns pgx.ErrNoRows.
func (m *MemoryStreamStore) End(_ context.Context, callID, hostID string, endedAt time.Time) (*domain.Stream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.streams {
		if m.streams[i].CallID == callID && m.streams[i].HostID == hostID {
			m.streams[i].Status = domain.StreamStatusEnded
			m.streams[i].EndedAt = &endedAt
			s := m.streams[i]
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// MemoryProductStore is the non-durable secondary store for catalog items.
type MemoryProductStore struct {
	mu       sync.RWMutex
	products []domain.Product
}

// NewMemoryProductStore constructs an empty store.
func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{}
}

// Create appends a product with a generated id.
func (m *MemoryProductStore) Create(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.ID = uuid.NewString()
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	m.products = append(m.products, *product)
	return nil
}

// List returns products, newest first.
func (m *MemoryProductStore) List(_ context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Product, len(m.products))
	copy(out, m.products)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
