package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/live-commerce/internal/domain"
	apperrors "github.com/spec-kit/live-commerce/pkg/util"
)

// errDatabaseUnavailable is returned by failover operations that have no
// in-memory degraded path when the primary store is unreachable.
var errDatabaseUnavailable = errors.New("database unavailable")

// fallbackWorthy reports whether an error from the primary store should route
// the call to the memory store. A definitive "no rows" answer is authoritative
// and must not fall back.
func fallbackWorthy(err error) bool {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return false
	}
	var domainErr *apperrors.DomainError
	return !errors.As(err, &domainErr)
}

// StreamFailover routes stream operations to the primary store, degrading to
// the process-local memory store for the subset of operations that must stay
// available during a database outage (create, list-active, get, end).
type StreamFailover struct {
	primary StreamRepository
	memory  *MemoryStreamStore
	logger  *zap.Logger
}

// NewStreamFailover wires the failover router. primary may be nil when no
// database is configured; every routed call then uses the memory store.
func NewStreamFailover(primary StreamRepository, memory *MemoryStreamStore, logger *zap.Logger) *StreamFailover {
	return &StreamFailover{primary: primary, memory: memory, logger: logger}
}

func (f *StreamFailover) degraded(op string, err error) {
	f.logger.Warn("primary store unreachable, using in-memory fallback",
		zap.String("op", op), zap.Error(err))
}

func (f *StreamFailover) Create(ctx context.Context, stream *domain.Stream) error {
	if f.primary != nil {
		err := f.primary.Create(ctx, stream)
		if !fallbackWorthy(err) {
			return err
		}
		f.degraded("stream.create", err)
	}
	return f.memory.Create(ctx, stream)
}

func (f *StreamFailover) GetByCallID(ctx context.Context, callID string) (*domain.Stream, error) {
	if f.primary != nil {
		stream, err := f.primary.GetByCallID(ctx, callID)
		if !fallbackWorthy(err) {
			return stream, err
		}
		f.degraded("stream.get", err)
	}
	return f.memory.GetByCallID(ctx, callID)
}

func (f *StreamFailover) ListActive(ctx context.Context) ([]domain.Stream, error) {
	if f.primary != nil {
		streams, err := f.primary.ListActive(ctx)
		if !fallbackWorthy(err) {
			return streams, err
		}
		f.degraded("stream.list_active", err)
	}
	return f.memory.ListActive(ctx)
}

func (f *StreamFailover) End(ctx context.Context, callID, hostID string, endedAt time.Time) (*domain.Stream, error) {
	if f.primary != nil {
		stream, err := f.primary.End(ctx, callID, hostID, endedAt)
		if !fallbackWorthy(err) {
			return stream, err
		}
		f.degraded("stream.end", err)
	}
	return f.memory.End(ctx, callID, hostID, endedAt)
}

// The remaining operations have no degraded path; recordings and seller
// dashboards require the durable store.

func (f *StreamFailover) GetByCallIDAndHost(ctx context.Context, callID, hostID string) (*domain.Stream, error) {
	if f.primary == nil {
		return nil, errDatabaseUnavailable
	}
	return f.primary.GetByCallIDAndHost(ctx, callID, hostID)
}

func (f *StreamFailover) ListByHost(ctx context.Context, hostID string, filters StreamListFilters) ([]domain.Stream, int64, error) {
	if f.primary == nil {
		return nil, 0, errDatabaseUnavailable
	}
	return f.primary.ListByHost(ctx, hostID, filters)
}

func (f *StreamFailover) ListRecorded(ctx context.Context, hostID string) ([]domain.Stream, error) {
	if f.primary == nil {
		return nil, errDatabaseUnavailable
	}
	return f.primary.ListRecorded(ctx, hostID)
}

func (f *StreamFailover) SetRecording(ctx context.Context, callID string, rec domain.Recording, endedAt time.Time) error {
	if f.primary == nil {
		return errDatabaseUnavailable
	}
	return f.primary.SetRecording(ctx, callID, rec, endedAt)
}

func (f *StreamFailover) CountByHost(ctx context.Context, hostID string) (HostStreamCounts, error) {
	if f.primary == nil {
		return HostStreamCounts{}, errDatabaseUnavailable
	}
	return f.primary.CountByHost(ctx, hostID)
}

func (f *StreamFailover) RecentByHost(ctx context.Context, hostID string, limit int) ([]domain.Stream, error) {
	if f.primary == nil {
		return nil, errDatabaseUnavailable
	}
	return f.primary.RecentByHost(ctx, hostID, limit)
}

var _ StreamRepository = (*StreamFailover)(nil)

// ProductFailover routes catalog operations to the primary store, degrading
// to the memory store for create and list.
type ProductFailover struct {
	primary ProductRepository
	memory  *MemoryProductStore
	logger  *zap.Logger
}

// NewProductFailover wires the failover router; primary may be nil.
func NewProductFailover(primary ProductRepository, memory *MemoryProductStore, logger *zap.Logger) *ProductFailover {
	return &ProductFailover{primary: primary, memory: memory, logger: logger}
}

func (f *ProductFailover) degraded(op string, err error) {
	f.logger.Warn("primary store unreachable, using in-memory fallback",
		zap.String("op", op), zap.Error(err))
}

func (f *ProductFailover) Create(ctx context.Context, product *domain.Product) error {
	if f.primary != nil {
		err := f.primary.Create(ctx, product)
		if !fallbackWorthy(err) {
			return err
		}
		f.degraded("product.create", err)
	}
	return f.memory.Create(ctx, product)
}

func (f *ProductFailover) List(ctx context.Context) ([]domain.Product, error) {
	if f.primary != nil {
		products, err := f.primary.List(ctx)
		if !fallbackWorthy(err) {
			return products, err
		}
		f.degraded("product.list", err)
	}
	return f.memory.List(ctx)
}

func (f *ProductFailover) Update(ctx context.Context, product *domain.Product) error {
	if f.primary == nil {
		return errDatabaseUnavailable
	}
	return f.primary.Update(ctx, product)
}

func (f *ProductFailover) Delete(ctx context.Context, id string) error {
	if f.primary == nil {
		return errDatabaseUnavailable
	}
	return f.primary.Delete(ctx, id)
}

func (f *ProductFailover) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if f.primary == nil {
		return nil, errDatabaseUnavailable
	}
	return f.primary.GetByID(ctx, id)
}

func (f *ProductFailover) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Product, int64, error) {
	if f.primary == nil {
		return nil, 0, errDatabaseUnavailable
	}
	return f.primary.ListBySeller(ctx, sellerID, limit, offset)
}

func (f *ProductFailover) ListActiveByCategory(ctx context.Context, categoryID string, limit, offset int) ([]domain.Product, int64, error) {
	if f.primary == nil {
		return nil, 0, errDatabaseUnavailable
	}
	return f.primary.ListActiveByCategory(ctx, categoryID, limit, offset)
}

func (f *ProductFailover) CountBySeller(ctx context.Context, sellerID string) (int64, error) {
	if f.primary == nil {
		return 0, errDatabaseUnavailable
	}
	return f.primary.CountBySeller(ctx, sellerID)
}

func (f *ProductFailover) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	if f.primary == nil {
		return 0, errDatabaseUnavailable
	}
	return f.primary.CountByCategory(ctx, categoryID)
}

func (f *ProductFailover) CountGroupedByCategory(ctx context.Context) ([]CategoryProductCount, error) {
	if f.primary == nil {
		return nil, errDatabaseUnavailable
	}
	return f.primary.CountGroupedByCategory(ctx)
}

var _ ProductRepository = (*ProductFailover)(nil)
