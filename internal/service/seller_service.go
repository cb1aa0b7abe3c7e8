package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/live-commerce/internal/domain"
	"github.com/spec-kit/live-commerce/internal/repository"
	apperrors "github.com/spec-kit/live-commerce/pkg/util"
)

// SellerStats summarizes a seller's streams and catalog.
type SellerStats struct {
	TotalStreams    int64
	ActiveStreams   int64
	RecordedStreams int64
	TotalProducts   int64
	RecentStreams   []domain.Stream
}

// RecordingsSummary aggregates a seller's uploaded recordings.
type RecordingsSummary struct {
	TotalRecordings int64
	TotalDuration   int64
	TotalSize       int64
	AverageDuration float64
}

// ProductUpdate carries optional product fields; nil means leave unchanged.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
}

// SellerService covers the seller dashboard: own streams, products and
// recording analytics.
type SellerService struct {
	streams  repository.StreamRepository
	products repository.ProductRepository
}

// NewSellerService builds the service.
func NewSellerService(streams repository.StreamRepository, products repository.ProductRepository) *SellerService {
	return &SellerService{streams: streams, products: products}
}

// Stats aggregates totals and the five most recent streams for the seller.
func (s *SellerService) Stats(ctx context.Context, sellerID string) (*SellerStats, error) {
	streamCounts, err := s.streams.CountByHost(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	productCount, err := s.products.CountBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	recent, err := s.streams.RecentByHost(ctx, sellerID, 5)
	if err != nil {
		return nil, err
	}
	return &SellerStats{
		TotalStreams:    streamCounts.Total,
		ActiveStreams:   streamCounts.Active,
		RecordedStreams: streamCounts.Recorded,
		TotalProducts:   productCount,
		RecentStreams:   recent,
	}, nil
}

// MyStreams lists the seller's own streams with optional status filter.
func (s *SellerService) MyStreams(ctx context.Context, sellerID string, status *domain.StreamStatus, limit, offset int) ([]domain.Stream, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.streams.ListByHost(ctx, sellerID, repository.StreamListFilters{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
}

// MyProducts lists the seller's own products.
func (s *SellerService) MyProducts(ctx context.Context, sellerID string, limit, offset int) ([]domain.Product, int64, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.products.ListBySeller(ctx, sellerID, limit, offset)
}

// UpdateProduct applies partial changes to a product the seller owns.
func (s *SellerService) UpdateProduct(ctx context.Context, sellerID, productID string, update ProductUpdate) (*domain.Product, error) {
	product, err := s.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.ImageURL != nil {
		product.ImageURL = update.ImageURL
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product the seller owns.
func (s *SellerService) DeleteProduct(ctx context.Context, sellerID, productID string) error {
	if _, err := s.ownedProduct(ctx, sellerID, productID); err != nil {
		return err
	}
	return s.products.Delete(ctx, productID)
}

// Recordings lists the seller's recorded streams with aggregate totals.
func (s *SellerService) Recordings(ctx context.Context, sellerID string) ([]domain.Stream, RecordingsSummary, error) {
	recorded, err := s.streams.ListRecorded(ctx, sellerID)
	if err != nil {
		return nil, RecordingsSummary{}, err
	}

	var summary RecordingsSummary
	for i := range recorded {
		rec := recorded[i].Recording
		if rec == nil {
			continue
		}
		summary.TotalRecordings++
		summary.TotalDuration += int64(rec.DurationSeconds)
		summary.TotalSize += rec.FileSizeBytes
	}
	if summary.TotalRecordings > 0 {
		summary.AverageDuration = float64(summary.TotalDuration) / float64(summary.TotalRecordings)
	}
	return recorded, summary, nil
}

func (s *SellerService) ownedProduct(ctx context.Context, sellerID, productID string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", nil)
		}
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, apperrors.NewForbidden("Not authorized to modify this product")
	}
	return product, nil
}
