package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/live-commerce/internal/api/dto"
	"github.com/spec-kit/live-commerce/internal/domain"
	"github.com/spec-kit/live-commerce/internal/service"
)

// SellerHandler exposes the seller dashboard endpoints. All routes sit behind
// the seller gate, so the principal always carries a fresh role.
type SellerHandler struct {
	seller *service.SellerService
	auth   *service.AuthService
}

// NewSellerHandler constructs handler.
func NewSellerHandler(sellerService *service.SellerService, authService *service.AuthService) *SellerHandler {
	return &SellerHandler{seller: sellerService, auth: authService}
}

// Stats handles GET /api/seller/stats.
func (h *SellerHandler) Stats(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	stats, err := h.seller.Stats(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"stats": dto.SellerStatsResponse{
			TotalStreams:    stats.TotalStreams,
			ActiveStreams:   stats.ActiveStreams,
			RecordedStreams: stats.RecordedStreams,
			TotalProducts:   stats.TotalProducts,
		},
		"recentStreams": dto.NewStreamResponses(stats.RecentStreams),
	})
}

// MyStreams handles GET /api/seller/my-streams.
func (h *SellerHandler) MyStreams(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	page, limit, offset := pageParams(c, 10)
	var status *domain.StreamStatus
	if val := c.Query("status"); val != "" {
		s := domain.StreamStatus(val)
		status = &s
	}

	streams, total, err := h.seller.MyStreams(c.Context(), principal.UserID, status, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"streams":    dto.NewStreamResponses(streams),
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// MyProducts handles GET /api/seller/my-products.
func (h *SellerHandler) MyProducts(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	page, limit, offset := pageParams(c, 10)
	products, total, err := h.seller.MyProducts(c.Context(), principal.UserID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"products":   dto.NewProductResponses(products),
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// UpdateProduct handles PUT /api/seller/products/:productId.
func (h *SellerHandler) UpdateProduct(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req dto.ProductUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	product, err := h.seller.UpdateProduct(c.Context(), principal.UserID, c.Params("productId"), service.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": dto.NewProductResponse(product),
	})
}

// DeleteProduct handles DELETE /api/seller/products/:productId.
func (h *SellerHandler) DeleteProduct(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	if err := h.seller.DeleteProduct(c.Context(), principal.UserID, c.Params("productId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// Recordings handles GET /api/seller/recordings.
func (h *SellerHandler) Recordings(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	recorded, summary, err := h.seller.Recordings(c.Context(), principal.UserID)
	if err != nil {
		return err
	}

	recordings := make([]fiber.Map, 0, len(recorded))
	for i := range recorded {
		rec := recorded[i].Recording
		if rec == nil {
			continue
		}
		recordings = append(recordings, fiber.Map{
			"streamId":   recorded[i].ID,
			"title":      recorded[i].Title,
			"duration":   rec.DurationSeconds,
			"fileSize":   rec.FileSizeBytes,
			"recordedAt": rec.RecordedAt,
			"fileName":   rec.FileName,
		})
	}
	return c.JSON(fiber.Map{
		"recordings": recordings,
		"summary": dto.RecordingsSummaryResponse{
			TotalRecordings: summary.TotalRecordings,
			TotalDuration:   summary.TotalDuration,
			TotalSize:       summary.TotalSize,
			AverageDuration: summary.AverageDuration,
		},
	})
}

// Profile handles GET /api/seller/profile.
func (h *SellerHandler) Profile(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.auth.GetUser(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// UpdateProfile handles PATCH /api/seller/profile.
func (h *SellerHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req dto.ProfileUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.auth.UpdateProfile(c.Context(), principal.UserID, service.ProfileUpdate{
		FullName:     req.FullName,
		ImageURL:     req.ImageURL,
		MobileNumber: req.MobileNumber,
		Address:      req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    dto.NewUserResponse(user),
	})
}
