package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/live-commerce/internal/api/dto"
	"github.com/spec-kit/live-commerce/internal/domain"
	"github.com/spec-kit/live-commerce/internal/service"
)

// CategoriesHandler exposes product category endpoints. Reads are public,
// writes sit behind the admin gate.
type CategoriesHandler struct {
	catalog *service.CatalogService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(catalog *service.CatalogService) *CategoriesHandler {
	return &CategoriesHandler{catalog: catalog}
}

// List handles GET /api/categories. By default only active categories are
// returned; admins pass includeInactive=true for the full set.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	activeOnly := c.Query("includeInactive") != "true"
	categories, err := h.catalog.ListCategories(c.Context(), activeOnly)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": dto.NewCategoryResponses(categories)})
}

// Get handles GET /api/categories/:categoryId.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	category, err := h.catalog.GetCategory(c.Context(), c.Params("categoryId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"category": dto.NewCategoryResponse(category)})
}

// Products handles GET /api/categories/:categoryId/products.
func (h *CategoriesHandler) Products(c *fiber.Ctx) error {
	page, limit, offset := pageParams(c, 20)
	category, products, total, err := h.catalog.CategoryProducts(c.Context(), c.Params("categoryId"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"category":   dto.NewCategoryResponse(category),
		"products":   dto.NewProductResponses(products),
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// Create handles POST /api/categories. Admin gate.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	category, err := h.catalog.CreateCategory(c.Context(), &domain.ProductCategory{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Icon:        req.Icon,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Category created successfully",
		"category": dto.NewCategoryResponse(category),
	})
}

// Update handles PUT /api/categories/:categoryId. Admin gate.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	var req dto.CategoryUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	category, err := h.catalog.UpdateCategory(c.Context(), c.Params("categoryId"), service.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Icon:        req.Icon,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Category updated successfully",
		"category": dto.NewCategoryResponse(category),
	})
}

// Delete handles DELETE /api/categories/:categoryId. Admin gate.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCategory(c.Context(), c.Params("categoryId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}

// Stats handles GET /api/categories/admin/stats. Admin gate.
func (h *CategoriesHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.catalog.CategoryStats(c.Context())
	if err != nil {
		return err
	}

	perCategory := make([]dto.CategoryProductCountResponse, 0, len(stats.PerCategory))
	for _, pc := range stats.PerCategory {
		perCategory = append(perCategory, dto.CategoryProductCountResponse{
			CategoryID:   pc.CategoryID,
			CategoryName: pc.CategoryName,
			ProductCount: pc.ProductCount,
		})
	}
	return c.JSON(fiber.Map{
		"stats": fiber.Map{
			"totalCategories":     stats.TotalCategories,
			"activeCategories":    stats.ActiveCategories,
			"productsPerCategory": perCategory,
		},
	})
}
