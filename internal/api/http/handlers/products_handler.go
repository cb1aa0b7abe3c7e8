package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/live-commerce/internal/api/dto"
	"github.com/spec-kit/live-commerce/internal/domain"
	"github.com/spec-kit/live-commerce/internal/service"
)

// ProductsHandler exposes the public product catalog.
type ProductsHandler struct {
	catalog *service.CatalogService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(catalog *service.CatalogService) *ProductsHandler {
	return &ProductsHandler{catalog: catalog}
}

// Create handles POST /api/products. The caller becomes the owner.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req dto.ProductCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
	}
	created, err := h.catalog.CreateProduct(c.Context(), principal.UserID, product)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"product": dto.NewProductResponse(created),
	})
}

// List handles GET /api/products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.catalog.ListProducts(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": dto.NewProductResponses(products)})
}
