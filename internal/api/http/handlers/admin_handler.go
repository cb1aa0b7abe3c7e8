package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/live-commerce/internal/api/dto"
	"github.com/spec-kit/live-commerce/internal/auth"
	"github.com/spec-kit/live-commerce/internal/domain"
	"github.com/spec-kit/live-commerce/internal/repository"
	"github.com/spec-kit/live-commerce/internal/service"
	apperrors "github.com/spec-kit/live-commerce/pkg/util"
)

// AdminHandler exposes user administration endpoints.
type AdminHandler struct {
	auth  *service.AuthService
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{auth: authService, admin: adminService}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.LoginAdmin(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user":  dto.NewUserResponse(user),
		"auth":  dto.AuthResponse{Token: token, ExpiresAt: exp},
		"token": token,
	})
}

// Me handles GET /api/admin/me.
func (h *AdminHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	user, err := h.admin.GetUser(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page, limit, offset := pageParams(c, 10)

	filters := repository.UserListFilters{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role := domain.Role(roleStr)
		if role.Valid() {
			filters.Role = &role
		}
	}

	users, total, err := h.admin.ListUsers(c.Context(), filters)
	if err != nil {
		return err
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{
		"users":      resp,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// GetUser handles GET /api/admin/users/:userId.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.admin.GetUser(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// AssignRole handles PUT /api/admin/assign-role/:userId.
func (h *AdminHandler) AssignRole(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	var req dto.AssignRoleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.admin.AssignRole(c.Context(), principal.UserID, c.Params("userId"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Role updated successfully",
		"user":    dto.NewUserResponse(user),
	})
}

// DeleteUser handles DELETE /api/admin/users/:userId.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	if err := h.admin.DeleteUser(c.Context(), principal.UserID, c.Params("userId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	counts, err := h.admin.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"users": dto.UserStatsResponse{
			Total:       counts.Total,
			Regular:     counts.Users,
			Sellers:     counts.Sellers,
			Admins:      counts.Admins,
			SuperAdmins: counts.SuperAdmins,
			Recent:      counts.Recent,
		},
	})
}
