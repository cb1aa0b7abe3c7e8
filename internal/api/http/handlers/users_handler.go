package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/live-commerce/internal/api/dto"
	"github.com/spec-kit/live-commerce/internal/auth"
	"github.com/spec-kit/live-commerce/internal/service"
	apperrors "github.com/spec-kit/live-commerce/pkg/util"
)

// UsersHandler exposes auth endpoints for accounts.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Register(c.Context(), req.Email, req.Password, req.FullName, req.ImageURL)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user":  dto.NewUserResponse(user),
		"auth":  dto.AuthResponse{Token: token, ExpiresAt: exp},
		"token": token,
	})
}

// Login handles POST /api/auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user":  dto.NewUserResponse(user),
		"auth":  dto.AuthResponse{Token: token, ExpiresAt: exp},
		"token": token,
	})
}

// Me handles GET /api/auth/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	user, err := h.auth.GetUser(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// UpdateMe handles PATCH /api/auth/me.
func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	var req dto.ProfileUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.auth.UpdateProfile(c.Context(), principal.UserID, service.ProfileUpdate{
		FullName:     req.FullName,
		ImageURL:     req.ImageURL,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Address:      req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Logout handles POST /api/auth/logout. Stateless tokens make this a
// client-side concern; the endpoint acknowledges for symmetry.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	if principal != nil {
		_ = h.auth.Logout(c.Context(), principal.UserID)
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
