package dto

import (
	"time"

	"github.com/spec-kit/live-commerce/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName string  `json:"fullName" validate:"required"`
	ImageURL *string `json:"imageUrl"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdateRequest payload for partial profile updates.
type ProfileUpdateRequest struct {
	FullName     *string `json:"fullName"`
	ImageURL     *string `json:"imageUrl"`
	Email        *string `json:"email" validate:"omitempty,email"`
	MobileNumber *string `json:"mobileNumber"`
	Address      *string `json:"address"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public account representation; the password hash never
// leaves the service.
type UserResponse struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	FullName     string      `json:"fullName"`
	ImageURL     *string     `json:"imageUrl"`
	MobileNumber *string     `json:"mobileNumber,omitempty"`
	Address      *string     `json:"address,omitempty"`
	Role         domain.Role `json:"role"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// NewUserResponse maps the domain model.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		ImageURL:     user.ImageURL,
		MobileNumber: user.MobileNumber,
		Address:      user.Address,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
	}
}
