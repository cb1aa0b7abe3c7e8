package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/live-commerce/internal/domain"
	"github.com/spec-kit/live-commerce/internal/repository"
	apperrors "github.com/spec-kit/live-commerce/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Role and User are populated
// only by the role-gated policies, which read them fresh from storage.
type Principal struct {
	UserID string
	Email  string
	Role   domain.Role
	User   *domain.User
}

// Gate validates bearer tokens and enforces role policies.
type Gate struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewGate constructs the authorization gate.
func NewGate(tokens *TokenManager, users repository.UserRepository) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// credential extracts and verifies the bearer token.
func (g *Gate) credential(c *fiber.Ctx) (*Claims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, apperrors.NewUnauthenticated("no token provided")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthenticated("no token provided")
	}

	claims, err := g.tokens.ParseToken(parts[1])
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, apperrors.NewCredentialExpired("token expired")
		}
		return nil, apperrors.NewInvalidCredential("invalid token")
	}
	return claims, nil
}

// RequireAuthenticated admits any caller with a valid session token. Identity
// comes from the token claims; no role is resolved.
func (g *Gate) RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := g.credential(c)
		if err != nil {
			return err
		}
		c.Locals(principalKey, &Principal{UserID: claims.UserID, Email: claims.Email})
		return c.Next()
	}
}

// RequireSeller admits roles seller, admin and superadmin.
func (g *Gate) RequireSeller() fiber.Handler {
	return g.requireRole(domain.Role.CanSell, "Access denied. Seller privileges required.")
}

// RequireAdmin admits roles admin and superadmin.
func (g *Gate) RequireAdmin() fiber.Handler {
	return g.requireRole(domain.Role.CanAdminister, "Access denied. Admin privileges required.")
}

// RequireSuperAdmin admits the superadmin role only.
func (g *Gate) RequireSuperAdmin() fiber.Handler {
	return g.requireRole(domain.Role.IsSuperAdmin, "Access denied. Superadmin privileges required.")
}

// requireRole verifies the credential, re-fetches the user so a role change
// after token issuance is honored immediately, then applies the predicate.
// A deleted account reports the unauthenticated class, never forbidden.
func (g *Gate) requireRole(allowed func(domain.Role) bool, denied string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := g.credential(c)
		if err != nil {
			return err
		}

		user, err := g.users.GetByID(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewUnauthenticated("user not found")
			}
			return apperrors.MapError(err)
		}

		if !allowed(user.Role) {
			return apperrors.NewForbidden(denied)
		}

		c.Locals(principalKey, &Principal{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
			User:   user,
		})
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
