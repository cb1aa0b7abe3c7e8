package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/live-commerce/internal/auth"
	apperrors "github.com/spec-kit/live-commerce/pkg/util"
)

var validate = validator.New()

// parseBody decodes the JSON body into dst and runs struct validation,
// reporting per-field failures in the error details.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validate.Struct(dst); err != nil {
		details := map[string]any{}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				details[fe.Field()] = fe.Tag()
			}
		}
		return apperrors.NewValidationError("validation failed", details)
	}
	return nil
}

// requirePrincipal fetches the authenticated principal set by the auth gate.
// Routes behind the gate always have one; the error path covers miswiring.
func requirePrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthenticated("authentication required")
	}
	return principal, nil
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

// pageParams reads the shared page/limit query pair.
func pageParams(c *fiber.Ctx, defaultLimit int) (page, limit, offset int) {
	page = parseIntQuery(c, "page", 1)
	limit = parseIntQuery(c, "limit", defaultLimit)
	offset = (page - 1) * limit
	return page, limit, offset
}
