package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

// RequireAuthenticated ensures a principal has been resolved.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireModerator ensures the caller holds the moderator permission level.
// An authenticated caller without it gets Forbidden, not Unauthorized.
func RequireModerator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.IsModerator() {
			return apperrors.NewForbidden("insufficient permissions")
		}
		return c.Next()
	}
}
