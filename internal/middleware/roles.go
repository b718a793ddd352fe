package middleware

import (
	"datablog/internal/auth"
	"datablog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// PrincipalLocal is the Fiber locals key holding the *auth.Principal.
const PrincipalLocal = "principal"

// CurrentPrincipal returns the principal stored by the authentication middleware.
func CurrentPrincipal(c *fiber.Ctx) (*auth.Principal, bool) {
	p, ok := c.Locals(PrincipalLocal).(*auth.Principal)
	return p, ok && p != nil
}

// RequireRoles rejects the request with 401 unless the principal holds one of roles.
// Must be placed after the authentication middleware.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := CurrentPrincipal(c)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Authentication required"))
		}
		if !p.HasAnyRole(roles...) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Access denied"))
		}
		return c.Next()
	}
}
