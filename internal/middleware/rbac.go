package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

// RequireRole lets the request through when the actor holds any of roles.
// Admin always passes.
func RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetCurrentUser(c) == nil {
			return Unauthorized("User not found")
		}

		if !GetActor(c).Allows(roles...) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}
