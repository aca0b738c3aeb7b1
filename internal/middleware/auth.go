package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/service/auth"
)

const (
	UserContextKey   = "user"
	ActorContextKey  = "actor"
	ClaimsContextKey = "claims"
)

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authService.ValidateAccessToken(c.UserContext(), parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		user, err := authService.GetUserByID(c.UserContext(), claims.UserID)
		if err != nil {
			return err
		}
		if user == nil || !user.IsActive {
			return Unauthorized("User not found")
		}

		c.Locals(UserContextKey, user)
		c.Locals(ActorContextKey, user.Actor())
		c.Locals(ClaimsContextKey, claims)

		return c.Next()
	}
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// GetActor returns the authenticated actor. The zero Actor holds no role
// and fails every permission check.
func GetActor(c *fiber.Ctx) domain.Actor {
	actor, _ := c.Locals(ActorContextKey).(domain.Actor)
	return actor
}

func GetClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(ClaimsContextKey).(*auth.Claims)
	return claims
}
