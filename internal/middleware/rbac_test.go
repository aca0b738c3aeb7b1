package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name string
		user *domain.User
		want int
	}{
		{"hr passes", &domain.User{ID: 20, Role: domain.RoleHR, IsActive: true}, fiber.StatusNoContent},
		{"gm passes", &domain.User{ID: 30, Role: domain.RoleGM, IsActive: true}, fiber.StatusNoContent},
		{"admin always passes", &domain.User{ID: 1, Role: domain.RoleAdmin, IsActive: true}, fiber.StatusNoContent},
		{"staff is forbidden", &domain.User{ID: 5, Role: domain.RoleStaff, IsActive: true}, fiber.StatusForbidden},
		{"anonymous", nil, fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(zap.NewNop())})
			app.Use(func(c *fiber.Ctx) error {
				if tt.user != nil {
					c.Locals(UserContextKey, tt.user)
					c.Locals(ActorContextKey, tt.user.Actor())
				}
				return c.Next()
			})
			app.Get("/reports", RequireRole(domain.RoleHR, domain.RoleGM), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusNoContent)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/reports", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestErrorHandler_Unknown(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(zap.NewNop())})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return assert.AnError
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
