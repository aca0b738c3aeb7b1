package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/middleware"
	"github.com/2023189465/smaforms-sub001/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	tokens, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		return err
	}

	return ok(c, fiber.StatusOK, "Login successful", tokens)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	if err := h.authService.Logout(c.UserContext(), claims); err != nil {
		return err
	}

	return ok(c, fiber.StatusOK, "Logged out", nil)
}
