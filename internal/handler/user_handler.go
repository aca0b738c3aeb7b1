package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/middleware"
	"github.com/2023189465/smaforms-sub001/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	u := middleware.GetCurrentUser(c)
	if u == nil {
		return middleware.Unauthorized("User not found")
	}
	return ok(c, fiber.StatusOK, "", u)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateUserInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	created, err := h.userService.Create(c.UserContext(), middleware.GetActor(c), input)
	if err != nil {
		return err
	}

	return ok(c, fiber.StatusCreated, "User created", created)
}

func (h *UserHandler) ListByRole(c *fiber.Ctx) error {
	users, err := h.userService.ListByRole(c.UserContext(), middleware.GetActor(c), c.Params("role"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", users)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	result, err := h.userService.List(c.UserContext(), middleware.GetActor(c), getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", result)
}
