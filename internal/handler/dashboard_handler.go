package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/2023189465/smaforms-sub001/internal/middleware"
	"github.com/2023189465/smaforms-sub001/internal/service/dashboard"
)

type DashboardHandler struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.dashboardService.Summary(c.UserContext(), middleware.GetActor(c))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", summary)
}
