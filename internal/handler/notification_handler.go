package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/2023189465/smaforms-sub001/internal/middleware"
	"github.com/2023189465/smaforms-sub001/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	unreadOnly := c.Query("unread_only") == "true"

	result, err := h.notifService.List(c.UserContext(), actor.ID, unreadOnly, getPaginationParams(c))
	if err != nil {
		return err
	}

	return ok(c, fiber.StatusOK, "", result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	count, err := h.notifService.GetUnreadCount(c.UserContext(), middleware.GetActor(c).ID)
	if err != nil {
		return err
	}

	return ok(c, fiber.StatusOK, "", fiber.Map{"count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notifService.MarkRead(c.UserContext(), id, middleware.GetActor(c).ID); err != nil {
		return err
	}

	return ok(c, fiber.StatusOK, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	n, err := h.notifService.MarkAllRead(c.UserContext(), middleware.GetActor(c).ID)
	if err != nil {
		return err
	}

	return ok(c, fiber.StatusOK, "All notifications marked as read", fiber.Map{"updated": n})
}

func (h *NotificationHandler) ClearAll(c *fiber.Ctx) error {
	n, err := h.notifService.ClearAll(c.UserContext(), middleware.GetActor(c).ID)
	if err != nil {
		return err
	}

	return ok(c, fiber.StatusOK, "Notifications cleared", fiber.Map{"deleted": n})
}
