package admin

import (
	"liturgia/middleware"
	"liturgia/services"
	"liturgia/utils"

	"github.com/gofiber/fiber/v2"
)

// SendNotification pushes a message to every subscriber. A dispatch the
// provider refused is still recorded and returned with the error.
// POST /api/admin/notifications
func SendNotification(c *fiber.Ctx) error {
	var req services.NotificationInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, 400, "Invalid request body")
	}

	notification, err := notificationService.Send(c.UserContext(), req, sentBy(middleware.GetUserID(c)))
	if err != nil && notification != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success":      false,
			"error":        err.Error(),
			"notification": notification,
		})
	}
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.JSONSuccess(c, 201, fiber.Map{"notification": notification})
}

// GetNotifications lists past dispatches, newest first.
// GET /api/admin/notifications?page=...&size=...
func GetNotifications(c *fiber.Ctx) error {
	page := utils.PageFromQuery(c)
	notifications, total, err := notificationService.List(page)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, 200, fiber.Map{
		"notifications": notifications,
		"total":         total,
		"page":          page.Number,
	})
}
