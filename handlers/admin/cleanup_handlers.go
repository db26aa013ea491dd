package admin

import (
	"liturgia/utils"

	"github.com/gofiber/fiber/v2"
)

// ManualCleanup prunes old notification history now.
// POST /api/admin/cleanup/manual
func ManualCleanup(c *fiber.Ctx) error {
	if cleanupService == nil {
		return utils.JSONError(c, 503, "Service unavailable")
	}
	deleted, err := cleanupService.Run()
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, 200, fiber.Map{
		"message": "Cleanup completed",
		"deleted": deleted,
	})
}

// GET /api/admin/cleanup/stats
func GetCleanupStats(c *fiber.Ctx) error {
	if cleanupService == nil {
		return utils.JSONError(c, 503, "Service unavailable")
	}
	return utils.JSONSuccess(c, 200, fiber.Map{"stats": cleanupService.Stats()})
}
