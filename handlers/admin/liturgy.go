package admin

import (
	"liturgia/services"
	"liturgia/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GET /api/admin/liturgy?page=...&size=...
func GetLiturgies(c *fiber.Ctx) error {
	page := utils.PageFromQuery(c)
	liturgies, total, err := liturgyService.List(page)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, 200, fiber.Map{
		"liturgies": liturgies,
		"total":     total,
		"page":      page.Number,
	})
}

// GetLiturgy returns the stored day with the lookup links editors preview.
// GET /api/admin/liturgy/:day
func GetLiturgy(c *fiber.Ctx) error {
	liturgy, err := liturgyService.GetByDay(c.Params("day"))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.JSONSuccess(c, 200, fiber.Map{"liturgy": liturgyService.View(liturgy)})
}

// PutLiturgy creates or replaces the liturgy of :day.
// PUT /api/admin/liturgy/:day
func PutLiturgy(c *fiber.Ctx) error {
	var req services.LiturgyInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, 400, "Invalid request body")
	}
	req.Day = c.Params("day")

	liturgy, err := liturgyService.Upsert(req)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	logger.Info("liturgy saved", zap.String("day", liturgy.Day), zap.Int("readings", len(liturgy.Readings)))
	return utils.JSONSuccess(c, 200, fiber.Map{"liturgy": liturgyService.View(liturgy)})
}

// DELETE /api/admin/liturgy/:day
func DeleteLiturgy(c *fiber.Ctx) error {
	day := c.Params("day")
	if err := liturgyService.Delete(day); err != nil {
		return utils.ServiceError(c, err)
	}
	logger.Info("liturgy deleted", zap.String("day", day))
	return utils.JSONSuccess(c, 200, fiber.Map{"message": "Liturgy deleted"})
}
