// handlers/liturgy.go - Daily liturgy
package handlers

import (
	"liturgia/utils"

	"github.com/gofiber/fiber/v2"
)

// GetTodayLiturgy returns the liturgy of the current day in Brasília.
// GET /api/liturgy/today
func GetTodayLiturgy(c *fiber.Ctx) error {
	return renderLiturgy(c, liturgyService.Today())
}

// GetLiturgy returns the liturgy of one day.
// GET /api/liturgy/:day
func GetLiturgy(c *fiber.Ctx) error {
	return renderLiturgy(c, c.Params("day"))
}

func renderLiturgy(c *fiber.Ctx, day string) error {
	liturgy, err := liturgyService.GetByDay(day)
	if err != nil {
		return utils.ServiceError(c, err)
	}

	view := liturgyService.View(liturgy)
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"liturgy": view,
		"json_ld": seoService.LiturgyJSONLD(view),
	})
}

// ListLiturgies lists days with a liturgy, newest first.
// GET /api/liturgy
func ListLiturgies(c *fiber.Ctx) error {
	page := utils.PageFromQuery(c)
	liturgies, total, err := liturgyService.List(page)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"liturgies": liturgies,
		"total":     total,
		"page":      page.Number,
	})
}
