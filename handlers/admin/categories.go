package admin

import (
	"liturgia/services"
	"liturgia/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GET /api/admin/categories
func GetCategories(c *fiber.Ctx) error {
	categories, err := postService.ListCategories()
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, 200, fiber.Map{"categories": categories})
}

// POST /api/admin/categories
func CreateCategory(c *fiber.Ctx) error {
	var req services.CategoryInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, 400, "Invalid request body")
	}
	category, err := postService.CreateCategory(req)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	logger.Info("category created", zap.String("slug", category.Slug))
	return utils.JSONSuccess(c, 201, fiber.Map{"category": category})
}

// PUT /api/admin/categories/:id
func UpdateCategory(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req services.CategoryInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, 400, "Invalid request body")
	}
	category, err := postService.UpdateCategory(id, req)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.JSONSuccess(c, 200, fiber.Map{"category": category})
}

// DeleteCategory answers 409 while posts still use the category.
// DELETE /api/admin/categories/:id
func DeleteCategory(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := postService.DeleteCategory(id); err != nil {
		return utils.ServiceError(c, err)
	}
	logger.Info("category deleted", zap.Uint("id", id))
	return utils.JSONSuccess(c, 200, fiber.Map{"message": "Category deleted"})
}
