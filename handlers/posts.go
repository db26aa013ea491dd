// handlers/posts.go - Public blog
package handlers

import (
	"liturgia/utils"

	"github.com/gofiber/fiber/v2"
)

// ListPosts returns published posts.
// GET /api/posts?category=...&page=...&size=...
func ListPosts(c *fiber.Ctx) error {
	page := utils.PageFromQuery(c)
	posts, total, err := postService.ListPublished(c.Query("category"), page)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"posts": posts,
		"total": total,
		"page":  page.Number,
	})
}

// GetPost returns one published post with its structured data.
// GET /api/posts/:slug
func GetPost(c *fiber.Ctx) error {
	post, err := postService.GetPublishedBySlug(c.Params("slug"))
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"post":    post,
		"json_ld": seoService.PostJSONLD(post),
	})
}

// ListCategories returns all categories.
// GET /api/categories
func ListCategories(c *fiber.Ctx) error {
	categories, err := postService.ListCategories()
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"categories": categories})
}
