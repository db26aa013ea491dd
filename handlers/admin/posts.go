package admin

import (
	"liturgia/middleware"
	"liturgia/models"
	"liturgia/services"
	"liturgia/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// postRequest is a post plus whether publishing it should send a push.
type postRequest struct {
	services.PostInput
	Notify bool `json:"notify"`
}

// GetPosts lists drafts and published posts.
// GET /api/admin/posts?search=...&page=...&size=...
func GetPosts(c *fiber.Ctx) error {
	page := utils.PageFromQuery(c)
	posts, total, err := postService.List(c.Query("search"), page)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, 200, fiber.Map{
		"posts": posts,
		"total": total,
		"page":  page.Number,
	})
}

// GET /api/admin/posts/:id
func GetPost(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	post, err := postService.Get(id)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	return utils.JSONSuccess(c, 200, fiber.Map{"post": post})
}

// CreatePost stores a post. With notify=true a published post is announced.
// POST /api/admin/posts
func CreatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, 400, "Invalid request body")
	}

	post, err := postService.Create(req.PostInput)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	logger.Info("post created", zap.Uint("id", post.ID), zap.String("slug", post.Slug))

	resp := fiber.Map{"post": post}
	if req.Notify && post.Published {
		announce(c, post, resp)
	}
	return utils.JSONSuccess(c, 201, resp)
}

// UpdatePost replaces a post. With notify=true the post is announced when this
// update publishes it.
// PUT /api/admin/posts/:id
func UpdatePost(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, 400, "Invalid request body")
	}

	post, justPublished, err := postService.Update(id, req.PostInput)
	if err != nil {
		return utils.ServiceError(c, err)
	}
	logger.Info("post updated", zap.Uint("id", post.ID), zap.Bool("just_published", justPublished))

	resp := fiber.Map{"post": post}
	if req.Notify && justPublished {
		announce(c, post, resp)
	}
	return utils.JSONSuccess(c, 200, resp)
}

// DELETE /api/admin/posts/:id
func DeletePost(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := postService.Delete(id); err != nil {
		return utils.ServiceError(c, err)
	}
	logger.Info("post deleted", zap.Uint("id", id))
	return utils.JSONSuccess(c, 200, fiber.Map{"message": "Post deleted"})
}

// announce pushes post and adds the outcome to resp. A failed push does not
// fail the request; the post is already saved.
func announce(c *fiber.Ctx, post *models.Post, resp fiber.Map) {
	notification, err := notificationService.NotifyPost(c.UserContext(), post, baseURL, sentBy(middleware.GetUserID(c)))
	if notification != nil {
		resp["notification"] = notification
	}
	if err != nil {
		logger.Warn("post announcement failed", zap.String("slug", post.Slug), zap.Error(err))
		resp["notification_error"] = err.Error()
	}
}
