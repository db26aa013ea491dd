package admin

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the admin API on api (usually /api). loginLimit
// guards the login endpoint; pass nil to leave it unlimited.
func RegisterRoutes(api fiber.Router, loginLimit fiber.Handler) {
	adminGroup := api.Group("/admin")
	if loginLimit != nil {
		adminGroup.Post("/login", loginLimit, Login)
	} else {
		adminGroup.Post("/login", Login)
	}
	adminGroup.Post("/logout", Logout)

	// Protected admin routes
	adminProtected := adminGroup.Group("", auth.AdminAuthMiddleware)
	adminProtected.Get("/verify", VerifyToken)

	adminProtected.Get("/posts", GetPosts)
	adminProtected.Post("/posts", CreatePost)
	adminProtected.Get("/posts/:id", GetPost)
	adminProtected.Put("/posts/:id", UpdatePost)
	adminProtected.Delete("/posts/:id", DeletePost)

	adminProtected.Get("/categories", GetCategories)
	adminProtected.Post("/categories", CreateCategory)
	adminProtected.Put("/categories/:id", UpdateCategory)
	adminProtected.Delete("/categories/:id", DeleteCategory)

	adminProtected.Get("/liturgy", GetLiturgies)
	adminProtected.Get("/liturgy/:day", GetLiturgy)
	adminProtected.Put("/liturgy/:day", PutLiturgy)
	adminProtected.Delete("/liturgy/:day", DeleteLiturgy)

	adminProtected.Get("/notifications", GetNotifications)
	adminProtected.Post("/notifications", SendNotification)

	adminProtected.Post("/cleanup/manual", ManualCleanup)
	adminProtected.Get("/cleanup/stats", GetCleanupStats)
}
