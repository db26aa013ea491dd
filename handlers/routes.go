package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the public API, the reading redirect, SEO files and
// preview cards.
func RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Reading lookup
	api.Get("/readings/normalize", NormalizeReading)
	api.Post("/readings/normalize", NormalizeReadings)
	app.Get("/go/reading", RedirectReading)

	// Liturgy
	api.Get("/liturgy", ListLiturgies)
	api.Get("/liturgy/today", GetTodayLiturgy)
	api.Get("/liturgy/:day", GetLiturgy)

	// Blog
	api.Get("/posts", ListPosts)
	api.Get("/posts/:slug", GetPost)
	api.Get("/categories", ListCategories)

	// SEO
	app.Get("/sitemap.xml", Sitemap)
	app.Get("/robots.txt", Robots)
	app.Get("/og/posts/:file", PostOGImage)
	app.Get("/og/liturgy/:file", LiturgyOGImage)
}
