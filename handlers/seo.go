// handlers/seo.go - Crawler endpoints and preview cards
package handlers

import (
	"strings"

	"liturgia/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Sitemap serves /sitemap.xml.
func Sitemap(c *fiber.Ctx) error {
	body, err := seoService.Sitemap()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.Send(body)
}

// Robots serves /robots.txt.
func Robots(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(seoService.Robots())
}

// pngName strips the ".png" suffix from a route parameter. ok is false when
// the suffix is missing.
func pngName(param string) (string, bool) {
	name, ok := strings.CutSuffix(param, ".png")
	return name, ok && name != ""
}

// PostOGImage renders the preview card of a published post.
// GET /og/posts/:file (file = <slug>.png)
func PostOGImage(c *fiber.Ctx) error {
	slug, ok := pngName(c.Params("file"))
	if !ok {
		return utils.JSONError(c, fiber.StatusNotFound, "Not found")
	}

	post, err := postService.GetPublishedBySlug(slug)
	if err != nil {
		return utils.ServiceError(c, err)
	}

	subtitle := ""
	if post.Category != nil {
		subtitle = post.Category.Name
	}
	return sendPNG(c, post.Title, subtitle, "")
}

// LiturgyOGImage renders the preview card of a liturgy day.
// GET /og/liturgy/:file (file = <YYYY-MM-DD>.png)
func LiturgyOGImage(c *fiber.Ctx) error {
	day, ok := pngName(c.Params("file"))
	if !ok {
		return utils.JSONError(c, fiber.StatusNotFound, "Not found")
	}

	liturgy, err := liturgyService.GetByDay(day)
	if err != nil {
		return utils.ServiceError(c, err)
	}

	citations := make([]string, 0, len(liturgy.Readings))
	for _, r := range liturgy.Readings {
		citations = append(citations, r.Citation)
	}
	return sendPNG(c, liturgy.Title, strings.Join(citations, " | "), liturgy.Color)
}

func sendPNG(c *fiber.Ctx, title, subtitle, color string) error {
	img, err := ogService.Render(title, subtitle, color)
	if err != nil {
		logger.Error("failed to render og image", zap.String("title", title), zap.Error(err))
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.Send(img)
}
