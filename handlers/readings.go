// handlers/readings.go - Scripture reference lookup
package handlers

import (
	"strings"

	"liturgia/utils"
	"liturgia/verseparser"

	"github.com/gofiber/fiber/v2"
)

// maxBatchRefs bounds POST /api/readings/normalize.
const maxBatchRefs = 50

// ReadingResult is one normalized citation.
type ReadingResult struct {
	Input   string                `json:"input"`
	Query   string                `json:"query"`
	URL     string                `json:"url"`
	Clauses []*verseparser.Clause `json:"clauses"`
}

func normalizeOne(ref, version string) ReadingResult {
	res := ReadingResult{
		Input:   ref,
		Query:   normalizer.Normalize(ref),
		URL:     normalizer.BuildLookupURL(ref, version),
		Clauses: []*verseparser.Clause{},
	}
	if res.Query != "" {
		if q, err := verseparser.ParseQuery(res.Query); err == nil && q.Clauses != nil {
			res.Clauses = q.Clauses
		}
	}
	return res
}

func versionParam(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return lookupVersion
	}
	return v
}

// NormalizeReading converts one citation.
// GET /api/readings/normalize?ref=...&version=...
func NormalizeReading(c *fiber.Ctx) error {
	ref := c.Query("ref")
	if strings.TrimSpace(ref) == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "ref is required")
	}

	res := normalizeOne(ref, versionParam(c.Query("version")))
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"input":   res.Input,
		"query":   res.Query,
		"url":     res.URL,
		"clauses": res.Clauses,
	})
}

// NormalizeReadings converts a batch of citations in order.
// POST /api/readings/normalize
func NormalizeReadings(c *fiber.Ctx) error {
	var req struct {
		Refs    []string `json:"refs"`
		Version string   `json:"version"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.Refs) == 0 {
		return utils.JSONError(c, fiber.StatusBadRequest, "refs is required")
	}
	if len(req.Refs) > maxBatchRefs {
		return utils.JSONError(c, fiber.StatusBadRequest, "too many refs")
	}

	version := versionParam(req.Version)
	results := make([]ReadingResult, 0, len(req.Refs))
	for _, ref := range req.Refs {
		results = append(results, normalizeOne(ref, version))
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"results": results})
}

// RedirectReading sends the reader straight to the passage.
// GET /go/reading?ref=...&version=...
func RedirectReading(c *fiber.Ctx) error {
	url := normalizer.BuildLookupURL(c.Query("ref"), versionParam(c.Query("version")))
	if url == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "ref is required")
	}
	return c.Redirect(url, fiber.StatusFound)
}
