package handlers

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"liturgia/database/dbtest"
	"liturgia/models"
	"liturgia/services"
	"liturgia/verseparser"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://liturgia.test"

type fixture struct {
	app     *fiber.App
	posts   *services.PostService
	liturgy *services.LiturgyService
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.New(t)
	posts := services.NewPostService(db)
	liturgy := services.NewLiturgyService(db, nil, "")
	Init(Services{
		Posts:    posts,
		Liturgy:  liturgy,
		SEO:      services.NewSEOService(posts, liturgy, "Liturgia", baseURL),
		OGImages: services.NewOGImageService("Liturgia"),
	})

	app := fiber.New()
	RegisterRoutes(app)
	return &fixture{app: app, posts: posts, liturgy: liturgy}
}

func (f *fixture) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, []byte) {
	return f.do(t, httptest.NewRequest("GET", path, nil))
}

func withQuery(path string, values url.Values) string {
	return path + "?" + values.Encode()
}

func seedLiturgy(t *testing.T, f *fixture, day string) {
	t.Helper()
	_, err := f.liturgy.Upsert(services.LiturgyInput{
		Day:   day,
		Title: "29º Domingo do Tempo Comum",
		Color: models.ColorGreen,
		Readings: []services.ReadingInput{
			{Kind: models.ReadingFirst, Citation: "Ex 17, 8-13"},
			{Kind: models.ReadingPsalm, Citation: "Sl 120(121), 1-2. 3-4", Refrain: "Do Senhor é que me vem o meu socorro"},
			{Kind: models.ReadingGospel, Citation: "Lc 18, 1-8"},
		},
	})
	require.NoError(t, err)
}

func TestNormalizeReading(t *testing.T) {
	f := setup(t)

	resp, body := f.get(t, withQuery("/api/readings/normalize", url.Values{"ref": {"Gn 22, 1-2. 9a"}}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got struct {
		Success bool   `json:"success"`
		Input   string `json:"input"`
		Query   string `json:"query"`
		URL     string `json:"url"`
		Clauses []struct {
			Chapter  int  `json:"chapter"`
			Verse    *int `json:"verse"`
			EndVerse *int `json:"end_verse"`
		} `json:"clauses"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.True(t, got.Success)
	assert.Equal(t, "Gn 22, 1-2. 9a", got.Input)
	assert.Equal(t, "Genesis 22:1-2; 22:9", got.Query)
	assert.Equal(t, verseparser.BuildLookupURL("Gn 22, 1-2. 9a", "NRSVCE"), got.URL)
	require.Len(t, got.Clauses, 2)
	assert.Equal(t, 22, got.Clauses[0].Chapter)
	require.NotNil(t, got.Clauses[0].EndVerse)
	assert.Equal(t, 2, *got.Clauses[0].EndVerse)
	require.NotNil(t, got.Clauses[1].Verse)
	assert.Equal(t, 9, *got.Clauses[1].Verse)
}

func TestNormalizeReadingVersionAndErrors(t *testing.T) {
	f := setup(t)

	resp, body := f.get(t, withQuery("/api/readings/normalize", url.Values{"ref": {"Sl 103"}, "version": {"NVI-PT"}}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	u, err := url.Parse(got.URL)
	require.NoError(t, err)
	assert.Equal(t, "Psalm 103", u.Query().Get("search"))
	assert.Equal(t, "NVI-PT", u.Query().Get("version"))

	resp, _ = f.get(t, "/api/readings/normalize")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = f.get(t, withQuery("/api/readings/normalize", url.Values{"ref": {"   "}}))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestNormalizeReadingsBatch(t *testing.T) {
	f := setup(t)

	payload := `{"refs": ["Sl 103", "", "Ex 14, 15–15, 1"]}`
	req := httptest.NewRequest("POST", "/api/readings/normalize", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, body := f.do(t, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got struct {
		Results []ReadingResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Results, 3)
	assert.Equal(t, "Psalm 103", got.Results[0].Query)
	assert.Equal(t, "", got.Results[1].Query)
	assert.Equal(t, "", got.Results[1].URL)
	assert.Empty(t, got.Results[1].Clauses)
	assert.Equal(t, "Exodus 14:15-15:1", got.Results[2].Query)
	require.Len(t, got.Results[2].Clauses, 1)
	assert.Equal(t, verseparser.KindCrossChapter, got.Results[2].Clauses[0].Kind())

	for _, payload := range []string{`{"refs": []}`, `not json`} {
		req := httptest.NewRequest("POST", "/api/readings/normalize", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := f.do(t, req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, payload)
	}
}

func TestRedirectReading(t *testing.T) {
	f := setup(t)

	resp, _ := f.get(t, withQuery("/go/reading", url.Values{"ref": {"Lc 24, 1-12"}}))
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, verseparser.BuildLookupURL("Lc 24, 1-12", ""), resp.Header.Get("Location"))

	resp, _ = f.get(t, "/go/reading?ref=")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetLiturgy(t *testing.T) {
	f := setup(t)
	seedLiturgy(t, f, "2025-10-19")

	resp, body := f.get(t, "/api/liturgy/2025-10-19")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got struct {
		Liturgy services.LiturgyView `json:"liturgy"`
		JSONLD  map[string]any       `json:"json_ld"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Liturgy.Readings, 3)
	assert.Equal(t, "Exodus 17:8-13", got.Liturgy.Readings[0].Query)
	assert.Equal(t, "Psalm 120:1-2; 120:3-4", got.Liturgy.Readings[1].Query)
	assert.Equal(t, "Luke 18:1-8", got.Liturgy.Readings[2].Query)
	assert.NotEmpty(t, got.Liturgy.Readings[2].LookupURL)
	assert.Equal(t, "WebPage", got.JSONLD["@type"])
	assert.Equal(t, baseURL+"/liturgia/2025-10-19", got.JSONLD["url"])

	resp, _ = f.get(t, "/api/liturgy/2025-01-01")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = f.get(t, "/api/liturgy/yesterday")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetTodayLiturgy(t *testing.T) {
	f := setup(t)

	resp, _ := f.get(t, "/api/liturgy/today")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	seedLiturgy(t, f, f.liturgy.Today())
	resp, _ = f.get(t, "/api/liturgy/today")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := f.get(t, "/api/liturgy")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list struct {
		Liturgies []map[string]any `json:"liturgies"`
		Total     int64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	assert.EqualValues(t, 1, list.Total)
	require.Len(t, list.Liturgies, 1)
	assert.Equal(t, f.liturgy.Today(), list.Liturgies[0]["day"])
	assert.NotContains(t, list.Liturgies[0], "readings", "list rows carry no readings")
}

func TestPosts(t *testing.T) {
	f := setup(t)

	category, err := f.posts.CreateCategory(services.CategoryInput{Name: "Reflexões"})
	require.NoError(t, err)
	_, err = f.posts.Create(services.PostInput{
		Title:      "Páscoa do Senhor",
		Excerpt:    "Cristo ressuscitou",
		Published:  true,
		CategoryID: &category.ID,
	})
	require.NoError(t, err)
	_, err = f.posts.Create(services.PostInput{Title: "Rascunho"})
	require.NoError(t, err)

	resp, body := f.get(t, "/api/posts")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list struct {
		Posts []models.Post `json:"posts"`
		Total int64         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	assert.EqualValues(t, 1, list.Total)
	require.Len(t, list.Posts, 1)
	assert.Equal(t, "pascoa-do-senhor", list.Posts[0].Slug)

	resp, body = f.get(t, "/api/posts?category=reflexoes")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &list))
	assert.EqualValues(t, 1, list.Total)

	resp, body = f.get(t, "/api/posts?category=outra")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &list))
	assert.EqualValues(t, 0, list.Total)

	resp, body = f.get(t, "/api/posts/pascoa-do-senhor")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var one struct {
		Post   models.Post    `json:"post"`
		JSONLD map[string]any `json:"json_ld"`
	}
	require.NoError(t, json.Unmarshal(body, &one))
	assert.Equal(t, "Páscoa do Senhor", one.Post.Title)
	assert.Equal(t, "BlogPosting", one.JSONLD["@type"])
	assert.Equal(t, "Reflexões", one.JSONLD["articleSection"])

	resp, _ = f.get(t, "/api/posts/rascunho")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = f.get(t, "/api/categories")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"slug":"reflexoes"`)
}

func TestSitemapAndRobots(t *testing.T) {
	f := setup(t)
	seedLiturgy(t, f, "2025-10-19")
	_, err := f.posts.Create(services.PostInput{Title: "Advento", Published: true})
	require.NoError(t, err)

	resp, body := f.get(t, "/sitemap.xml")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/xml")
	assert.Contains(t, string(body), "<loc>"+baseURL+"/blog/advento</loc>")
	assert.Contains(t, string(body), "<loc>"+baseURL+"/liturgia/2025-10-19</loc>")

	resp, body = f.get(t, "/robots.txt")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Disallow: /api/admin\n")
	assert.Contains(t, string(body), "Sitemap: "+baseURL+"/sitemap.xml")
}

func TestOGImages(t *testing.T) {
	f := setup(t)
	seedLiturgy(t, f, "2025-10-19")
	_, err := f.posts.Create(services.PostInput{Title: "Advento", Published: true})
	require.NoError(t, err)

	for _, path := range []string{"/og/posts/advento.png", "/og/liturgy/2025-10-19.png"} {
		t.Run(path, func(t *testing.T) {
			resp, body := f.get(t, path)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

			cfg, err := png.DecodeConfig(bytes.NewReader(body))
			require.NoError(t, err)
			assert.Equal(t, services.OGWidth, cfg.Width)
			assert.Equal(t, services.OGHeight, cfg.Height)
		})
	}

	for _, path := range []string{"/og/posts/advento", "/og/posts/missing.png", "/og/liturgy/2025-01-01.png"} {
		resp, _ := f.get(t, path)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
	}
}
