// services/seo_service.go - Sitemap, robots.txt and JSON-LD
package services

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"liturgia/models"
)

// staticPages are listed in the sitemap ahead of posts and liturgies.
var staticPages = []string{"/", "/liturgia", "/blog", "/sobre"}

// sitemapLiturgyDays bounds how many past liturgies the sitemap lists.
const sitemapLiturgyDays = 60

type SEOService struct {
	posts    *PostService
	liturgy  *LiturgyService
	siteName string
	baseURL  string
}

func NewSEOService(posts *PostService, liturgy *LiturgyService, siteName, baseURL string) *SEOService {
	return &SEOService{
		posts:    posts,
		liturgy:  liturgy,
		siteName: siteName,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Sitemap renders a sitemaps.org 0.9 document.
func (s *SEOService) Sitemap() ([]byte, error) {
	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	for _, path := range staticPages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.baseURL + path,
			ChangeFreq: "daily",
			Priority:   "0.8",
		})
	}

	posts, err := s.posts.AllPublished()
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.PostURL(p.Slug),
			LastMod:    p.UpdatedAt.UTC().Format(time.RFC3339),
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	days, err := s.liturgy.Recent(sitemapLiturgyDays)
	if err != nil {
		return nil, err
	}
	for _, l := range days {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.LiturgyURL(l.Day),
			LastMod:    l.UpdatedAt.UTC().Format(time.RFC3339),
			ChangeFreq: "monthly",
			Priority:   "0.7",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// Robots renders robots.txt.
func (s *SEOService) Robots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin\n")
	b.WriteString("Disallow: /api/admin\n")
	b.WriteString("\n")
	b.WriteString("Sitemap: " + s.baseURL + "/sitemap.xml\n")
	return b.String()
}

func (s *SEOService) PostURL(slug string) string {
	return s.baseURL + "/blog/" + slug
}

func (s *SEOService) LiturgyURL(day string) string {
	return s.baseURL + "/liturgia/" + day
}

// PostJSONLD describes a post as a schema.org BlogPosting.
func (s *SEOService) PostJSONLD(p *models.Post) map[string]any {
	doc := map[string]any{
		"@context":         "https://schema.org",
		"@type":            "BlogPosting",
		"headline":         p.Title,
		"description":      p.Excerpt,
		"url":              s.PostURL(p.Slug),
		"mainEntityOfPage": s.PostURL(p.Slug),
		"dateModified":     p.UpdatedAt.UTC().Format(time.RFC3339),
		"image":            s.baseURL + "/og/posts/" + p.Slug + ".png",
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  s.siteName,
			"url":   s.baseURL,
		},
	}
	if p.PublishedAt != nil {
		doc["datePublished"] = p.PublishedAt.UTC().Format(time.RFC3339)
	}
	if p.CoverImage != "" {
		doc["image"] = p.CoverImage
	}
	if p.Category != nil {
		doc["articleSection"] = p.Category.Name
	}
	return doc
}

// LiturgyJSONLD describes a liturgy day as a WebPage citing its readings.
func (s *SEOService) LiturgyJSONLD(v LiturgyView) map[string]any {
	citations := make([]map[string]any, 0, len(v.Readings))
	for _, r := range v.Readings {
		c := map[string]any{
			"@type": "CreativeWork",
			"name":  r.Citation,
		}
		if r.LookupURL != "" {
			c["url"] = r.LookupURL
		}
		citations = append(citations, c)
	}
	return map[string]any{
		"@context":      "https://schema.org",
		"@type":         "WebPage",
		"name":          v.Title,
		"url":           s.LiturgyURL(v.Day),
		"datePublished": v.Day,
		"inLanguage":    "pt-BR",
		"image":         s.baseURL + "/og/liturgy/" + v.Day + ".png",
		"citation":      citations,
		"isPartOf": map[string]any{
			"@type": "WebSite",
			"name":  s.siteName,
			"url":   s.baseURL,
		},
	}
}
