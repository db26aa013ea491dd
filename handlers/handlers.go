// handlers/handlers.go - Public site handlers
package handlers

import (
	"liturgia/services"
	"liturgia/verseparser"

	"go.uber.org/zap"
)

// Services are the dependencies of the public handlers.
type Services struct {
	Posts         *services.PostService
	Liturgy       *services.LiturgyService
	SEO           *services.SEOService
	OGImages      *services.OGImageService
	Normalizer    *verseparser.Normalizer
	LookupVersion string
	Log           *zap.Logger
}

var (
	postService    *services.PostService
	liturgyService *services.LiturgyService
	seoService     *services.SEOService
	ogService      *services.OGImageService
	normalizer     *verseparser.Normalizer
	lookupVersion  string
	logger         = zap.NewNop()
)

// Init wires the handlers to their services. Call it before serving.
func Init(s Services) {
	postService = s.Posts
	liturgyService = s.Liturgy
	seoService = s.SEO
	ogService = s.OGImages

	normalizer = s.Normalizer
	if normalizer == nil {
		normalizer = verseparser.New(verseparser.PortugueseBooks)
	}
	lookupVersion = s.LookupVersion
	if lookupVersion == "" {
		lookupVersion = verseparser.DefaultVersion
	}
	if s.Log != nil {
		logger = s.Log
	}
}
