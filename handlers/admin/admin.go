// Package admin serves the JWT-protected back office API.
package admin

import (
	"liturgia/middleware"
	"liturgia/services"

	"go.uber.org/zap"
)

// Deps are the dependencies of the admin handlers.
type Deps struct {
	Auth          *middleware.Auth
	Users         *services.UserService
	Posts         *services.PostService
	Liturgy       *services.LiturgyService
	Notifications *services.NotificationService
	Cleanup       *services.CleanupService
	BaseURL       string
	Log           *zap.Logger
}

var (
	auth                *middleware.Auth
	userService         *services.UserService
	postService         *services.PostService
	liturgyService      *services.LiturgyService
	notificationService *services.NotificationService
	cleanupService      *services.CleanupService
	baseURL             string
	logger              = zap.NewNop()
)

// Init wires the admin handlers. Call it before serving.
func Init(d Deps) {
	auth = d.Auth
	userService = d.Users
	postService = d.Posts
	liturgyService = d.Liturgy
	notificationService = d.Notifications
	cleanupService = d.Cleanup
	baseURL = d.BaseURL
	if d.Log != nil {
		logger = d.Log
	}
}

// sentBy is the admin who made the request, nil when unknown.
func sentBy(userID uint, err error) *uint {
	if err != nil {
		return nil
	}
	return &userID
}
