package admin

import (
	"errors"

	"liturgia/middleware"
	"liturgia/services"
	"liturgia/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresAt int64  `json:"expires_at"`
}

// Login authenticates an admin user
// POST /api/admin/login
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, 400, "Invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return utils.JSONError(c, 400, "Username and password are required")
	}

	user, err := userService.Authenticate(req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		logger.Info("admin login rejected", zap.String("username", req.Username), zap.String("ip", c.IP()))
		return utils.JSONError(c, 401, "Invalid credentials")
	}
	if err != nil {
		return err
	}

	token, expiresAt, err := auth.IssueAdminToken(user.ID, user.Username)
	if err != nil {
		logger.Error("failed to sign admin token", zap.Error(err))
		return utils.JSONError(c, 500, "Failed to generate token")
	}

	logger.Info("admin logged in", zap.String("username", user.Username))
	return c.JSON(LoginResponse{
		Success:   true,
		Token:     token,
		Username:  user.Username,
		ExpiresAt: expiresAt,
	})
}

// VerifyToken reports who the token belongs to. The middleware already
// validated it.
// GET /api/admin/verify
func VerifyToken(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	username, err := middleware.GetUsername(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"valid":    true,
		"user_id":  userID,
		"username": username,
		"is_admin": true,
	})
}

// Logout is client-side token removal.
// POST /api/admin/logout
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}
