// services/user_service.go - Back-office accounts
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"liturgia/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials hides whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

const minPasswordLength = 8

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Authenticate checks an admin's password and stamps LastLogin.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ? AND is_admin = ?", strings.TrimSpace(username), true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.LastLogin = time.Now()
	if err := s.db.Model(&user).Update("last_login", user.LastLogin).Error; err != nil {
		return nil, fmt.Errorf("updating last login: %w", err)
	}
	return &user, nil
}

// EnsureAdmin creates an admin or resets an existing user's password and
// grants it admin rights. created reports which one happened.
func (s *UserService) EnsureAdmin(username, password string) (user *models.User, created bool, err error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, false, invalid("username", "is required")
	}
	if len(password) < minPasswordLength {
		return nil, false, invalid("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("hashing password: %w", err)
	}

	var existing models.User
	err = s.db.Where("username = ?", username).First(&existing).Error
	switch {
	case err == nil:
		existing.Password = string(hash)
		existing.IsAdmin = true
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, false, fmt.Errorf("updating admin: %w", err)
		}
		return &existing, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		u := &models.User{
			Username:    username,
			Password:    string(hash),
			DisplayName: username,
			IsAdmin:     true,
		}
		if err := s.db.Create(u).Error; err != nil {
			return nil, false, fmt.Errorf("creating admin: %w", err)
		}
		return u, true, nil
	default:
		return nil, false, fmt.Errorf("loading user: %w", err)
	}
}
