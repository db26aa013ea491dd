// models/user.go
package models

import (
	"time"
)

// User is a back-office account. Readers of the site are anonymous.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;not null;size:100" json:"username"`
	Email       *string   `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string    `gorm:"not null" json:"-"`
	DisplayName string    `json:"display_name"`
	IsAdmin     bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	LastLogin   time.Time `json:"last_login"`
}

func (User) TableName() string {
	return "users"
}
