// models/post.go - Blog posts and categories
package models

import (
	"time"
)

type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:100"`
	Slug        string    `json:"slug" gorm:"not null;size:120;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Post struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null;size:200"`
	Slug        string     `json:"slug" gorm:"not null;size:220;uniqueIndex"`
	Excerpt     string     `json:"excerpt" gorm:"size:500"`
	Content     string     `json:"content" gorm:"type:text"`
	CoverImage  string     `json:"cover_image" gorm:"size:500"`
	Published   bool       `json:"published" gorm:"default:false;index"`
	PublishedAt *time.Time `json:"published_at"`
	CategoryID  *uint      `json:"category_id" gorm:"index"`
	Category    *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

func (Post) TableName() string {
	return "posts"
}
