// models/notification.go
package models

import "time"

const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// Notification records one push dispatch and how the provider answered.
type Notification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"not null;size:200"`
	Body       string    `json:"body" gorm:"not null;size:1000"`
	URL        string    `json:"url" gorm:"size:500"`
	Status     string    `json:"status" gorm:"not null;size:20;index"`
	ExternalID string    `json:"external_id,omitempty" gorm:"size:100"`
	Recipients int       `json:"recipients" gorm:"default:0"`
	Error      string    `json:"error,omitempty" gorm:"type:text"`
	SentBy     *uint     `json:"sent_by,omitempty" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
