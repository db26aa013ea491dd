// services/notification_service.go - Push dispatch with history
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"liturgia/models"
	"liturgia/push"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Sender delivers a push message. *push.Client implements it.
type Sender interface {
	Send(ctx context.Context, msg push.Message) (*push.Result, error)
	Configured() bool
}

// Broadcaster fans events out to connected admin dashboards.
type Broadcaster interface {
	Broadcast(event any)
}

// NotificationEvent is what dashboards receive after each dispatch.
type NotificationEvent struct {
	Type         string               `json:"type"`
	Notification *models.Notification `json:"notification"`
}

type NotificationInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

type NotificationService struct {
	db     *gorm.DB
	sender Sender
	hub    Broadcaster
	log    *zap.Logger
}

func NewNotificationService(db *gorm.DB, sender Sender, hub Broadcaster, log *zap.Logger) *NotificationService {
	return &NotificationService{db: db, sender: sender, hub: hub, log: log}
}

// Send dispatches a notification and records the outcome. A dispatch the
// provider refused is still recorded (status "failed") and returned along
// with the error.
func (s *NotificationService) Send(ctx context.Context, in NotificationInput, sentBy *uint) (*models.Notification, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	in.URL = strings.TrimSpace(in.URL)
	if in.Title == "" {
		return nil, invalid("title", "is required")
	}
	if in.Body == "" {
		return nil, invalid("body", "is required")
	}
	if s.sender == nil || !s.sender.Configured() {
		return nil, push.ErrNotConfigured
	}

	record := &models.Notification{
		Title:  in.Title,
		Body:   in.Body,
		URL:    in.URL,
		SentBy: sentBy,
	}

	res, sendErr := s.sender.Send(ctx, push.Message{
		Heading: in.Title,
		Content: in.Body,
		URL:     in.URL,
	})
	if sendErr != nil {
		record.Status = models.NotificationFailed
		record.Error = sendErr.Error()
		s.log.Warn("push dispatch failed", zap.String("title", in.Title), zap.Error(sendErr))
	} else {
		record.Status = models.NotificationSent
		record.ExternalID = res.ID
		record.Recipients = res.Recipients
		if len(res.Warnings) > 0 {
			record.Error = strings.Join(res.Warnings, "; ")
		}
		s.log.Info("push dispatched",
			zap.String("id", res.ID),
			zap.Int("recipients", res.Recipients))
	}

	if err := s.db.Create(record).Error; err != nil {
		return nil, errors.Join(sendErr, fmt.Errorf("recording notification: %w", err))
	}

	if s.hub != nil {
		s.hub.Broadcast(NotificationEvent{Type: "notification." + record.Status, Notification: record})
	}
	return record, sendErr
}

// NotifyPost announces a freshly published post.
func (s *NotificationService) NotifyPost(ctx context.Context, post *models.Post, baseURL string, sentBy *uint) (*models.Notification, error) {
	body := post.Excerpt
	if body == "" {
		body = post.Title
	}
	return s.Send(ctx, NotificationInput{
		Title: post.Title,
		Body:  body,
		URL:   strings.TrimSuffix(baseURL, "/") + "/blog/" + post.Slug,
	}, sentBy)
}

// List returns the dispatch history, newest first.
func (s *NotificationService) List(page Page) ([]models.Notification, int64, error) {
	page = page.normalize()

	var total int64
	if err := s.db.Model(&models.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting notifications: %w", err)
	}

	var out []models.Notification
	if err := s.db.Order("created_at DESC, id DESC").Offset(page.offset()).Limit(page.Size).Find(&out).Error; err != nil {
		return nil, 0, fmt.Errorf("listing notifications: %w", err)
	}
	return out, total, nil
}
