package services

import (
	"fmt"
	"sync"
	"time"

	"liturgia/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CleanupStats describes the last cleanup run.
type CleanupStats struct {
	LastRun              *time.Time `json:"last_run"`
	DeletedNotifications int64      `json:"deleted_notifications"`
	RetentionDays        int        `json:"retention_days"`
	Running              bool       `json:"running"`
}

// CleanupService prunes old notification history in the background.
type CleanupService struct {
	db        *gorm.DB
	log       *zap.Logger
	retention time.Duration
	interval  time.Duration
	now       func() time.Time

	mu    sync.Mutex
	stats CleanupStats
	stop  chan struct{}
	done  chan struct{}
}

// NewCleanupService keeps retentionDays of history. Zero or less disables
// pruning.
func NewCleanupService(db *gorm.DB, retentionDays int, log *zap.Logger) *CleanupService {
	return &CleanupService{
		db:        db,
		log:       log,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		interval:  24 * time.Hour,
		now:       time.Now,
		stats:     CleanupStats{RetentionDays: retentionDays},
	}
}

// Start runs a cleanup now and then once per interval until Stop.
func (s *CleanupService) Start() {
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.stats.Running = true
	stop, done := s.stop, s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			if _, err := s.Run(); err != nil {
				s.log.Error("cleanup failed", zap.Error(err))
			}
			select {
			case <-stop:
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop halts the background worker and waits for it.
func (s *CleanupService) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.stats.Running = false
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Run deletes notifications older than the retention period and returns
// how many were removed.
func (s *CleanupService) Run() (int64, error) {
	if s.retention <= 0 {
		return 0, nil
	}

	now := s.now()
	cutoff := now.Add(-s.retention).UTC()
	res := s.db.Where("created_at < ?", cutoff).Delete(&models.Notification{})
	if res.Error != nil {
		return 0, fmt.Errorf("pruning notifications: %w", res.Error)
	}

	s.mu.Lock()
	s.stats.LastRun = &now
	s.stats.DeletedNotifications = res.RowsAffected
	s.mu.Unlock()

	if res.RowsAffected > 0 {
		s.log.Info("pruned notification history",
			zap.Int64("deleted", res.RowsAffected),
			zap.Time("before", cutoff))
	}
	return res.RowsAffected, nil
}

func (s *CleanupService) Stats() CleanupStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
