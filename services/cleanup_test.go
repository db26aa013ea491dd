package services

import (
	"testing"
	"time"

	"liturgia/database/dbtest"
	"liturgia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCleanupPrunesOldNotifications(t *testing.T) {
	db := dbtest.New(t)
	now := time.Now().UTC()

	for _, age := range []time.Duration{0, 10 * 24 * time.Hour, 45 * 24 * time.Hour, 400 * 24 * time.Hour} {
		n := models.Notification{Title: "t", Body: "b", Status: models.NotificationSent, CreatedAt: now.Add(-age)}
		require.NoError(t, db.Create(&n).Error)
	}

	s := NewCleanupService(db, 30, zap.NewNop())
	assert.Nil(t, s.Stats().LastRun)

	deleted, err := s.Run()
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	var left int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&left).Error)
	assert.EqualValues(t, 2, left)

	stats := s.Stats()
	require.NotNil(t, stats.LastRun)
	assert.EqualValues(t, 2, stats.DeletedNotifications)
	assert.Equal(t, 30, stats.RetentionDays)
}

func TestCleanupDisabled(t *testing.T) {
	db := dbtest.New(t)
	n := models.Notification{Title: "t", Body: "b", Status: models.NotificationSent, CreatedAt: time.Now().AddDate(-5, 0, 0)}
	require.NoError(t, db.Create(&n).Error)

	deleted, err := NewCleanupService(db, 0, zap.NewNop()).Run()
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestCleanupStartStop(t *testing.T) {
	s := NewCleanupService(dbtest.New(t), 30, zap.NewNop())

	s.Start()
	s.Start()
	assert.True(t, s.Stats().Running)

	s.Stop()
	s.Stop()
	assert.False(t, s.Stats().Running)
	assert.NotNil(t, s.Stats().LastRun, "start runs once right away")
}
