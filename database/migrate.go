// database/migrate.go - Database Migration Runner
package database

import (
	"fmt"

	"liturgia/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunMigrations creates or updates every table the site uses.
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	log.Debug("running database migrations")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Liturgy{},
		&models.Reading{},
		&models.Notification{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	createIndexes(db, log)

	log.Info("migrations completed")
	return nil
}

// createIndexes adds the composite indexes gorm tags cannot express.
func createIndexes(db *gorm.DB, log *zap.Logger) {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_posts_published_at ON posts(published, published_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_readings_liturgy_position ON readings(liturgy_id, position)",
		"CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at DESC)",
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			log.Warn("failed to create index", zap.String("sql", stmt), zap.Error(err))
		}
	}
}
