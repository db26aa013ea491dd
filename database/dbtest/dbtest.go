// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"testing"

	"liturgia/config"
	"liturgia/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New returns a migrated in-memory SQLite database closed when t ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file::memory:?_foreign_keys=on",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
