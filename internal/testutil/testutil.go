package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"sereno.app/mindgarden/internal/entity"
)

// OpenTestDB returns an isolated in-memory database with the full
// schema migrated. Each call gets its own database.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Profile{},
		&entity.ActivityLog{},
		&entity.GardenState{},
		&entity.AchievementUnlock{},
		&entity.MoodEntry{},
		&entity.JournalEntry{},
		&entity.GameSession{},
		&entity.GameProgress{},
		&entity.Resource{},
		&entity.Notification{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}
