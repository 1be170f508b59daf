package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is the append-only ledger of point-earning activities.
// Rows are never updated or deleted; every aggregate is derived from it
// or incrementally maintained on GardenState.
type ActivityLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;index:idx_activity_user_date,priority:1;not null" json:"user_id"`
	User         User      `gorm:"foreignKey:UserID" json:"-"`
	ActivityType string    `gorm:"size:50;index:idx_activity_type;not null" json:"activity_type"`
	Points       int       `gorm:"not null" json:"points"`
	CreatedAt    time.Time `gorm:"index:idx_activity_user_date,priority:2" json:"created_at"`
}

// Ambient display modes for the garden scene. Cosmetic only.
const (
	AmbientForest   = "forest"
	AmbientMountain = "mountain"
	AmbientDesert   = "desert"
	AmbientOcean    = "ocean"
	AmbientSpace    = "space"
)

// GardenState is the per-user progression aggregate. It is created
// lazily on first activity and mutated only through the garden service.
type GardenState struct {
	UserID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User              User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	GrowthScore       int       `gorm:"default:0;not null" json:"growth_score"`
	Streak            int       `gorm:"default:0;not null" json:"streak"`
	TotalInteractions int       `gorm:"default:0;not null" json:"total_interactions"`
	LastActivity      time.Time `json:"last_activity"`
	AmbientMode       string    `gorm:"size:20;default:forest;not null" json:"ambient_mode"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AchievementUnlock fixes the moment an achievement code was earned.
// Codes are unlocked at most once per user and never removed.
type AchievementUnlock struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_achievement,priority:1;not null" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Code       string    `gorm:"size:50;uniqueIndex:idx_user_achievement,priority:2;not null" json:"code"`
	UnlockedAt time.Time `gorm:"autoCreateTime" json:"unlocked_at"`
}
