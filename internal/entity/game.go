package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fixed set of therapeutic mini-games.
const (
	GameBreathing   = "breathing"
	GameMemoryMatch = "memory_match"
	GameZenPuzzle   = "zen_puzzle"
	GameSoundScape  = "sound_scape"
)

type GameSession struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;index:idx_game_user_date,priority:1;not null" json:"user_id"`
	User            User      `gorm:"foreignKey:UserID" json:"-"`
	GameID          string    `gorm:"size:50;not null" json:"game_id"`
	Score           int       `gorm:"default:0" json:"score"`
	DurationSeconds int       `gorm:"default:0" json:"duration_seconds"`
	CompletedAt     time.Time `gorm:"index:idx_game_user_date,priority:2" json:"completed_at"`
}

func (g *GameSession) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// GameProgress keeps one typed row per (user, game) instead of a
// free-form JSON map, so level and experience have a fixed shape.
type GameProgress struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	GameID     string    `gorm:"size:50;primaryKey" json:"game_id"`
	Level      int       `gorm:"default:1;not null" json:"level"`
	Experience int       `gorm:"default:0;not null" json:"experience"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
