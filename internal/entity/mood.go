package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MoodGreat = "great"
	MoodGood  = "good"
	MoodOkay  = "okay"
	MoodLow   = "low"
	MoodAwful = "awful"
)

type MoodEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_mood_user_date,priority:1;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Mood      string    `gorm:"size:20;not null" json:"mood"`
	Intensity int       `gorm:"not null" json:"intensity"`
	Note      *string   `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"index:idx_mood_user_date,priority:2" json:"created_at"`
}

func (m *MoodEntry) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
