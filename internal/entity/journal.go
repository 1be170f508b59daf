package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	JournalKindJournal   = "journal"
	JournalKindGratitude = "gratitude"
)

type JournalEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_journal_user_date,priority:1;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Kind      string    `gorm:"size:20;default:journal;not null" json:"kind"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index:idx_journal_user_date,priority:2" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (j *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
