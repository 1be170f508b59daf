package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ResourceArticle  = "article"
	ResourceAudio    = "audio"
	ResourceVideo    = "video"
	ResourceExercise = "exercise"
)

type Resource struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Summary   string    `gorm:"type:text" json:"summary"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	Category  string    `gorm:"size:20;index;not null" json:"category"`
	Tags      string    `gorm:"size:255" json:"tags"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
