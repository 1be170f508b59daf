package dto

import (
	"time"

	"github.com/google/uuid"
	gardenDto "sereno.app/mindgarden/internal/modules/garden/dto"
)

type CreateJournalRequest struct {
	Kind    string `json:"kind" binding:"omitempty,oneof=journal gratitude"`
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}

type UpdateJournalRequest struct {
	Title   *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Content *string `json:"content,omitempty"`
}

type JournalResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateJournalResponse struct {
	Entry   JournalResponse         `json:"entry"`
	Scoring gardenDto.ScoringResult `json:"scoring"`
}

type JournalListResponse struct {
	Data  []JournalResponse `json:"data"`
	Total int64             `json:"total"`
}
