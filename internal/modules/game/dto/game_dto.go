package dto

import (
	"time"

	"github.com/google/uuid"
	gardenDto "sereno.app/mindgarden/internal/modules/garden/dto"
)

type CompleteSessionRequest struct {
	GameID          string `json:"game_id" binding:"required,oneof=breathing memory_match zen_puzzle sound_scape"`
	Score           int    `json:"score" binding:"min=0"`
	DurationSeconds int    `json:"duration_seconds" binding:"min=0"`
}

type SessionResponse struct {
	ID              uuid.UUID `json:"id"`
	GameID          string    `json:"game_id"`
	Score           int       `json:"score"`
	DurationSeconds int       `json:"duration_seconds"`
	CompletedAt     time.Time `json:"completed_at"`
}

type ProgressResponse struct {
	GameID     string `json:"game_id"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
}

type CompleteSessionResponse struct {
	Session  SessionResponse         `json:"session"`
	Progress ProgressResponse        `json:"progress"`
	Scoring  gardenDto.ScoringResult `json:"scoring"`
}

type SessionListResponse struct {
	Data  []SessionResponse `json:"data"`
	Total int64             `json:"total"`
}
