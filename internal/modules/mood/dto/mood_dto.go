package dto

import (
	"time"

	"github.com/google/uuid"
	gardenDto "sereno.app/mindgarden/internal/modules/garden/dto"
)

type CreateMoodRequest struct {
	Mood      string  `json:"mood" binding:"required,oneof=great good okay low awful"`
	Intensity int     `json:"intensity" binding:"required,min=1,max=5"`
	Note      *string `json:"note,omitempty" binding:"omitempty,max=1000"`
}

type MoodResponse struct {
	ID        uuid.UUID `json:"id"`
	Mood      string    `json:"mood"`
	Intensity int       `json:"intensity"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateMoodResponse struct {
	Entry   MoodResponse          `json:"entry"`
	Scoring gardenDto.ScoringResult `json:"scoring"`
}

type MoodListResponse struct {
	Data  []MoodResponse `json:"data"`
	Total int64          `json:"total"`
}

// DailyMoodSummary is one day of the trailing week: the dominant mood
// and how many entries were logged.
type DailyMoodSummary struct {
	Date    string `json:"date"`
	Mood    string `json:"mood,omitempty"`
	Entries int    `json:"entries"`
}

type MoodSummaryResponse struct {
	Days []DailyMoodSummary `json:"days"`
}
