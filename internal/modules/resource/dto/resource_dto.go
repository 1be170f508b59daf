package dto

import (
	"time"

	"github.com/google/uuid"
	gardenDto "sereno.app/mindgarden/internal/modules/garden/dto"
)

type CreateResourceRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Summary  string `json:"summary"`
	URL      string `json:"url" binding:"required,url"`
	Category string `json:"category" binding:"required,oneof=article audio video exercise"`
	Tags     string `json:"tags" binding:"max=255"`
}

type ResourceResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	URL       string    `json:"url"`
	Category  string    `json:"category"`
	Tags      string    `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

type ResourceListResponse struct {
	Data  []ResourceResponse `json:"data"`
	Total int64              `json:"total"`
}

type ResourceFilter struct {
	Category string `form:"category" binding:"omitempty,oneof=article audio video exercise"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

type ViewResourceResponse struct {
	Resource ResourceResponse        `json:"resource"`
	Scoring  gardenDto.ScoringResult `json:"scoring"`
}
