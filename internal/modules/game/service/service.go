package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"sereno.app/mindgarden/internal/entity"
	"sereno.app/mindgarden/internal/modules/game/dto"
	"sereno.app/mindgarden/internal/modules/game/repository"
	gardenService "sereno.app/mindgarden/internal/modules/garden/service"
)

// Experience needed to advance one level.
const ExperiencePerLevel = 100

type GameService interface {
	CompleteSession(ctx context.Context, userID uuid.UUID, req dto.CompleteSessionRequest) (*dto.CompleteSessionResponse, error)
	GetSessions(ctx context.Context, userID uuid.UUID, limit, offset int) (*dto.SessionListResponse, error)
	GetProgress(ctx context.Context, userID uuid.UUID) ([]dto.ProgressResponse, error)
}

type gameService struct {
	repo   repository.GameRepository
	garden gardenService.GardenService
}

func NewGameService(repo repository.GameRepository, garden gardenService.GardenService) GameService {
	return &gameService{repo: repo, garden: garden}
}

func (s *gameService) CompleteSession(ctx context.Context, userID uuid.UUID, req dto.CompleteSessionRequest) (*dto.CompleteSessionResponse, error) {
	session := &entity.GameSession{
		UserID:          userID,
		GameID:          req.GameID,
		Score:           req.Score,
		DurationSeconds: req.DurationSeconds,
		CompletedAt:     time.Now(),
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	// One minute of play is one experience point, ten at minimum so a
	// short breathing round still moves the bar.
	gained := req.DurationSeconds / 60
	if gained < 10 {
		gained = 10
	}

	current, err := s.repo.GetProgress(ctx, userID, req.GameID)
	if err != nil {
		return nil, err
	}
	newExperience := current.Experience + gained
	newLevel := newExperience/ExperiencePerLevel + 1

	if err := s.repo.AddExperience(ctx, userID, req.GameID, gained, newLevel); err != nil {
		return nil, err
	}

	scoring, err := s.garden.RecordActivity(ctx, userID, gardenService.ActivityGame)
	if err != nil {
		return nil, err
	}

	return &dto.CompleteSessionResponse{
		Session: dto.SessionResponse{
			ID:              session.ID,
			GameID:          session.GameID,
			Score:           session.Score,
			DurationSeconds: session.DurationSeconds,
			CompletedAt:     session.CompletedAt,
		},
		Progress: dto.ProgressResponse{
			GameID:     req.GameID,
			Level:      newLevel,
			Experience: newExperience,
		},
		Scoring: *scoring,
	}, nil
}

func (s *gameService) GetSessions(ctx context.Context, userID uuid.UUID, limit, offset int) (*dto.SessionListResponse, error) {
	sessions, total, err := s.repo.FindSessionsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	data := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		data = append(data, dto.SessionResponse{
			ID:              session.ID,
			GameID:          session.GameID,
			Score:           session.Score,
			DurationSeconds: session.DurationSeconds,
			CompletedAt:     session.CompletedAt,
		})
	}

	return &dto.SessionListResponse{Data: data, Total: total}, nil
}

func (s *gameService) GetProgress(ctx context.Context, userID uuid.UUID) ([]dto.ProgressResponse, error) {
	progress, err := s.repo.ListProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ProgressResponse, 0, len(progress))
	for _, p := range progress {
		data = append(data, dto.ProgressResponse{
			GameID:     p.GameID,
			Level:      p.Level,
			Experience: p.Experience,
		})
	}
	return data, nil
}
