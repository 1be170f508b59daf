package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
	"sereno.app/mindgarden/internal/entity"
	gardenService "sereno.app/mindgarden/internal/modules/garden/service"
	"sereno.app/mindgarden/internal/modules/journal/dto"
	"sereno.app/mindgarden/internal/modules/journal/repository"
	"sereno.app/mindgarden/pkg/apperror"
)

type JournalService interface {
	CreateJournal(ctx context.Context, userID uuid.UUID, req dto.CreateJournalRequest) (*dto.CreateJournalResponse, error)
	GetJournal(ctx context.Context, userID, id uuid.UUID) (*dto.JournalResponse, error)
	GetJournals(ctx context.Context, userID uuid.UUID, limit, offset int) (*dto.JournalListResponse, error)
	UpdateJournal(ctx context.Context, userID, id uuid.UUID, req dto.UpdateJournalRequest) (*dto.JournalResponse, error)
	DeleteJournal(ctx context.Context, userID, id uuid.UUID) error
}

type journalService struct {
	repo      repository.JournalRepository
	garden    gardenService.GardenService
	sanitizer *bluemonday.Policy
}

func NewJournalService(repo repository.JournalRepository, garden gardenService.GardenService) JournalService {
	return &journalService{
		repo:      repo,
		garden:    garden,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (s *journalService) CreateJournal(ctx context.Context, userID uuid.UUID, req dto.CreateJournalRequest) (*dto.CreateJournalResponse, error) {
	kind := req.Kind
	if kind == "" {
		kind = entity.JournalKindJournal
	}

	entry := &entity.JournalEntry{
		UserID:    userID,
		Kind:      kind,
		Title:     req.Title,
		Content:   s.sanitizer.Sanitize(req.Content),
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	activityType := gardenService.ActivityJournal
	if kind == entity.JournalKindGratitude {
		activityType = gardenService.ActivityGratitude
	}

	scoring, err := s.garden.RecordActivity(ctx, userID, activityType)
	if err != nil {
		return nil, err
	}

	return &dto.CreateJournalResponse{
		Entry:   toJournalResponse(entry),
		Scoring: *scoring,
	}, nil
}

func (s *journalService) GetJournal(ctx context.Context, userID, id uuid.UUID) (*dto.JournalResponse, error) {
	entry, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := toJournalResponse(entry)
	return &resp, nil
}

func (s *journalService) GetJournals(ctx context.Context, userID uuid.UUID, limit, offset int) (*dto.JournalListResponse, error) {
	entries, total, err := s.repo.FindByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	data := make([]dto.JournalResponse, 0, len(entries))
	for i := range entries {
		data = append(data, toJournalResponse(&entries[i]))
	}

	return &dto.JournalListResponse{Data: data, Total: total}, nil
}

func (s *journalService) UpdateJournal(ctx context.Context, userID, id uuid.UUID, req dto.UpdateJournalRequest) (*dto.JournalResponse, error) {
	entry, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.Content != nil {
		entry.Content = s.sanitizer.Sanitize(*req.Content)
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	resp := toJournalResponse(entry)
	return &resp, nil
}

func (s *journalService) DeleteJournal(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// findOwned loads the entry and enforces that journals are private to
// their author.
func (s *journalService) findOwned(ctx context.Context, userID, id uuid.UUID) (*entity.JournalEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return entry, nil
}

func toJournalResponse(entry *entity.JournalEntry) dto.JournalResponse {
	return dto.JournalResponse{
		ID:        entry.ID,
		Kind:      entry.Kind,
		Title:     entry.Title,
		Content:   entry.Content,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}
