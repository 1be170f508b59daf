package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"sereno.app/mindgarden/internal/entity"
	gardenService "sereno.app/mindgarden/internal/modules/garden/service"
	"sereno.app/mindgarden/internal/modules/mood/dto"
	"sereno.app/mindgarden/internal/modules/mood/repository"
)

type MoodService interface {
	CreateMood(ctx context.Context, userID uuid.UUID, req dto.CreateMoodRequest) (*dto.CreateMoodResponse, error)
	GetMoods(ctx context.Context, userID uuid.UUID, limit, offset int) (*dto.MoodListResponse, error)
	GetMoodsSince(ctx context.Context, userID uuid.UUID, since time.Time) (*dto.MoodListResponse, error)
	GetWeeklySummary(ctx context.Context, userID uuid.UUID) (*dto.MoodSummaryResponse, error)
}

type moodService struct {
	repo   repository.MoodRepository
	garden gardenService.GardenService
}

func NewMoodService(repo repository.MoodRepository, garden gardenService.GardenService) MoodService {
	return &moodService{repo: repo, garden: garden}
}

func (s *moodService) CreateMood(ctx context.Context, userID uuid.UUID, req dto.CreateMoodRequest) (*dto.CreateMoodResponse, error) {
	entry := &entity.MoodEntry{
		UserID:    userID,
		Mood:      req.Mood,
		Intensity: req.Intensity,
		Note:      req.Note,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	// The mood entry itself is always stored; only the points are
	// subject to the daily cap.
	scoring, err := s.garden.RecordActivity(ctx, userID, gardenService.ActivityMood)
	if err != nil {
		return nil, err
	}

	return &dto.CreateMoodResponse{
		Entry:   toMoodResponse(entry),
		Scoring: *scoring,
	}, nil
}

func (s *moodService) GetMoods(ctx context.Context, userID uuid.UUID, limit, offset int) (*dto.MoodListResponse, error) {
	entries, total, err := s.repo.FindByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	data := make([]dto.MoodResponse, 0, len(entries))
	for i := range entries {
		data = append(data, toMoodResponse(&entries[i]))
	}

	return &dto.MoodListResponse{Data: data, Total: total}, nil
}

func (s *moodService) GetMoodsSince(ctx context.Context, userID uuid.UUID, since time.Time) (*dto.MoodListResponse, error) {
	entries, err := s.repo.FindByUserSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	data := make([]dto.MoodResponse, 0, len(entries))
	for i := range entries {
		data = append(data, toMoodResponse(&entries[i]))
	}

	return &dto.MoodListResponse{Data: data, Total: int64(len(data))}, nil
}

func (s *moodService) GetWeeklySummary(ctx context.Context, userID uuid.UUID) (*dto.MoodSummaryResponse, error) {
	now := time.Now()
	weekStart := startOfDay(now).AddDate(0, 0, -6)

	entries, err := s.repo.FindByUserSince(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}

	type dayBucket struct {
		counts map[string]int
		total  int
	}
	buckets := make([]dayBucket, 7)
	for i := range buckets {
		buckets[i].counts = make(map[string]int)
	}

	// Match buckets by calendar date so a DST-shortened day cannot
	// shift an entry into its neighbor.
	for i := range entries {
		entryDay := startOfDay(entries[i].CreatedAt)
		for day := 0; day < 7; day++ {
			if entryDay.Equal(weekStart.AddDate(0, 0, day)) {
				buckets[day].counts[entries[i].Mood]++
				buckets[day].total++
				break
			}
		}
	}

	days := make([]dto.DailyMoodSummary, 7)
	for i := range buckets {
		summary := dto.DailyMoodSummary{
			Date:    weekStart.AddDate(0, 0, i).Format("2006-01-02"),
			Entries: buckets[i].total,
		}

		best := 0
		for mood, count := range buckets[i].counts {
			if count > best {
				best = count
				summary.Mood = mood
			}
		}
		days[i] = summary
	}

	return &dto.MoodSummaryResponse{Days: days}, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func toMoodResponse(entry *entity.MoodEntry) dto.MoodResponse {
	return dto.MoodResponse{
		ID:        entry.ID,
		Mood:      entry.Mood,
		Intensity: entry.Intensity,
		Note:      entry.Note,
		CreatedAt: entry.CreatedAt,
	}
}
