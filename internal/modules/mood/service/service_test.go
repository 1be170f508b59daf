package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"sereno.app/mindgarden/internal/entity"
	gardenRepo "sereno.app/mindgarden/internal/modules/garden/repository"
	gardenService "sereno.app/mindgarden/internal/modules/garden/service"
	"sereno.app/mindgarden/internal/modules/mood/dto"
	"sereno.app/mindgarden/internal/modules/mood/repository"
	"sereno.app/mindgarden/internal/testutil"
)

func newTestService(t *testing.T) (MoodService, repository.MoodRepository) {
	t.Helper()

	db := testutil.OpenTestDB(t)
	garden := gardenService.NewGardenService(gardenRepo.NewGardenRepository(db), nil, nil, 0)
	repo := repository.NewMoodRepository(db)
	return NewMoodService(repo, garden), repo
}

func TestCreateMoodStoresEntryAndScores(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	resp, err := svc.CreateMood(ctx, userID, dto.CreateMoodRequest{
		Mood:      entity.MoodGood,
		Intensity: 4,
	})
	if err != nil {
		t.Fatalf("CreateMood: %v", err)
	}

	if resp.Entry.Mood != entity.MoodGood || resp.Entry.Intensity != 4 {
		t.Errorf("entry = %+v", resp.Entry)
	}
	if resp.Scoring.PointsAwarded != 5 {
		t.Errorf("points = %d, want 5", resp.Scoring.PointsAwarded)
	}
	if resp.Scoring.RateLimited {
		t.Error("first mood of the day should not be rate limited")
	}

	entries, total, err := repo.FindByUser(ctx, userID, 10, 0)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Fatalf("stored entries = %d (total %d), want 1", len(entries), total)
	}
}

func TestCreateMoodStoredEvenWhenCapped(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		resp, err := svc.CreateMood(ctx, userID, dto.CreateMoodRequest{
			Mood:      entity.MoodOkay,
			Intensity: 3,
		})
		if err != nil {
			t.Fatalf("CreateMood %d: %v", i+1, err)
		}
		if i == 3 && !resp.Scoring.RateLimited {
			t.Error("4th mood of the day should be point-capped")
		}
	}

	// All four entries exist; the cap only withholds points.
	_, total, err := repo.FindByUser(ctx, userID, 10, 0)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if total != 4 {
		t.Errorf("stored entries = %d, want 4", total)
	}
}

func TestGetMoodsSince(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()
	now := time.Now()

	old := &entity.MoodEntry{UserID: userID, Mood: entity.MoodLow, Intensity: 2, CreatedAt: now.AddDate(0, 0, -30)}
	recent := &entity.MoodEntry{UserID: userID, Mood: entity.MoodGreat, Intensity: 5, CreatedAt: now}
	for _, e := range []*entity.MoodEntry{old, recent} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("seed mood: %v", err)
		}
	}

	list, err := svc.GetMoodsSince(ctx, userID, now.AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("GetMoodsSince: %v", err)
	}
	if list.Total != 1 || list.Data[0].Mood != entity.MoodGreat {
		t.Errorf("since filter returned %+v, want only the recent entry", list)
	}
}

func TestGetWeeklySummary(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()
	now := time.Now()

	seed := func(mood string, createdAt time.Time) {
		t.Helper()
		if err := repo.Create(ctx, &entity.MoodEntry{
			UserID:    userID,
			Mood:      mood,
			Intensity: 3,
			CreatedAt: createdAt,
		}); err != nil {
			t.Fatalf("seed mood: %v", err)
		}
	}

	seed(entity.MoodGood, now)
	seed(entity.MoodGood, now)
	seed(entity.MoodLow, now)
	seed(entity.MoodAwful, now.AddDate(0, 0, -10)) // outside window

	summary, err := svc.GetWeeklySummary(ctx, userID)
	if err != nil {
		t.Fatalf("GetWeeklySummary: %v", err)
	}
	if len(summary.Days) != 7 {
		t.Fatalf("days = %d, want 7", len(summary.Days))
	}

	today := summary.Days[6]
	if today.Entries != 3 {
		t.Errorf("today entries = %d, want 3", today.Entries)
	}
	if today.Mood != entity.MoodGood {
		t.Errorf("dominant mood = %q, want %q", today.Mood, entity.MoodGood)
	}

	for i := 0; i < 6; i++ {
		if summary.Days[i].Entries != 0 {
			t.Errorf("day %d entries = %d, want 0", i, summary.Days[i].Entries)
		}
	}
}
