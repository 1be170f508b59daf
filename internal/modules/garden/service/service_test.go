package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"sereno.app/mindgarden/internal/entity"
	gardenRepo "sereno.app/mindgarden/internal/modules/garden/repository"
	"sereno.app/mindgarden/internal/testutil"
	"sereno.app/mindgarden/pkg/apperror"
)

func newTestService(t *testing.T) (*gardenService, gardenRepo.GardenRepository) {
	t.Helper()

	db := testutil.OpenTestDB(t)
	repo := gardenRepo.NewGardenRepository(db)
	svc := &gardenService{
		repo: repo,
		now:  time.Now,
	}
	return svc, repo
}

func at(svc *gardenService, t time.Time) {
	svc.now = func() time.Time { return t }
}

func TestRecordActivityFirstMood(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	result, err := svc.RecordActivity(ctx, userID, ActivityMood)
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}

	if result.RateLimited {
		t.Fatal("first activity should not be rate limited")
	}
	if result.PointsAwarded != 5 {
		t.Errorf("points = %d, want 5", result.PointsAwarded)
	}
	if result.NewStreak != 1 {
		t.Errorf("streak = %d, want 1", result.NewStreak)
	}
	if result.GrowthScore != 5 {
		t.Errorf("score = %d, want 5", result.GrowthScore)
	}
	if result.Stage != StageSeed {
		t.Errorf("stage = %q, want %q", result.Stage, StageSeed)
	}

	state, err := repo.GetState(ctx, userID)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if state.GrowthScore != 5 || state.Streak != 1 || state.TotalInteractions != 1 {
		t.Errorf("state = {score %d, streak %d, interactions %d}, want {5, 1, 1}",
			state.GrowthScore, state.Streak, state.TotalInteractions)
	}
}

func TestRecordActivityUnknownType(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	_, err := svc.RecordActivity(ctx, userID, "unknown_type")
	if !errors.Is(err, apperror.ErrInvalidActivityType) {
		t.Fatalf("err = %v, want ErrInvalidActivityType", err)
	}

	count, err := repo.CountActivitiesSince(ctx, userID, "unknown_type", time.Time{})
	if err != nil {
		t.Fatalf("CountActivitiesSince: %v", err)
	}
	if count != 0 {
		t.Errorf("ledger rows = %d, want 0", count)
	}

	state, err := repo.GetState(ctx, userID)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if state.GrowthScore != 0 || state.TotalInteractions != 0 {
		t.Errorf("state changed on rejected activity: %+v", state)
	}
}

func TestRecordActivityLegacyAlias(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	result, err := svc.RecordActivity(ctx, userID, "mood_logged")
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	if result.ActivityType != ActivityMood {
		t.Errorf("activity type = %q, want %q", result.ActivityType, ActivityMood)
	}

	count, err := repo.CountActivitiesSince(ctx, userID, ActivityMood, time.Time{})
	if err != nil {
		t.Fatalf("CountActivitiesSince: %v", err)
	}
	if count != 1 {
		t.Errorf("canonical ledger rows = %d, want 1", count)
	}
}

func TestDailyCapEnforced(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	// cap for mood is 3 per day
	for i := 0; i < 3; i++ {
		result, err := svc.RecordActivity(ctx, userID, ActivityMood)
		if err != nil {
			t.Fatalf("RecordActivity %d: %v", i+1, err)
		}
		if result.RateLimited {
			t.Fatalf("call %d unexpectedly rate limited", i+1)
		}
	}

	result, err := svc.RecordActivity(ctx, userID, ActivityMood)
	if err != nil {
		t.Fatalf("RecordActivity over cap: %v", err)
	}
	if !result.RateLimited {
		t.Fatal("4th mood of the day should be rate limited")
	}
	if result.PointsAwarded != 0 {
		t.Errorf("limited call awarded %d points, want 0", result.PointsAwarded)
	}

	state, err := repo.GetState(ctx, userID)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if state.GrowthScore != 15 {
		t.Errorf("score = %d, want 15 (3 accepted moods)", state.GrowthScore)
	}
	if state.TotalInteractions != 3 {
		t.Errorf("interactions = %d, want 3", state.TotalInteractions)
	}

	count, err := repo.CountActivitiesSince(ctx, userID, ActivityMood, time.Time{})
	if err != nil {
		t.Fatalf("CountActivitiesSince: %v", err)
	}
	if count != 3 {
		t.Errorf("ledger rows = %d, want 3 (limited call writes nothing)", count)
	}
}

func TestCapResetsNextDay(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	day1 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	at(svc, day1)
	if _, err := svc.RecordActivity(ctx, userID, ActivityCheckin); err != nil {
		t.Fatalf("day 1 checkin: %v", err)
	}

	result, err := svc.RecordActivity(ctx, userID, ActivityCheckin)
	if err != nil {
		t.Fatalf("day 1 second checkin: %v", err)
	}
	if !result.RateLimited {
		t.Fatal("second checkin of the day should hit the cap of 1")
	}

	at(svc, day1.AddDate(0, 0, 1))
	result, err = svc.RecordActivity(ctx, userID, ActivityCheckin)
	if err != nil {
		t.Fatalf("day 2 checkin: %v", err)
	}
	if result.RateLimited {
		t.Fatal("cap should reset at midnight")
	}
}

func TestStreakIdempotentSameDay(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	at(svc, time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local))

	first, err := svc.RecordActivity(ctx, userID, ActivityMood)
	if err != nil {
		t.Fatalf("first mood: %v", err)
	}
	second, err := svc.RecordActivity(ctx, userID, ActivityJournal)
	if err != nil {
		t.Fatalf("journal same day: %v", err)
	}

	if first.NewStreak != 1 || second.NewStreak != 1 {
		t.Errorf("streaks = %d, %d, want 1, 1", first.NewStreak, second.NewStreak)
	}
}

func TestStreakContinuityAndReset(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	day1 := time.Date(2026, 3, 2, 20, 0, 0, 0, time.Local)

	at(svc, day1)
	if _, err := svc.RecordActivity(ctx, userID, ActivityMood); err != nil {
		t.Fatalf("day 1: %v", err)
	}

	// Next calendar day, different eligible type still continues the
	// streak (late evening to early morning is fine).
	at(svc, day1.AddDate(0, 0, 1).Add(-11*time.Hour))
	result, err := svc.RecordActivity(ctx, userID, ActivityCheckin)
	if err != nil {
		t.Fatalf("day 2: %v", err)
	}
	if result.NewStreak != 2 {
		t.Errorf("day 2 streak = %d, want 2", result.NewStreak)
	}

	// A 2+ day gap resets to 1.
	at(svc, day1.AddDate(0, 0, 4))
	result, err = svc.RecordActivity(ctx, userID, ActivityMood)
	if err != nil {
		t.Fatalf("day 5: %v", err)
	}
	if result.NewStreak != 1 {
		t.Errorf("streak after gap = %d, want 1", result.NewStreak)
	}
}

func TestIneligibleActivityDoesNotTouchStreak(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	day1 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	at(svc, day1)

	// resource views earn points but never advance the streak
	result, err := svc.RecordActivity(ctx, userID, ActivityResource)
	if err != nil {
		t.Fatalf("resource: %v", err)
	}
	if result.NewStreak != 0 {
		t.Errorf("streak after ineligible = %d, want 0", result.NewStreak)
	}

	// The first eligible activity of that same day still starts at 1
	// even though last_activity was already stamped.
	result, err = svc.RecordActivity(ctx, userID, ActivityMood)
	if err != nil {
		t.Fatalf("mood: %v", err)
	}
	if result.NewStreak != 1 {
		t.Errorf("streak after first eligible = %d, want 1", result.NewStreak)
	}
}

func TestAchievementUnlockExactlyOnce(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)

	// 45 points: 2 journals (capped at 2/day) + 5 moods across two days.
	at(svc, day)
	for i := 0; i < 2; i++ {
		if _, err := svc.RecordActivity(ctx, userID, ActivityJournal); err != nil {
			t.Fatalf("journal %d: %v", i+1, err)
		}
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.RecordActivity(ctx, userID, ActivityMood); err != nil {
			t.Fatalf("mood %d: %v", i+1, err)
		}
	}
	at(svc, day.AddDate(0, 0, 1))
	for i := 0; i < 2; i++ {
		if _, err := svc.RecordActivity(ctx, userID, ActivityMood); err != nil {
			t.Fatalf("day 2 mood %d: %v", i+1, err)
		}
	}

	state, err := repo.GetState(ctx, userID)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if state.GrowthScore != 45 {
		t.Fatalf("setup score = %d, want 45", state.GrowthScore)
	}

	// Crossing 45 -> 55 unlocks energy_emerging (threshold 50).
	result, err := svc.RecordActivity(ctx, userID, ActivityJournal)
	if err != nil {
		t.Fatalf("crossing journal: %v", err)
	}
	found := false
	for _, code := range result.NewAchievements {
		if code == "energy_emerging" {
			found = true
		}
	}
	if !found {
		t.Errorf("crossing 50 did not unlock energy_emerging, got %v", result.NewAchievements)
	}

	// Further activity must not re-emit the same code.
	result, err = svc.RecordActivity(ctx, userID, ActivityGratitude)
	if err != nil {
		t.Fatalf("gratitude: %v", err)
	}
	for _, code := range result.NewAchievements {
		if code == "energy_emerging" {
			t.Error("energy_emerging unlocked twice")
		}
	}

	unlocks, err := repo.ListUnlocks(ctx, userID)
	if err != nil {
		t.Fatalf("ListUnlocks: %v", err)
	}
	seen := 0
	for _, u := range unlocks {
		if u.Code == "energy_emerging" {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("energy_emerging stored %d times, want 1", seen)
	}
}

func TestInteractionAchievement(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	// gratitude is uncapped, 10 interactions unlocks active_cultivator
	var last []string
	for i := 0; i < 10; i++ {
		result, err := svc.RecordActivity(ctx, userID, ActivityGratitude)
		if err != nil {
			t.Fatalf("gratitude %d: %v", i+1, err)
		}
		last = result.NewAchievements
	}

	found := false
	for _, code := range last {
		if code == "active_cultivator" {
			found = true
		}
	}
	if !found {
		t.Errorf("10th interaction did not unlock active_cultivator, got %v", last)
	}
}

func TestRunDecay(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	staleID := uuid.New()
	freshID := uuid.New()
	brokeID := uuid.New()

	seed := func(userID uuid.UUID, score int, last time.Time) {
		t.Helper()
		if err := repo.ApplyActivity(ctx, userID, score, 1, true, last); err != nil {
			t.Fatalf("seed state: %v", err)
		}
	}

	seed(staleID, 100, now.AddDate(0, 0, -3))
	seed(freshID, 100, now.Add(-2*time.Hour))
	seed(brokeID, 5, now.AddDate(0, 0, -3))

	updated, err := svc.RunDecay(ctx, now)
	if err != nil {
		t.Fatalf("RunDecay: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, want 2", updated)
	}

	state, err := repo.GetState(ctx, staleID)
	if err != nil {
		t.Fatalf("GetState stale: %v", err)
	}
	if state.GrowthScore != 70 {
		t.Errorf("stale score = %d, want 70 (3 days * 10)", state.GrowthScore)
	}
	if !state.LastActivity.Equal(now.AddDate(0, 0, -3)) {
		t.Error("decay must not touch last_activity")
	}

	state, err = repo.GetState(ctx, freshID)
	if err != nil {
		t.Fatalf("GetState fresh: %v", err)
	}
	if state.GrowthScore != 100 {
		t.Errorf("fresh score = %d, want 100 (no decay within a day)", state.GrowthScore)
	}

	// Floor at zero, never negative.
	state, err = repo.GetState(ctx, brokeID)
	if err != nil {
		t.Fatalf("GetState floored: %v", err)
	}
	if state.GrowthScore != 0 {
		t.Errorf("floored score = %d, want 0", state.GrowthScore)
	}
}

// flakyGardenRepo fails UpdateScore for one user to exercise the
// fail-soft decay batch.
type flakyGardenRepo struct {
	gardenRepo.GardenRepository
	failFor uuid.UUID
}

func (r *flakyGardenRepo) UpdateScore(ctx context.Context, userID uuid.UUID, newScore int) error {
	if userID == r.failFor {
		return errors.New("update rejected")
	}
	return r.GardenRepository.UpdateScore(ctx, userID, newScore)
}

func TestRunDecayContinuesPastRowFailure(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	broken := uuid.New()
	okA := uuid.New()
	okB := uuid.New()

	for _, userID := range []uuid.UUID{broken, okA, okB} {
		if err := repo.ApplyActivity(ctx, userID, 100, 1, true, now.AddDate(0, 0, -3)); err != nil {
			t.Fatalf("seed state: %v", err)
		}
	}

	svc.repo = &flakyGardenRepo{GardenRepository: repo, failFor: broken}

	updated, err := svc.RunDecay(ctx, now)
	if err != nil {
		t.Fatalf("RunDecay: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, want 2 (failed row excluded from the count)", updated)
	}

	for _, userID := range []uuid.UUID{okA, okB} {
		state, err := repo.GetState(ctx, userID)
		if err != nil {
			t.Fatalf("GetState: %v", err)
		}
		if state.GrowthScore != 70 {
			t.Errorf("healthy row score = %d, want 70 (batch must continue past the failure)", state.GrowthScore)
		}
	}

	state, err := repo.GetState(ctx, broken)
	if err != nil {
		t.Fatalf("GetState broken: %v", err)
	}
	if state.GrowthScore != 100 {
		t.Errorf("failed row score = %d, want 100 untouched", state.GrowthScore)
	}
}

func TestGetStatsWeeklySeriesAcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tz database unavailable")
	}

	svc, _ := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	// US clocks spring forward on 2026-03-08, making it a 23-hour day.
	at(svc, time.Date(2026, 3, 9, 0, 0, 0, 0, loc))
	if _, err := svc.RecordActivity(ctx, userID, ActivityJournal); err != nil {
		t.Fatalf("journal: %v", err)
	}

	at(svc, time.Date(2026, 3, 12, 10, 0, 0, 0, loc))
	stats, err := svc.GetStats(ctx, userID)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	// Week starts Mar 6; Mar 9 belongs in bucket 3 even though only 71
	// hours elapsed since that midnight.
	if stats.WeeklySeries[3] != 10 {
		t.Errorf("bucket 3 = %d, want 10", stats.WeeklySeries[3])
	}
	if stats.WeeklySeries[2] != 0 {
		t.Errorf("bucket 2 = %d, want 0 (entry must not slip a day back)", stats.WeeklySeries[2])
	}
}

func TestSetAmbientMode(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	if err := svc.SetAmbientMode(ctx, userID, entity.AmbientOcean); err != nil {
		t.Fatalf("SetAmbientMode: %v", err)
	}

	state, err := repo.GetState(ctx, userID)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if state.AmbientMode != entity.AmbientOcean {
		t.Errorf("ambient = %q, want %q", state.AmbientMode, entity.AmbientOcean)
	}

	if err := svc.SetAmbientMode(ctx, userID, "volcano"); !errors.Is(err, apperror.ErrInvalidAmbientMode) {
		t.Errorf("err = %v, want ErrInvalidAmbientMode", err)
	}
}

func TestGetStatsWeeklySeries(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)

	at(svc, day)
	if _, err := svc.RecordActivity(ctx, userID, ActivityJournal); err != nil {
		t.Fatalf("day 1: %v", err)
	}
	at(svc, day.AddDate(0, 0, 2))
	if _, err := svc.RecordActivity(ctx, userID, ActivityMood); err != nil {
		t.Fatalf("day 3: %v", err)
	}

	at(svc, day.AddDate(0, 0, 2).Add(3*time.Hour))
	stats, err := svc.GetStats(ctx, userID)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if len(stats.WeeklySeries) != 7 {
		t.Fatalf("series length = %d, want 7", len(stats.WeeklySeries))
	}
	// today is bucket 6, two days ago is bucket 4
	if stats.WeeklySeries[4] != 10 {
		t.Errorf("bucket 4 = %d, want 10", stats.WeeklySeries[4])
	}
	if stats.WeeklySeries[6] != 5 {
		t.Errorf("bucket 6 = %d, want 5", stats.WeeklySeries[6])
	}
	if stats.PointsToday != 5 {
		t.Errorf("points today = %d, want 5", stats.PointsToday)
	}
	if stats.PointsWeek != 15 {
		t.Errorf("points week = %d, want 15", stats.PointsWeek)
	}
}

func TestGetStateForNewUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.GetState(ctx, uuid.New())
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if resp.GrowthScore != 0 || resp.Streak != 0 {
		t.Errorf("new user state = {score %d, streak %d}, want zeros", resp.GrowthScore, resp.Streak)
	}
	if resp.Stage != StageSeed {
		t.Errorf("stage = %q, want %q", resp.Stage, StageSeed)
	}
	if resp.AmbientMode != entity.AmbientForest {
		t.Errorf("ambient = %q, want default %q", resp.AmbientMode, entity.AmbientForest)
	}
	if resp.LastActivity != nil {
		t.Error("new user should have no last activity")
	}
}
