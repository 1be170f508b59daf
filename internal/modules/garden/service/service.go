package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"sereno.app/mindgarden/internal/entity"
	gardenDto "sereno.app/mindgarden/internal/modules/garden/dto"
	gardenRepo "sereno.app/mindgarden/internal/modules/garden/repository"
	notifService "sereno.app/mindgarden/internal/modules/notification/service"
	"sereno.app/mindgarden/pkg/apperror"
)

// Score lost per full day of inactivity.
const DecayPointsPerDay = 10

type GardenService interface {
	// RecordActivity applies one activity to the user's garden: ledger
	// append, streak update, score increment and achievement check.
	// A capped activity returns a rate-limited result and writes nothing.
	RecordActivity(ctx context.Context, userID uuid.UUID, activityType string) (*gardenDto.ScoringResult, error)
	GetState(ctx context.Context, userID uuid.UUID) (*gardenDto.GardenStateResponse, error)
	GetStats(ctx context.Context, userID uuid.UUID) (*gardenDto.GardenStatsResponse, error)
	SetAmbientMode(ctx context.Context, userID uuid.UUID, mode string) error
	ListAchievements(ctx context.Context, userID uuid.UUID) (*gardenDto.AchievementsResponse, error)
	// RunDecay reduces stale scores and returns how many states changed.
	RunDecay(ctx context.Context, now time.Time) (int, error)
	StartDecayWorker(ctx context.Context, interval time.Duration)
}

type gardenService struct {
	repo                gardenRepo.GardenRepository
	notificationService notifService.NotificationService
	redisClient         *redis.Client
	cooldown            time.Duration
	now                 func() time.Time
}

func NewGardenService(repo gardenRepo.GardenRepository, notificationService notifService.NotificationService, redisClient *redis.Client, cooldown time.Duration) GardenService {
	return &gardenService{
		repo:                repo,
		notificationService: notificationService,
		redisClient:         redisClient,
		cooldown:            cooldown,
		now:                 time.Now,
	}
}

func (s *gardenService) RecordActivity(ctx context.Context, userID uuid.UUID, activityType string) (*gardenDto.ScoringResult, error) {
	canonical, known := NormalizeActivityType(activityType)
	if !known {
		return nil, apperror.ErrInvalidActivityType
	}

	now := s.now()

	// Short anti-spam cooldown in Redis. The daily cap below is the
	// real limit; this only smooths bursts. Skipped when Redis is off.
	allowed, err := checkAndSetCooldown(ctx, s.redisClient, userID, canonical, s.cooldown)
	if err != nil {
		log.Printf("cooldown check failed for user %s: %v", userID, err)
	} else if !allowed {
		state, err := s.repo.GetState(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.limitedResult(canonical, state), nil
	}

	var result *gardenDto.ScoringResult
	var previousScore int
	err = s.repo.InTx(ctx, func(tx gardenRepo.GardenRepository) error {
		state, err := tx.GetState(ctx, userID)
		if err != nil {
			return err
		}
		previousScore = state.GrowthScore

		// Re-checking the cap inside the transaction closes the
		// check-then-write race between concurrent requests.
		if limit, capped := DailyCapFor(canonical); capped {
			count, err := tx.CountActivitiesSince(ctx, userID, canonical, startOfDay(now))
			if err != nil {
				return err
			}
			if count >= int64(limit) {
				result = s.limitedResult(canonical, state)
				return nil
			}
		}

		points := PointsFor(canonical)
		eligible := IsStreakEligible(canonical)
		newStreak := state.Streak
		if eligible {
			newStreak = nextStreak(state, now)
		}

		if err := tx.CreateActivity(ctx, &entity.ActivityLog{
			UserID:       userID,
			ActivityType: canonical,
			Points:       points,
			CreatedAt:    now,
		}); err != nil {
			return err
		}

		if err := tx.ApplyActivity(ctx, userID, points, newStreak, eligible, now); err != nil {
			return err
		}

		result = &gardenDto.ScoringResult{
			ActivityType:  canonical,
			PointsAwarded: points,
			NewStreak:     newStreak,
			GrowthScore:   state.GrowthScore + points,
			Stage:         StageFor(state.GrowthScore + points),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.RateLimited {
		result.NewAchievements = s.unlockAchievements(ctx, userID)
		s.notifyStageUp(ctx, userID, previousScore, result.GrowthScore)
	}

	return result, nil
}

func (s *gardenService) limitedResult(activityType string, state *entity.GardenState) *gardenDto.ScoringResult {
	return &gardenDto.ScoringResult{
		ActivityType: activityType,
		RateLimited:  true,
		NewStreak:    state.Streak,
		GrowthScore:  state.GrowthScore,
		Stage:        StageFor(state.GrowthScore),
	}
}

// nextStreak implements the consecutive-day rule: continue from
// yesterday, hold within the same day, otherwise restart at 1.
func nextStreak(state *entity.GardenState, now time.Time) int {
	if state.LastActivity.IsZero() {
		return 1
	}

	today := startOfDay(now)
	lastDay := startOfDay(state.LastActivity)

	switch {
	case lastDay.Equal(today):
		// Same-day repeat never double-increments. An ineligible
		// activity may have stamped LastActivity with streak still 0;
		// the first eligible one of the day still starts the streak.
		if state.Streak == 0 {
			return 1
		}
		return state.Streak
	case lastDay.Equal(today.AddDate(0, 0, -1)):
		return state.Streak + 1
	default:
		return 1
	}
}

func (s *gardenService) unlockAchievements(ctx context.Context, userID uuid.UUID) []string {
	state, err := s.repo.GetState(ctx, userID)
	if err != nil {
		log.Printf("failed to load state for achievement check, user %s: %v", userID, err)
		return nil
	}

	unlocks, err := s.repo.ListUnlocks(ctx, userID)
	if err != nil {
		log.Printf("failed to load unlocks for user %s: %v", userID, err)
		return nil
	}
	unlocked := make(map[string]bool, len(unlocks))
	for _, u := range unlocks {
		unlocked[u.Code] = true
	}

	newCodes := EvaluateAchievements(state, unlocked)
	if len(newCodes) == 0 {
		return nil
	}

	if err := s.repo.CreateUnlocks(ctx, userID, newCodes); err != nil {
		log.Printf("failed to persist unlocks for user %s: %v", userID, err)
		return nil
	}

	for _, code := range newCodes {
		s.sendAchievementNotification(ctx, userID, code)
	}

	return newCodes
}

func (s *gardenService) sendAchievementNotification(ctx context.Context, userID uuid.UUID, code string) {
	if s.notificationService == nil {
		return
	}

	title := code
	for _, def := range achievementCatalog {
		if def.Code == code {
			title = def.Title
			break
		}
	}

	notification := &entity.Notification{
		UserID:  userID,
		Type:    entity.NotificationAchievement,
		Code:    code,
		Message: fmt.Sprintf("Achievement unlocked: %s", title),
	}
	if err := s.notificationService.CreateNotification(ctx, notification); err != nil {
		log.Printf("failed to send achievement notification to user %s: %v", userID, err)
	}
}

func (s *gardenService) notifyStageUp(ctx context.Context, userID uuid.UUID, previousScore, newScore int) {
	if s.notificationService == nil {
		return
	}

	previousStage := StageFor(previousScore)
	newStage := StageFor(newScore)
	if previousStage == newStage {
		return
	}

	notification := &entity.Notification{
		UserID:  userID,
		Type:    entity.NotificationStageUp,
		Code:    newStage,
		Message: fmt.Sprintf("Your tree grew from %s to %s with %d points!", previousStage, newStage, newScore),
	}
	if err := s.notificationService.CreateNotification(ctx, notification); err != nil {
		log.Printf("failed to send stage up notification to user %s: %v", userID, err)
	}
}

func (s *gardenService) GetState(ctx context.Context, userID uuid.UUID) (*gardenDto.GardenStateResponse, error) {
	state, err := s.repo.GetState(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	pointsToday, err := s.repo.SumPointsSince(ctx, userID, startOfDay(now))
	if err != nil {
		return nil, err
	}

	status := GetGrowthStatus(state.GrowthScore)
	milestone := NextMilestone(state.GrowthScore)

	resp := &gardenDto.GardenStateResponse{
		GrowthScore:       state.GrowthScore,
		Streak:            state.Streak,
		TotalInteractions: state.TotalInteractions,
		AmbientMode:       state.AmbientMode,
		Stage:             status.Stage,
		NextStage:         status.NextStage,
		StageProgress:     status.Progress,
		NextMilestone:     gardenDto.MilestoneResponse{Threshold: milestone.Threshold, Label: milestone.Label},
		PointsToday:       pointsToday,
	}
	if !state.LastActivity.IsZero() {
		last := state.LastActivity
		resp.LastActivity = &last
	}
	return resp, nil
}

func (s *gardenService) GetStats(ctx context.Context, userID uuid.UUID) (*gardenDto.GardenStatsResponse, error) {
	state, err := s.repo.GetState(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := startOfDay(now)
	weekStart := today.AddDate(0, 0, -6)

	pointsToday, err := s.repo.SumPointsSince(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	pointsWeek, err := s.repo.SumPointsSince(ctx, userID, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	pointsMonth, err := s.repo.SumPointsSince(ctx, userID, now.AddDate(0, -1, 0))
	if err != nil {
		return nil, err
	}

	// Seven buckets, oldest day first, zero-filled. Buckets are matched
	// by calendar date; hour arithmetic slips a bucket across a DST
	// transition where the day is 23 or 25 hours long.
	logs, err := s.repo.ListActivitiesSince(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}
	series := make([]int, 7)
	for _, entry := range logs {
		entryDay := startOfDay(entry.CreatedAt)
		for day := 0; day < 7; day++ {
			if entryDay.Equal(weekStart.AddDate(0, 0, day)) {
				series[day] += entry.Points
				break
			}
		}
	}

	unlocks, err := s.repo.ListUnlocks(ctx, userID)
	if err != nil {
		return nil, err
	}

	milestone := NextMilestone(state.GrowthScore)
	return &gardenDto.GardenStatsResponse{
		PointsToday:          pointsToday,
		PointsWeek:           pointsWeek,
		PointsMonth:          pointsMonth,
		WeeklySeries:         series,
		Stage:                StageFor(state.GrowthScore),
		NextMilestone:        gardenDto.MilestoneResponse{Threshold: milestone.Threshold, Label: milestone.Label},
		AchievementsUnlocked: len(unlocks),
	}, nil
}

func (s *gardenService) SetAmbientMode(ctx context.Context, userID uuid.UUID, mode string) error {
	switch mode {
	case entity.AmbientForest, entity.AmbientMountain, entity.AmbientDesert, entity.AmbientOcean, entity.AmbientSpace:
	default:
		return apperror.ErrInvalidAmbientMode
	}
	return s.repo.SetAmbientMode(ctx, userID, mode)
}

func (s *gardenService) ListAchievements(ctx context.Context, userID uuid.UUID) (*gardenDto.AchievementsResponse, error) {
	unlocks, err := s.repo.ListUnlocks(ctx, userID)
	if err != nil {
		return nil, err
	}

	titles := make(map[string]string, len(achievementCatalog))
	for _, def := range achievementCatalog {
		titles[def.Code] = def.Title
	}

	unlockedSet := make(map[string]bool, len(unlocks))
	unlocked := make([]gardenDto.UnlockedAchievement, 0, len(unlocks))
	for _, u := range unlocks {
		unlockedSet[u.Code] = true
		unlocked = append(unlocked, gardenDto.UnlockedAchievement{
			Code:       u.Code,
			Title:      titles[u.Code],
			UnlockedAt: u.UnlockedAt,
		})
	}

	catalog := make([]gardenDto.AchievementDefResponse, 0, len(achievementCatalog))
	for _, def := range achievementCatalog {
		catalog = append(catalog, gardenDto.AchievementDefResponse{
			Code:      def.Code,
			Metric:    def.Metric,
			Threshold: def.Threshold,
			Title:     def.Title,
			Unlocked:  unlockedSet[def.Code],
		})
	}

	return &gardenDto.AchievementsResponse{Unlocked: unlocked, Catalog: catalog}, nil
}

func (s *gardenService) RunDecay(ctx context.Context, now time.Time) (int, error) {
	states, err := s.repo.ListInactiveStates(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, state := range states {
		daysInactive := int(now.Sub(state.LastActivity).Hours() / 24)
		if daysInactive < 1 {
			continue
		}

		newScore := state.GrowthScore - daysInactive*DecayPointsPerDay
		if newScore < 0 {
			newScore = 0
		}
		if newScore == state.GrowthScore {
			continue
		}

		// One bad row must not stop the batch.
		if err := s.repo.UpdateScore(ctx, state.UserID, newScore); err != nil {
			log.Printf("decay update failed for user %s: %v", state.UserID, err)
			continue
		}
		updated++
	}

	return updated, nil
}

func (s *gardenService) StartDecayWorker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			count, err := s.RunDecay(ctx, s.now())
			if err != nil {
				log.Printf("decay run failed: %v", err)
				continue
			}
			log.Printf("decay run complete, %d states updated", count)
		case <-ctx.Done():
			return
		}
	}
}

// startOfDay truncates to local midnight; the whole app uses the
// server's local day for caps and streaks.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
