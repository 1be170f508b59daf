package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"sereno.app/mindgarden/internal/entity"
)

type GardenRepository interface {
	// InTx runs fn against a repository bound to one transaction.
	InTx(ctx context.Context, fn func(tx GardenRepository) error) error

	CreateActivity(ctx context.Context, log *entity.ActivityLog) error
	CountActivitiesSince(ctx context.Context, userID uuid.UUID, activityType string, since time.Time) (int64, error)
	SumPointsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	ListActivitiesSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]entity.ActivityLog, error)

	GetState(ctx context.Context, userID uuid.UUID) (*entity.GardenState, error)
	ApplyActivity(ctx context.Context, userID uuid.UUID, points, streak int, setStreak bool, at time.Time) error
	SetAmbientMode(ctx context.Context, userID uuid.UUID, mode string) error
	ListInactiveStates(ctx context.Context, before time.Time) ([]entity.GardenState, error)
	UpdateScore(ctx context.Context, userID uuid.UUID, newScore int) error

	ListUnlocks(ctx context.Context, userID uuid.UUID) ([]entity.AchievementUnlock, error)
	CreateUnlocks(ctx context.Context, userID uuid.UUID, codes []string) error
}

type gardenRepository struct {
	db *gorm.DB
}

func NewGardenRepository(db *gorm.DB) GardenRepository {
	return &gardenRepository{db: db}
}

func (r *gardenRepository) InTx(ctx context.Context, fn func(tx GardenRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gardenRepository{db: tx})
	})
}

func (r *gardenRepository) CreateActivity(ctx context.Context, log *entity.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *gardenRepository) CountActivitiesSince(ctx context.Context, userID uuid.UUID, activityType string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ActivityLog{}).
		Where("user_id = ? AND activity_type = ? AND created_at >= ?", userID, activityType, since).
		Count(&count).Error
	return count, err
}

func (r *gardenRepository) SumPointsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Model(&entity.ActivityLog{}).
		Select("COALESCE(SUM(points), 0)").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Scan(&total).Error
	return total, err
}

func (r *gardenRepository) ListActivitiesSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]entity.ActivityLog, error) {
	var logs []entity.ActivityLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at asc").
		Find(&logs).Error
	return logs, err
}

// GetState returns the stored state, or an all-zero default when the
// user has no row yet (states are created lazily on first activity).
func (r *gardenRepository) GetState(ctx context.Context, userID uuid.UUID) (*entity.GardenState, error) {
	var state entity.GardenState
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&state).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &entity.GardenState{
				UserID:      userID,
				AmbientMode: entity.AmbientForest,
			}, nil
		}
		return nil, err
	}
	return &state, nil
}

// ApplyActivity upserts the per-user aggregate. Score and interaction
// increments are expressed in the update itself so concurrent writers
// cannot lose updates; streak is assigned only for eligible types.
func (r *gardenRepository) ApplyActivity(ctx context.Context, userID uuid.UUID, points, streak int, setStreak bool, at time.Time) error {
	assignments := map[string]interface{}{
		"growth_score":       gorm.Expr("garden_states.growth_score + ?", points),
		"total_interactions": gorm.Expr("garden_states.total_interactions + 1"),
		"last_activity":      at,
	}
	if setStreak {
		assignments["streak"] = streak
	}

	state := entity.GardenState{
		UserID:            userID,
		GrowthScore:       points,
		TotalInteractions: 1,
		LastActivity:      at,
		AmbientMode:       entity.AmbientForest,
	}
	if setStreak {
		state.Streak = streak
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&state).Error
}

func (r *gardenRepository) SetAmbientMode(ctx context.Context, userID uuid.UUID, mode string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"ambient_mode": mode}),
	}).Create(&entity.GardenState{
		UserID:      userID,
		AmbientMode: mode,
	}).Error
}

func (r *gardenRepository) ListInactiveStates(ctx context.Context, before time.Time) ([]entity.GardenState, error) {
	var states []entity.GardenState
	err := r.db.WithContext(ctx).
		Where("last_activity < ? AND growth_score > 0", before).
		Find(&states).Error
	return states, err
}

// UpdateScore writes a decayed score without touching last_activity,
// so repeated decay runs keep measuring from the real idle start.
func (r *gardenRepository) UpdateScore(ctx context.Context, userID uuid.UUID, newScore int) error {
	return r.db.WithContext(ctx).Model(&entity.GardenState{}).
		Where("user_id = ?", userID).
		UpdateColumn("growth_score", newScore).Error
}

func (r *gardenRepository) ListUnlocks(ctx context.Context, userID uuid.UUID) ([]entity.AchievementUnlock, error) {
	var unlocks []entity.AchievementUnlock
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at asc").
		Find(&unlocks).Error
	return unlocks, err
}

func (r *gardenRepository) CreateUnlocks(ctx context.Context, userID uuid.UUID, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	unlocks := make([]entity.AchievementUnlock, 0, len(codes))
	for _, code := range codes {
		unlocks = append(unlocks, entity.AchievementUnlock{
			UserID: userID,
			Code:   code,
		})
	}
	// The unique (user_id, code) index makes re-unlocks a no-op.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&unlocks).Error
}
