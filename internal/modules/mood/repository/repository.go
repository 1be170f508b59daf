package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sereno.app/mindgarden/internal/entity"
)

type MoodRepository interface {
	Create(ctx context.Context, entry *entity.MoodEntry) error
	FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.MoodEntry, int64, error)
	FindByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]entity.MoodEntry, error)
}

type moodRepository struct {
	db *gorm.DB
}

func NewMoodRepository(db *gorm.DB) MoodRepository {
	return &moodRepository{db: db}
}

func (r *moodRepository) Create(ctx context.Context, entry *entity.MoodEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *moodRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.MoodEntry, int64, error) {
	var entries []entity.MoodEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.MoodEntry{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}

func (r *moodRepository) FindByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]entity.MoodEntry, error) {
	var entries []entity.MoodEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at asc").
		Find(&entries).Error
	return entries, err
}
