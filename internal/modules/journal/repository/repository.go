package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sereno.app/mindgarden/internal/entity"
)

type JournalRepository interface {
	Create(ctx context.Context, entry *entity.JournalEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.JournalEntry, error)
	FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.JournalEntry, int64, error)
	Update(ctx context.Context, entry *entity.JournalEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type journalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) Create(ctx context.Context, entry *entity.JournalEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *journalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.JournalEntry, error) {
	var entry entity.JournalEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *journalRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.JournalEntry, int64, error) {
	var entries []entity.JournalEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.JournalEntry{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}

func (r *journalRepository) Update(ctx context.Context, entry *entity.JournalEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *journalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.JournalEntry{}, "id = ?", id).Error
}
