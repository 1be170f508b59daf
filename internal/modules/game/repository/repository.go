package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"sereno.app/mindgarden/internal/entity"
)

type GameRepository interface {
	CreateSession(ctx context.Context, session *entity.GameSession) error
	FindSessionsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.GameSession, int64, error)
	GetProgress(ctx context.Context, userID uuid.UUID, gameID string) (*entity.GameProgress, error)
	ListProgress(ctx context.Context, userID uuid.UUID) ([]entity.GameProgress, error)
	AddExperience(ctx context.Context, userID uuid.UUID, gameID string, experience, level int) error
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) CreateSession(ctx context.Context, session *entity.GameSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *gameRepository) FindSessionsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.GameSession, int64, error) {
	var sessions []entity.GameSession
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.GameSession{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("completed_at desc").Limit(limit).Offset(offset).Find(&sessions).Error
	return sessions, total, err
}

func (r *gameRepository) GetProgress(ctx context.Context, userID uuid.UUID, gameID string) (*entity.GameProgress, error) {
	var progress entity.GameProgress
	err := r.db.WithContext(ctx).Where("user_id = ? AND game_id = ?", userID, gameID).First(&progress).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &entity.GameProgress{UserID: userID, GameID: gameID, Level: 1}, nil
		}
		return nil, err
	}
	return &progress, nil
}

func (r *gameRepository) ListProgress(ctx context.Context, userID uuid.UUID) ([]entity.GameProgress, error) {
	var progress []entity.GameProgress
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("game_id asc").Find(&progress).Error
	return progress, err
}

func (r *gameRepository) AddExperience(ctx context.Context, userID uuid.UUID, gameID string, experience, level int) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "game_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"experience": gorm.Expr("game_progresses.experience + ?", experience),
			"level":      level,
		}),
	}).Create(&entity.GameProgress{
		UserID:     userID,
		GameID:     gameID,
		Level:      level,
		Experience: experience,
	}).Error
}
