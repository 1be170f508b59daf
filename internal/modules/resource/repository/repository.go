package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sereno.app/mindgarden/internal/entity"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource *entity.Resource) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error)
	FindAll(ctx context.Context, category string, limit, offset int) ([]entity.Resource, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type resourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(ctx context.Context, resource *entity.Resource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *resourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
	var resource entity.Resource
	if err := r.db.WithContext(ctx).First(&resource, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *resourceRepository) FindAll(ctx context.Context, category string, limit, offset int) ([]entity.Resource, int64, error) {
	var resources []entity.Resource
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Resource{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&resources).Error
	return resources, total, err
}

func (r *resourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Resource{}, "id = ?", id).Error
}
