package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sereno.app/mindgarden/internal/entity"
	gardenService "sereno.app/mindgarden/internal/modules/garden/service"
	"sereno.app/mindgarden/internal/modules/resource/dto"
	"sereno.app/mindgarden/internal/modules/resource/repository"
	searchService "sereno.app/mindgarden/internal/modules/search/service"
	"sereno.app/mindgarden/pkg/apperror"
)

type ResourceService interface {
	CreateResource(ctx context.Context, req dto.CreateResourceRequest) (*dto.ResourceResponse, error)
	GetResources(ctx context.Context, filter dto.ResourceFilter) (*dto.ResourceListResponse, error)
	ViewResource(ctx context.Context, userID, id uuid.UUID) (*dto.ViewResourceResponse, error)
	DeleteResource(ctx context.Context, id uuid.UUID) error
	GetSearchToken(ctx context.Context) (string, error)
}

type resourceService struct {
	repo   repository.ResourceRepository
	garden gardenService.GardenService
	search searchService.SearchService
}

func NewResourceService(repo repository.ResourceRepository, garden gardenService.GardenService, search searchService.SearchService) ResourceService {
	return &resourceService{repo: repo, garden: garden, search: search}
}

func (s *resourceService) CreateResource(ctx context.Context, req dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	resource := &entity.Resource{
		Title:    req.Title,
		Summary:  req.Summary,
		URL:      req.URL,
		Category: req.Category,
		Tags:     req.Tags,
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		return nil, err
	}

	if s.search != nil {
		if err := s.search.IndexResource(resource); err != nil {
			log.Printf("failed to index resource %s: %v", resource.ID, err)
		}
	}

	resp := toResourceResponse(resource)
	return &resp, nil
}

func (s *resourceService) GetResources(ctx context.Context, filter dto.ResourceFilter) (*dto.ResourceListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}

	resources, total, err := s.repo.FindAll(ctx, filter.Category, filter.PerPage, (filter.Page-1)*filter.PerPage)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ResourceResponse, 0, len(resources))
	for i := range resources {
		data = append(data, toResourceResponse(&resources[i]))
	}

	return &dto.ResourceListResponse{Data: data, Total: total}, nil
}

// ViewResource records that the user engaged with a resource, which
// earns points subject to the daily cap.
func (s *resourceService) ViewResource(ctx context.Context, userID, id uuid.UUID) (*dto.ViewResourceResponse, error) {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	scoring, err := s.garden.RecordActivity(ctx, userID, gardenService.ActivityResource)
	if err != nil {
		return nil, err
	}

	return &dto.ViewResourceResponse{
		Resource: toResourceResponse(resource),
		Scoring:  *scoring,
	}, nil
}

func (s *resourceService) DeleteResource(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.DeleteResource(id.String()); err != nil {
			log.Printf("failed to remove resource %s from index: %v", id, err)
		}
	}

	return nil
}

func (s *resourceService) GetSearchToken(ctx context.Context) (string, error) {
	if s.search == nil {
		return "", apperror.ErrInternal
	}
	return s.search.GenerateSearchToken()
}

func toResourceResponse(resource *entity.Resource) dto.ResourceResponse {
	return dto.ResourceResponse{
		ID:        resource.ID,
		Title:     resource.Title,
		Summary:   resource.Summary,
		URL:       resource.URL,
		Category:  resource.Category,
		Tags:      resource.Tags,
		CreatedAt: resource.CreatedAt,
	}
}
