package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sereno.app/mindgarden/internal/entity"
	"sereno.app/mindgarden/internal/modules/profile/dto"
	userRepo "sereno.app/mindgarden/internal/modules/user/repository"
	"sereno.app/mindgarden/pkg/apperror"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type profileService struct {
	users userRepo.UserRepository
}

func NewProfileService(users userRepo.UserRepository) ProfileService {
	return &profileService{users: users}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return toProfileResponse(user), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	profile := user.Profile
	if profile == nil {
		profile = &entity.Profile{UserID: user.ID, DisplayName: user.Username}
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Timezone != nil {
		profile.Timezone = req.Timezone
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}

	if err := s.users.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	user.Profile = profile
	return toProfileResponse(user), nil
}

func toProfileResponse(user *entity.User) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		UserID:    user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
	}
	if user.Profile != nil {
		resp.DisplayName = user.Profile.DisplayName
		resp.Timezone = user.Profile.Timezone
		resp.Bio = user.Profile.Bio
	}
	return resp
}
