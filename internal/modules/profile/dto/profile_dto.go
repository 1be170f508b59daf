package dto

import "github.com/google/uuid"

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty" binding:"omitempty,max=100"`
	Timezone    *string `json:"timezone,omitempty" binding:"omitempty,max=50"`
	Bio         *string `json:"bio,omitempty" binding:"omitempty,max=500"`
}

type ProfileResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Timezone    *string   `json:"timezone,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
}
