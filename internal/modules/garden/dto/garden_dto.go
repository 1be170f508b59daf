package dto

import "time"

type RecordActivityRequest struct {
	ActivityType string `json:"activity_type" binding:"required"`
}

// ScoringResult is the outcome of recording one activity. A
// rate-limited call is a normal outcome: zero points, nothing written.
type ScoringResult struct {
	ActivityType    string   `json:"activity_type"`
	PointsAwarded   int      `json:"points_awarded"`
	RateLimited     bool     `json:"rate_limited"`
	NewStreak       int      `json:"new_streak"`
	GrowthScore     int      `json:"growth_score"`
	Stage           string   `json:"stage"`
	NewAchievements []string `json:"new_achievements,omitempty"`
}

type MilestoneResponse struct {
	Threshold int    `json:"threshold"`
	Label     string `json:"label"`
}

type GardenStateResponse struct {
	GrowthScore       int               `json:"growth_score"`
	Streak            int               `json:"streak"`
	TotalInteractions int               `json:"total_interactions"`
	LastActivity      *time.Time        `json:"last_activity,omitempty"`
	AmbientMode       string            `json:"ambient_mode"`
	Stage             string            `json:"stage"`
	NextStage         string            `json:"next_stage"`
	StageProgress     float64           `json:"stage_progress"`
	NextMilestone     MilestoneResponse `json:"next_milestone"`
	PointsToday       int               `json:"points_today"`
}

type GardenStatsResponse struct {
	PointsToday          int               `json:"points_today"`
	PointsWeek           int               `json:"points_week"`
	PointsMonth          int               `json:"points_month"`
	WeeklySeries         []int             `json:"weekly_series"`
	Stage                string            `json:"stage"`
	NextMilestone        MilestoneResponse `json:"next_milestone"`
	AchievementsUnlocked int               `json:"achievements_unlocked"`
}

type SetAmbientRequest struct {
	AmbientMode string `json:"ambient_mode" binding:"required,oneof=forest mountain desert ocean space"`
}

type UnlockedAchievement struct {
	Code       string    `json:"code"`
	Title      string    `json:"title"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

type AchievementDefResponse struct {
	Code      string `json:"code"`
	Metric    string `json:"metric"`
	Threshold int    `json:"threshold"`
	Title     string `json:"title"`
	Unlocked  bool   `json:"unlocked"`
}

type AchievementsResponse struct {
	Unlocked []UnlockedAchievement    `json:"unlocked"`
	Catalog  []AchievementDefResponse `json:"catalog"`
}

type DecayResponse struct {
	UpdatedStates int `json:"updated_states"`
}
