package service

import "sereno.app/mindgarden/internal/entity"

// AchievementDef describes one unlockable achievement. The threshold
// applies to the metric named by Metric ("score", "streak" or
// "interactions"); all metrics only ever grow (decay excepted), so the
// predicates are monotonic and an unlocked code stays valid.
type AchievementDef struct {
	Code      string `json:"code"`
	Metric    string `json:"metric"`
	Threshold int    `json:"threshold"`
	Title     string `json:"title"`
}

const (
	MetricScore        = "score"
	MetricStreak       = "streak"
	MetricInteractions = "interactions"
)

// achievementCatalog is the single source of truth for unlock
// thresholds; the API exposes it so clients never re-declare them.
// Evaluation order: score, then streak, then interactions.
var achievementCatalog = []AchievementDef{
	{Code: "energy_emerging", Metric: MetricScore, Threshold: 50, Title: "Emerging Energy"},
	{Code: "energy_growing", Metric: MetricScore, Threshold: 200, Title: "Growing Energy"},
	{Code: "energy_flourishing", Metric: MetricScore, Threshold: 600, Title: "Flourishing Energy"},
	{Code: "energy_mastery", Metric: MetricScore, Threshold: 1500, Title: "Energy Mastery"},
	{Code: "energy_ancient", Metric: MetricScore, Threshold: 4000, Title: "Ancient Energy"},
	{Code: "energy_legendary", Metric: MetricScore, Threshold: 10000, Title: "Legendary Energy"},
	{Code: "streak_starter", Metric: MetricStreak, Threshold: 3, Title: "Streak Starter"},
	{Code: "week_warrior", Metric: MetricStreak, Threshold: 7, Title: "Week Warrior"},
	{Code: "month_master", Metric: MetricStreak, Threshold: 30, Title: "Month Master"},
	{Code: "active_cultivator", Metric: MetricInteractions, Threshold: 10, Title: "Active Cultivator"},
	{Code: "dedicated_gardener", Metric: MetricInteractions, Threshold: 50, Title: "Dedicated Gardener"},
}

// AchievementCatalog returns the full threshold table.
func AchievementCatalog() []AchievementDef {
	return achievementCatalog
}

// EvaluateAchievements returns the codes whose thresholds the state now
// meets and that are not yet in the unlocked set, in catalog order.
func EvaluateAchievements(state *entity.GardenState, unlocked map[string]bool) []string {
	var newCodes []string
	for _, def := range achievementCatalog {
		if unlocked[def.Code] {
			continue
		}

		var value int
		switch def.Metric {
		case MetricScore:
			value = state.GrowthScore
		case MetricStreak:
			value = state.Streak
		case MetricInteractions:
			value = state.TotalInteractions
		}

		if value >= def.Threshold {
			newCodes = append(newCodes, def.Code)
		}
	}
	return newCodes
}
