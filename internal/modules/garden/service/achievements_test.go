package service

import (
	"testing"

	"sereno.app/mindgarden/internal/entity"
)

func TestEvaluateAchievements(t *testing.T) {
	state := &entity.GardenState{GrowthScore: 55, Streak: 3, TotalInteractions: 8}

	codes := EvaluateAchievements(state, map[string]bool{})
	want := []string{"energy_emerging", "streak_starter"}
	if len(codes) != len(want) {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("codes = %v, want %v", codes, want)
		}
	}
}

func TestEvaluateAchievementsSkipsUnlocked(t *testing.T) {
	state := &entity.GardenState{GrowthScore: 55, Streak: 3, TotalInteractions: 8}
	unlocked := map[string]bool{"energy_emerging": true, "streak_starter": true}

	if codes := EvaluateAchievements(state, unlocked); len(codes) != 0 {
		t.Errorf("re-evaluation emitted %v, want nothing", codes)
	}
}

func TestEvaluateAchievementsBelowThresholds(t *testing.T) {
	state := &entity.GardenState{GrowthScore: 49, Streak: 2, TotalInteractions: 9}
	if codes := EvaluateAchievements(state, map[string]bool{}); len(codes) != 0 {
		t.Errorf("below-threshold state emitted %v", codes)
	}
}

func TestAchievementCatalogStable(t *testing.T) {
	catalog := AchievementCatalog()
	if len(catalog) != 11 {
		t.Fatalf("catalog size = %d, want 11", len(catalog))
	}

	seen := make(map[string]bool)
	for _, def := range catalog {
		if seen[def.Code] {
			t.Errorf("duplicate code %q", def.Code)
		}
		seen[def.Code] = true
		if def.Threshold <= 0 {
			t.Errorf("%q has non-positive threshold %d", def.Code, def.Threshold)
		}
	}
}
