package service

import "testing"

func TestStageFor(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, StageSeed},
		{9, StageSeed},
		{10, StageSprout},
		{29, StageSprout},
		{30, StageSapling},
		{59, StageSapling},
		{60, StageTree},
		{89, StageTree},
		{90, StageAncient},
		{10000, StageAncient},
	}

	for _, tc := range cases {
		if got := StageFor(tc.score); got != tc.want {
			t.Errorf("StageFor(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestNextMilestone(t *testing.T) {
	if m := NextMilestone(0); m.Threshold != 25 {
		t.Errorf("NextMilestone(0).Threshold = %d, want 25", m.Threshold)
	}
	if m := NextMilestone(25); m.Threshold != 50 {
		t.Errorf("NextMilestone(25).Threshold = %d, want 50", m.Threshold)
	}
	if m := NextMilestone(99); m.Threshold != 100 {
		t.Errorf("NextMilestone(99).Threshold = %d, want 100", m.Threshold)
	}
	// past the last milestone it stays as a ceiling
	if m := NextMilestone(500); m.Threshold != 100 || m.Label != "Ancient Wisdom" {
		t.Errorf("NextMilestone(500) = %+v, want the final milestone", m)
	}
}

func TestGetGrowthStatus(t *testing.T) {
	status := GetGrowthStatus(0)
	if status.Stage != StageSeed || status.Progress != 0 {
		t.Errorf("status(0) = %+v", status)
	}

	status = GetGrowthStatus(15)
	if status.Stage != StageSprout || status.NextStage != StageSapling {
		t.Errorf("status(15) stages = %q -> %q", status.Stage, status.NextStage)
	}
	if status.TargetScore != BreakSapling {
		t.Errorf("status(15).TargetScore = %d, want %d", status.TargetScore, BreakSapling)
	}
	if status.Progress != 50 {
		t.Errorf("status(15).Progress = %v, want 50", status.Progress)
	}

	status = GetGrowthStatus(90)
	if status.Stage != StageAncient || status.Progress != 100 {
		t.Errorf("status(90) = %+v", status)
	}
	if status.NextStage != "Max Stage" {
		t.Errorf("status(90).NextStage = %q", status.NextStage)
	}
}
