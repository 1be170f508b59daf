package service

import "math"

// Growth stages of the garden tree, derived from the growth score.
const (
	StageSeed    = "seed"
	StageSprout  = "sprout"
	StageSapling = "sapling"
	StageTree    = "tree"
	StageAncient = "ancient"
)

// Stage breakpoints. The score below which each stage applies; the
// final stage has no upper bound.
const (
	BreakSprout  = 10
	BreakSapling = 30
	BreakTree    = 60
	BreakAncient = 90
)

// GrowthStatus is the derived presentation of a growth score: the
// current stage, the next stage to reach, and progress toward it.
type GrowthStatus struct {
	Stage        string  `json:"stage"`
	NextStage    string  `json:"next_stage"`
	CurrentScore int     `json:"current_score"`
	TargetScore  int     `json:"target_score"`
	Progress     float64 `json:"progress"`
}

// Milestone is a named score threshold shown as the next goal.
type Milestone struct {
	Threshold int    `json:"threshold"`
	Label     string `json:"label"`
}

var milestones = []Milestone{
	{Threshold: 25, Label: "First Sprout"},
	{Threshold: 50, Label: "Growing Strong"},
	{Threshold: 75, Label: "Flourishing Tree"},
	{Threshold: 100, Label: "Ancient Wisdom"},
}

// StageFor maps a growth score to its stage label.
func StageFor(score int) string {
	switch {
	case score < BreakSprout:
		return StageSeed
	case score < BreakSapling:
		return StageSprout
	case score < BreakTree:
		return StageSapling
	case score < BreakAncient:
		return StageTree
	default:
		return StageAncient
	}
}

// NextMilestone returns the first milestone above the score. Once every
// threshold is passed the last milestone stays as a permanent ceiling.
func NextMilestone(score int) Milestone {
	for _, m := range milestones {
		if m.Threshold > score {
			return m
		}
	}
	return milestones[len(milestones)-1]
}

// GetGrowthStatus calculates the stage progression for a score.
func GetGrowthStatus(score int) GrowthStatus {
	var status GrowthStatus
	status.CurrentScore = score

	switch {
	case score >= BreakAncient:
		status.Stage = StageAncient
		status.NextStage = "Max Stage"
		status.TargetScore = BreakAncient
		status.Progress = 100

	case score >= BreakTree:
		status.Stage = StageTree
		status.NextStage = StageAncient
		status.TargetScore = BreakAncient
		status.Progress = (float64(score) / float64(BreakAncient)) * 100

	case score >= BreakSapling:
		status.Stage = StageSapling
		status.NextStage = StageTree
		status.TargetScore = BreakTree
		status.Progress = (float64(score) / float64(BreakTree)) * 100

	case score >= BreakSprout:
		status.Stage = StageSprout
		status.NextStage = StageSapling
		status.TargetScore = BreakSapling
		status.Progress = (float64(score) / float64(BreakSapling)) * 100

	default:
		status.Stage = StageSeed
		status.NextStage = StageSprout
		status.TargetScore = BreakSprout
		if score == 0 {
			status.Progress = 0
		} else {
			status.Progress = (float64(score) / float64(BreakSprout)) * 100
		}
	}

	// Round progress to 2 decimal places
	status.Progress = math.Round(status.Progress*100) / 100

	return status
}
