package service

import "testing"

func TestNormalizeActivityType(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		known bool
	}{
		{"mood", ActivityMood, true},
		{"mood_logged", ActivityMood, true},
		{"journal_written", ActivityJournal, true},
		{"gratitude", ActivityGratitude, true},
		{"tree_watered", ActivityTreeWatered, true},
		{"unknown_type", "unknown_type", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, known := NormalizeActivityType(tc.in)
		if got != tc.want || known != tc.known {
			t.Errorf("NormalizeActivityType(%q) = (%q, %v), want (%q, %v)",
				tc.in, got, known, tc.want, tc.known)
		}
	}
}

func TestPointsFor(t *testing.T) {
	cases := map[string]int{
		ActivityMood:        5,
		ActivityJournal:     10,
		ActivityResource:    8,
		ActivityGame:        5,
		ActivityCheckin:     5,
		ActivityTreeWatered: 5,
		ActivityGratitude:   10,
	}
	for activity, want := range cases {
		if got := PointsFor(activity); got != want {
			t.Errorf("PointsFor(%q) = %d, want %d", activity, got, want)
		}
	}
}

func TestDailyCapFor(t *testing.T) {
	if limit, ok := DailyCapFor(ActivityCheckin); !ok || limit != 1 {
		t.Errorf("DailyCapFor(checkin) = (%d, %v), want (1, true)", limit, ok)
	}
	if _, ok := DailyCapFor(ActivityGratitude); ok {
		t.Error("gratitude should be uncapped")
	}
}

func TestIsStreakEligible(t *testing.T) {
	for _, activity := range []string{ActivityMood, ActivityJournal, ActivityCheckin} {
		if !IsStreakEligible(activity) {
			t.Errorf("%q should be streak eligible", activity)
		}
	}
	for _, activity := range []string{ActivityResource, ActivityGame, ActivityTreeWatered, ActivityGratitude} {
		if IsStreakEligible(activity) {
			t.Errorf("%q should not be streak eligible", activity)
		}
	}
}
