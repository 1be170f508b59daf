package service

// Canonical activity types. Older clients used mood_logged and
// journal_written for the same logical activities; those are folded
// into the canonical names at the service boundary.
const (
	ActivityMood        = "mood"
	ActivityJournal     = "journal"
	ActivityResource    = "resource"
	ActivityGame        = "game"
	ActivityCheckin     = "checkin"
	ActivityTreeWatered = "tree_watered"
	ActivityGratitude   = "gratitude"
)

// Points awarded per accepted activity, fixed at write time.
var activityPoints = map[string]int{
	ActivityMood:        5,
	ActivityJournal:     10,
	ActivityResource:    8,
	ActivityGame:        5,
	ActivityCheckin:     5,
	ActivityTreeWatered: 5,
	ActivityGratitude:   10,
}

// Daily caps per activity type. Types absent from the table are
// uncapped.
var dailyCaps = map[string]int{
	ActivityMood:        3,
	ActivityJournal:     2,
	ActivityResource:    5,
	ActivityGame:        3,
	ActivityCheckin:     1,
	ActivityTreeWatered: 1,
}

// Activity types that count toward the consecutive-day streak.
var streakEligible = map[string]bool{
	ActivityCheckin: true,
	ActivityJournal: true,
	ActivityMood:    true,
}

var legacyAliases = map[string]string{
	"mood_logged":     ActivityMood,
	"journal_written": ActivityJournal,
}

// NormalizeActivityType maps legacy aliases onto the canonical
// enumeration and reports whether the result is a known type.
func NormalizeActivityType(activityType string) (string, bool) {
	if canonical, ok := legacyAliases[activityType]; ok {
		activityType = canonical
	}
	_, known := activityPoints[activityType]
	return activityType, known
}

// PointsFor returns the fixed point value for a canonical activity type.
func PointsFor(activityType string) int {
	return activityPoints[activityType]
}

// DailyCapFor returns the daily cap for a canonical activity type and
// whether the type is capped at all.
func DailyCapFor(activityType string) (int, bool) {
	limit, ok := dailyCaps[activityType]
	return limit, ok
}

// IsStreakEligible reports whether the activity type advances the
// consecutive-day streak.
func IsStreakEligible(activityType string) bool {
	return streakEligible[activityType]
}
