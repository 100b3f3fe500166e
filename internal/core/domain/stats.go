package domain

import (
	"sort"
	"time"
)

const (
	// DailyRetentionDays is how many distinct dates of per-day reading
	// minutes are kept; older dates are pruned on write.
	DailyRetentionDays = 90

	// DateKeyLayout is the map key format for daily minutes.
	DateKeyLayout = "2006-01-02"
)

// DailyMinutes maps a local date key to minutes read on that date.
type DailyMinutes map[string]int

// DateKey formats t as a daily-minutes map key in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// PruneDaily drops the oldest date keys until at most DailyRetentionDays
// remain. Date keys sort lexicographically in chronological order.
func PruneDaily(m DailyMinutes) {
	if len(m) <= DailyRetentionDays {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys[:len(keys)-DailyRetentionDays] {
		delete(m, k)
	}
}

// SessionMinutes converts an elapsed session duration to whole minutes,
// truncating partial minutes. Negative durations count as zero.
func SessionMinutes(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / time.Minute)
}
