// Package streak computes consecutive-day activity streaks
package streak

import (
	"slices"
	"time"

	"github.com/ayoisaiah/momentum/internal/activity"
	"github.com/ayoisaiah/momentum/internal/timeutil"
)

// Result holds the current and best streaks in days. Best is never less than
// Current.
type Result struct {
	Current int `json:"current_streak" yaml:"current_streak"`
	Best    int `json:"best_streak"    yaml:"best_streak"`
}

// Calculate returns the streaks of days relative to now.
//
// The current streak counts back from today, or from yesterday if today has
// no activity yet, and stops at the first missing day. The best streak is
// the longest run of consecutive days in the set.
func Calculate(days activity.DaySet, now time.Time) Result {
	if len(days) == 0 {
		return Result{}
	}

	return Result{
		Current: current(days, now),
		Best:    best(days),
	}
}

func current(days activity.DaySet, now time.Time) int {
	today := timeutil.ToDayKey(now)
	yesterday := today.AddDays(-1)

	var cursor timeutil.DayKey

	switch {
	case days.Has(today):
		cursor = today
	case days.Has(yesterday):
		cursor = yesterday
	default:
		return 0
	}

	var n int

	for days.Has(cursor) {
		n++
		cursor = cursor.AddDays(-1)
	}

	return n
}

func best(days activity.DaySet) int {
	// YYYY-MM-DD keys sort chronologically
	keys := days.Days()
	slices.Sort(keys)

	longest, run := 1, 1

	for i := 1; i < len(keys); i++ {
		if timeutil.DaysBetween(keys[i-1], keys[i]) == 1 {
			run++
		} else {
			run = 1
		}

		longest = max(longest, run)
	}

	return longest
}
