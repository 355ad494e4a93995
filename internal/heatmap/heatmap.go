// Package heatmap classifies daily activity into intensity levels for the
// calendar heatmap
package heatmap

import (
	"github.com/ayoisaiah/momentum/internal/activity"
	"github.com/ayoisaiah/momentum/internal/apperr"
	"github.com/ayoisaiah/momentum/internal/timeutil"
)

const (
	MinWeeks = 1
	MaxWeeks = 52

	// MaxLevel is the highest intensity level.
	MaxLevel = 4
)

// Scoring weights and thresholds. These are a fixed contract shared with
// every heatmap consumer and must not be tuned.
const (
	minutesPerPoint  = 30.0
	pointsPerTask    = 1.0
	pointsPerHabit   = 2.0
	longFocusMinutes = 60
	twoTypeThreshold = 6.0
	allTypeThreshold = 10.0
)

var errInvalidWeeks = &apperr.Error{
	Kind:    apperr.KindValidation,
	Message: "weeks must be between %d and %d, got %d",
}

// Day is one cell of the heatmap.
type Day struct {
	Date            timeutil.DayKey `json:"date"             yaml:"date"`
	FocusMinutes    int             `json:"focus_minutes"    yaml:"focus_minutes"`
	TasksCompleted  int             `json:"tasks_completed"  yaml:"tasks_completed"`
	HabitsCompleted int             `json:"habits_completed" yaml:"habits_completed"`
	// Level is the weighted intensity from 0 to 4.
	Level int `json:"level" yaml:"level"`
	// TotalActivity is the unweighted sum of the three counts.
	TotalActivity int `json:"total_activity" yaml:"total_activity"`
}

// Level classifies a day's activity.
func Level(focusMinutes, tasksCompleted, habitsCompleted int) int {
	var types int

	for _, v := range []int{focusMinutes, tasksCompleted, habitsCompleted} {
		if v != 0 {
			types++
		}
	}

	score := float64(focusMinutes)/minutesPerPoint +
		float64(tasksCompleted)*pointsPerTask +
		float64(habitsCompleted)*pointsPerHabit

	switch types {
	case 0:
		return 0
	case 1:
		if focusMinutes >= longFocusMinutes {
			return 2
		}

		return 1
	case 2:
		if score >= twoTypeThreshold {
			return 3
		}

		return 2
	default:
		if score >= allTypeThreshold {
			return 4
		}

		return 3
	}
}

// ValidateWeeks checks that weeks is within the supported range.
func ValidateWeeks(weeks int) error {
	if weeks < MinWeeks || weeks > MaxWeeks {
		return errInvalidWeeks.Fmt(MinWeeks, MaxWeeks, weeks)
	}

	return nil
}

// Range returns the first and last day of a heatmap of the given number of
// weeks ending on today.
func Range(today timeutil.DayKey, weeks int) (start, end timeutil.DayKey) {
	return today.AddDays(-(weeks*7 - 1)), today
}

// Build returns one Day for every day from start to end inclusive, ascending.
// Days with no activity are included at level 0.
func Build(start, end timeutil.DayKey, daily activity.Daily) []Day {
	keys := timeutil.DayRange(start, end)
	days := make([]Day, 0, len(keys))

	for _, k := range keys {
		focus := daily.Focus.Get(k)
		tasks := daily.Tasks.Get(k)
		habits := daily.Habits.Get(k)

		days = append(days, Day{
			Date:            k,
			FocusMinutes:    focus,
			TasksCompleted:  tasks,
			HabitsCompleted: habits,
			Level:           Level(focus, tasks, habits),
			TotalActivity:   focus + tasks + habits,
		})
	}

	return days
}
