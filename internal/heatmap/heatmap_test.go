package heatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/momentum/internal/activity"
	"github.com/ayoisaiah/momentum/internal/apperr"
	"github.com/ayoisaiah/momentum/internal/timeutil"
)

func TestLevel(t *testing.T) {
	cases := []struct {
		Name                 string
		Focus, Tasks, Habits int
		Want                 int
	}{
		{"no activity", 0, 0, 0, 0},
		{"long focus only", 65, 0, 0, 2},
		{"exactly an hour of focus", 60, 0, 0, 2},
		{"short focus only", 59, 0, 0, 1},
		{"tasks only", 0, 12, 0, 1},
		{"habits only", 0, 0, 9, 1},
		{"two types below threshold", 30, 2, 0, 2},
		{"two types at threshold", 0, 4, 1, 3},
		{"two types fractional minutes", 89, 3, 0, 2},
		{"three types below threshold", 90, 3, 1, 3},
		{"three types above threshold", 300, 5, 3, 4},
		{"three types at threshold", 30, 5, 2, 4},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Want, Level(tc.Focus, tc.Tasks, tc.Habits))
		})
	}
}

func TestValidateWeeks(t *testing.T) {
	assert.NoError(t, ValidateWeeks(1))
	assert.NoError(t, ValidateWeeks(52))
	assert.True(t, apperr.IsValidation(ValidateWeeks(0)))
	assert.True(t, apperr.IsValidation(ValidateWeeks(53)))
}

func TestRange(t *testing.T) {
	start, end := Range("2025-03-14", 1)
	assert.Equal(t, timeutil.DayKey("2025-03-08"), start)
	assert.Equal(t, timeutil.DayKey("2025-03-14"), end)

	start, _ = Range("2025-03-14", 52)
	assert.Equal(t, 52*7-1, timeutil.DaysBetween(start, "2025-03-14"))
}

func TestBuild(t *testing.T) {
	daily := activity.Daily{
		Focus:  activity.Totals{"2025-03-10": 90, "2025-03-12": 25},
		Tasks:  activity.Totals{"2025-03-10": 3},
		Habits: activity.Totals{"2025-03-10": 1, "2025-03-11": 2},
	}

	days := Build("2025-03-09", "2025-03-12", daily)
	require.Len(t, days, 4)

	assert.Equal(t, Day{Date: "2025-03-09"}, days[0])
	assert.Equal(t, Day{
		Date:            "2025-03-10",
		FocusMinutes:    90,
		TasksCompleted:  3,
		HabitsCompleted: 1,
		Level:           3,
		TotalActivity:   94,
	}, days[1])
	assert.Equal(t, 1, days[2].Level)
	assert.Equal(t, 2, days[2].TotalActivity)
	assert.Equal(t, 1, days[3].Level)
	assert.Equal(t, 25, days[3].TotalActivity)
}

func TestBuildEmptyMaps(t *testing.T) {
	days := Build("2025-03-01", "2025-03-07", activity.Daily{})
	require.Len(t, days, 7)

	for _, d := range days {
		assert.Zero(t, d.Level)
		assert.Zero(t, d.TotalActivity)
	}
}
