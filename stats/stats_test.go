package stats

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/momentum/internal/activity"
	"github.com/ayoisaiah/momentum/internal/dashboard"
	"github.com/ayoisaiah/momentum/internal/heatmap"
	"github.com/ayoisaiah/momentum/internal/session"
	"github.com/ayoisaiah/momentum/internal/streak"
	"github.com/ayoisaiah/momentum/internal/timeutil"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func TestMain(m *testing.M) {
	pterm.DisableColor()

	os.Exit(m.Run())
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0 minutes", formatMinutes(0))
	assert.Contains(t, formatMinutes(90), "1 hour")
	assert.Contains(t, formatMinutes(90), "30 minutes")
}

func TestProgressBar(t *testing.T) {
	testCases := []struct {
		percent int
		filled  int
	}{
		{0, 0},
		{50, 10},
		{100, 20},
		{250, 20},
		{-5, 0},
	}

	for _, tc := range testCases {
		bar := progressBar(tc.percent)
		assert.Equal(t, tc.filled, strings.Count(bar, "█"), tc.percent)
		assert.Equal(t, progressWidth-tc.filled, strings.Count(bar, "░"), tc.percent)
	}
}

func TestHeatmapGrid(t *testing.T) {
	// 2024-06-05 is a Wednesday
	start := timeutil.DayKey("2024-06-05")

	days := make([]heatmap.Day, 10)
	for i := range days {
		days[i] = heatmap.Day{Date: start.AddDays(i)}
	}

	grid := heatmapGrid(days)

	for row := range daysInAWeek {
		assert.Len(t, grid[row], 2, "row %d", row)
	}

	// Sunday to Tuesday of the first week are padding
	for row := range 3 {
		assert.Equal(t, " ", grid[row][0])
	}

	assert.Contains(t, grid[3][0], "■")
	// the last day, Friday 2024-06-14, is in the second column
	assert.Contains(t, grid[5][1], "■")
	assert.Equal(t, " ", grid[6][1])
}

func TestPrintHeatmap(t *testing.T) {
	start := timeutil.DayKey("2024-06-04")

	days := heatmap.Build(start, start.AddDays(6), activity.Daily{
		Focus: activity.Totals{"2024-06-10": 90, "2024-06-09": 30},
		Tasks: activity.Totals{"2024-06-10": 2},
	})

	var buf bytes.Buffer

	PrintHeatmap(&buf, days)

	out := plain(buf.String())
	assert.Contains(t, out, "Activity from June 04, 2024 to June 10, 2024")
	assert.Contains(t, out, "Active days: 2 of 7")
	assert.Contains(t, out, "Tasks completed: 2")
	assert.Contains(t, out, "Less")
	assert.Contains(t, out, "Mon Jun 10")

	buf.Reset()

	PrintHeatmap(&buf, heatmap.Build(start, start.AddDays(6), activity.Daily{}))
	assert.Contains(t, buf.String(), noActivityMsg)
}

func TestPrintDashboard(t *testing.T) {
	started := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

	summary := dashboard.Summary{
		Date:         "2024-06-10",
		FocusMinutes: dashboard.Comparison{Today: 90, Yesterday: 45, Change: 100},
		Tasks:        dashboard.Comparison{Today: 1, Yesterday: 2, Change: -50},
		Habits:       dashboard.Progress{Done: 1, Target: 2, Percent: 50},
		FocusGoal:    dashboard.Progress{Done: 90, Target: 120, Percent: 75},
		Streaks: dashboard.Streaks{
			Overall: streak.Result{Current: 4, Best: 9},
		},
		Current: &dashboard.Current{
			Session: &session.Session{
				Status:    session.Paused,
				Task:      "essay",
				StartedAt: started,
			},
			RemainingSeconds: 754,
		},
	}

	var buf bytes.Buffer

	PrintDashboard(&buf, summary, "15:04")

	out := plain(buf.String())
	assert.Contains(t, out, "Monday, June 10 2024")
	assert.Contains(t, out, "+100%")
	assert.Contains(t, out, "-50%")
	assert.Contains(t, out, "Habits: 1/2")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "paused session on essay")
	assert.Contains(t, out, "12:34 remaining")
	assert.Contains(t, out, "Overall")
	assert.Contains(t, out, "9")
}

func TestSessionRows(t *testing.T) {
	started := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.Local)
	ended := started.Add(25 * time.Minute)

	rows := sessionRows([]session.Session{
		{
			Status:          session.Completed,
			DurationMinutes: 25,
			Task:            "essay",
			StartedAt:       started,
			CompletedAt:     &ended,
		},
		{
			Status:          session.Active,
			DurationMinutes: 50,
			StartedAt:       ended,
		},
	}, "15:04")

	assert.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "Jun 10, 2024 09:00", "Jun 10, 2024 09:25", "25m0s", "essay"}, rows[1][:5])
	assert.Equal(t, "completed", plain(rows[1][5]))
	assert.Equal(t, "", rows[2][2])
	assert.Equal(t, "active", plain(rows[2][5]))
}
