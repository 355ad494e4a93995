// Package stats reports streaks, the activity heatmap and the dashboard,
// both in the terminal and over HTTP
package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/momentum/internal/activity"
	"github.com/ayoisaiah/momentum/internal/dashboard"
	"github.com/ayoisaiah/momentum/internal/heatmap"
	"github.com/ayoisaiah/momentum/internal/session"
	"github.com/ayoisaiah/momentum/internal/streak"
	"github.com/ayoisaiah/momentum/internal/ui"
)

const (
	barChartChar   = "▇"
	progressWidth  = 20
	daysInAWeek    = 7
	noActivityMsg  = "No activity recorded in this period"
	dayLabelLayout = "Mon Jan 02"
)

var weekdayLabels = [daysInAWeek]string{"", "Mon", "", "Wed", "", "Fri", ""}

// formatMinutes renders minutes as a human duration limited to hours.
func formatMinutes(minutes int) string {
	if minutes == 0 {
		return "0 minutes"
	}

	//nolint:gomnd // limit to first 2 units
	return durafmt.Parse(time.Duration(minutes) * time.Minute).
		LimitToUnit("hours").
		LimitFirstN(2).
		String()
}

// formatChange renders a percent change with its sign.
func formatChange(change int) string {
	switch {
	case change > 0:
		return ui.Green(fmt.Sprintf("+%d%%", change))
	case change < 0:
		return ui.Red(fmt.Sprintf("%d%%", change))
	}

	return "0%"
}

// progressBar renders a fixed-width bar for a 0..100 percentage.
func progressBar(percent int) string {
	filled := max(0, min(percent, 100)) * progressWidth / 100

	return ui.Green(strings.Repeat("█", filled)) +
		strings.Repeat("░", progressWidth-filled)
}

func sourceLabel(src activity.Source) string {
	switch src {
	case activity.Focus:
		return "Focus sessions"
	case activity.Task:
		return "Tasks"
	case activity.Habit:
		return "Habits"
	}

	return "Overall"
}

func streakRow(label string, r streak.Result) []string {
	return []string{
		label,
		ui.Green(strconv.Itoa(r.Current)),
		strconv.Itoa(r.Best),
	}
}

// PrintStreaks writes a table of streaks in display order.
func PrintStreaks(w io.Writer, results map[activity.Source]streak.Result) {
	data := [][]string{{"ACTIVITY", "CURRENT", "BEST"}}

	for _, src := range append([]activity.Source{activity.Overall}, activity.Sources...) {
		r, ok := results[src]
		if !ok {
			continue
		}

		data = append(data, streakRow(sourceLabel(src), r))
	}

	ui.PrintTable(data, w)
}

// heatmapGrid lays days out in weekday rows, Sunday first, one column per
// week.
func heatmapGrid(days []heatmap.Day) [daysInAWeek][]string {
	var grid [daysInAWeek][]string

	if len(days) == 0 {
		return grid
	}

	offset := int(days[0].Date.Time().Weekday())
	columns := (offset + len(days) + daysInAWeek - 1) / daysInAWeek

	for row := range daysInAWeek {
		cells := make([]string, columns)

		for col := range columns {
			i := col*daysInAWeek + row - offset
			if i < 0 || i >= len(days) {
				cells[col] = " "
				continue
			}

			cells[col] = ui.HeatCell(days[i].Level)
		}

		grid[row] = cells
	}

	return grid
}

type heatmapTotals struct {
	focusMinutes int
	tasks        int
	habits       int
	activeDays   int
}

func sumHeatmap(days []heatmap.Day) heatmapTotals {
	var t heatmapTotals

	for _, d := range days {
		t.focusMinutes += d.FocusMinutes
		t.tasks += d.TasksCompleted
		t.habits += d.HabitsCompleted

		if d.TotalActivity > 0 {
			t.activeDays++
		}
	}

	return t
}

// focusChart is a bar chart of focus minutes over the last week of days.
func focusChart(days []heatmap.Day) string {
	if len(days) == 0 {
		return ""
	}

	recent := days[max(0, len(days)-daysInAWeek):]

	bars := make(pterm.Bars, 0, len(recent))
	for _, d := range recent {
		bars = append(bars, pterm.Bar{
			Label: d.Date.Time().Format(dayLabelLayout),
			Value: d.FocusMinutes,
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return ui.Blue("\nFocus minutes, last 7 days\n") + chart
}

// PrintHeatmap writes the heatmap grid with a legend, the period totals and
// a chart of the most recent week.
func PrintHeatmap(w io.Writer, days []heatmap.Day) {
	if len(days) == 0 {
		return
	}

	first := days[0].Date.Time().Format("January 02, 2006")
	last := days[len(days)-1].Date.Time().Format("January 02, 2006")

	var b strings.Builder

	b.WriteString(ui.Blue(fmt.Sprintf("Activity from %s to %s", first, last)))
	b.WriteString("\n\n")

	for row, cells := range heatmapGrid(days) {
		fmt.Fprintf(&b, "%-4s%s\n", weekdayLabels[row], strings.Join(cells, " "))
	}

	fmt.Fprintf(&b, "\n    %s\n\n", ui.HeatLegend(heatmap.MaxLevel+1))

	totals := sumHeatmap(days)
	if totals.activeDays == 0 {
		b.WriteString(noActivityMsg + "\n")
		fmt.Fprint(w, b.String())

		return
	}

	fmt.Fprintf(&b, "Active days: %s of %d\n", ui.Green(totals.activeDays), len(days))
	fmt.Fprintf(&b, "Focus time: %s\n", ui.Green(formatMinutes(totals.focusMinutes)))
	fmt.Fprintf(&b, "Tasks completed: %s\n", ui.Green(totals.tasks))
	fmt.Fprintf(&b, "Habit check-ins: %s\n", ui.Green(totals.habits))
	b.WriteString(focusChart(days))

	fmt.Fprintln(w, strings.TrimRight(b.String(), "\n"))
}

// PrintCurrent writes a one-line status of the open session.
func PrintCurrent(w io.Writer, sess *session.Session, remaining int, timeFormat string) {
	status := ui.Green("running")
	if sess.Status == session.Paused {
		status = ui.Magenta("paused")
	}

	task := ""
	if sess.Task != "" {
		task = " on " + ui.Highlight(sess.Task)
	}

	fmt.Fprintf(
		w,
		"%s session%s started at %s: %s remaining\n",
		status,
		task,
		sess.StartedAt.Local().Format(timeFormat),
		ui.Cyan(session.FormatRemaining(remaining)),
	)
}

// PrintDashboard writes the dashboard summary.
func PrintDashboard(w io.Writer, s dashboard.Summary, timeFormat string) {
	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("Dashboard for %s", s.Date.Time().Format("Monday, January 02 2006"))

	var b strings.Builder

	b.WriteString(header)

	b.WriteString(ui.Blue("Today") + "\n")
	fmt.Fprintf(
		&b,
		"Focus time: %s (%s vs yesterday)\n",
		ui.Green(formatMinutes(s.FocusMinutes.Today)),
		formatChange(s.FocusMinutes.Change),
	)
	fmt.Fprintf(
		&b,
		"Tasks completed: %s (%s vs yesterday)\n",
		ui.Green(s.Tasks.Today),
		formatChange(s.Tasks.Change),
	)
	fmt.Fprintf(
		&b,
		"Habits: %d/%d %s %d%%\n",
		s.Habits.Done,
		s.Habits.Target,
		progressBar(s.Habits.Percent),
		s.Habits.Percent,
	)
	fmt.Fprintf(
		&b,
		"Focus goal: %s %d%% of %s\n",
		progressBar(s.FocusGoal.Percent),
		s.FocusGoal.Percent,
		formatMinutes(s.FocusGoal.Target),
	)
	fmt.Fprintf(
		&b,
		"Best day: %s\n",
		ui.Green(formatMinutes(s.BestDayFocusMinutes)),
	)

	if s.Current != nil {
		b.WriteString("\n" + ui.Blue("Current session") + "\n")
		PrintCurrent(&b, s.Current.Session, s.Current.RemainingSeconds, timeFormat)
	}

	b.WriteString("\n" + ui.Blue("Streaks (days)") + "\n")
	fmt.Fprint(w, b.String())

	PrintStreaks(w, map[activity.Source]streak.Result{
		activity.Overall: s.Streaks.Overall,
		activity.Focus:   s.Streaks.Focus,
		activity.Task:    s.Streaks.Tasks,
		activity.Habit:   s.Streaks.Habits,
	})
}
