package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ayoisaiah/momentum/internal/apperr"
	"github.com/ayoisaiah/momentum/internal/config"
	"github.com/ayoisaiah/momentum/internal/heatmap"
	"github.com/ayoisaiah/momentum/internal/models"
	"github.com/ayoisaiah/momentum/internal/session"
	"github.com/ayoisaiah/momentum/internal/streak"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "momentum-app")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// An existing config file keeps the first-run prompt away.
	if err := os.MkdirAll(dir+"/config/momentum", 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := os.WriteFile(dir+"/config/momentum/config.yml", []byte("user:\n  id: tester\n"), 0o600); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Setenv("XDG_CONFIG_HOME", dir+"/config")
	os.Setenv("XDG_DATA_HOME", dir+"/data")
	os.Unsetenv("MOMENTUM_ENV")
	os.Unsetenv("MOMENTUM_USER")
	xdg.Reload()

	code := m.Run()

	_ = os.RemoveAll(dir)

	os.Exit(code)
}

// run executes the CLI and returns what it wrote to config.Stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	stdout := config.Stdout
	config.Stdout = &buf

	defer func() {
		config.Stdout = stdout
	}()

	err := Get().RunContext(
		context.Background(),
		append([]string{"momentum", "--no-color"}, args...),
	)

	return buf.String(), err
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)

	return v
}

type sessionJSON struct {
	session.Session
	RemainingSeconds int `json:"remaining_seconds"`
}

func TestSessionCommands(t *testing.T) {
	for _, driver := range []string{"bolt", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			user := "cli-session-" + driver
			base := []string{"--user", user, "--driver", driver}

			out, err := run(t, append(base, "start", "--json", "--minutes", "30", "write", "tests")...)
			require.NoError(t, err)

			started := decode[sessionJSON](t, out)
			assert.Equal(t, session.Active, started.Status)
			assert.Equal(t, 30, started.DurationMinutes)
			assert.Equal(t, "write tests", started.Task)
			assert.Equal(t, user, started.UserID)
			assert.InDelta(t, 1800, started.RemainingSeconds, 5)

			_, err = run(t, append(base, "start")...)
			assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

			out, err = run(t, append(base, "status", "--json")...)
			require.NoError(t, err)
			assert.Equal(t, started.ID, decode[sessionJSON](t, out).ID)

			out, err = run(t, append(base, "pause", "--json")...)
			require.NoError(t, err)
			assert.Equal(t, session.Paused, decode[sessionJSON](t, out).Status)

			_, err = run(t, append(base, "pause")...)
			assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))

			out, err = run(t, append(base, "resume", "--json", started.ID)...)
			require.NoError(t, err)
			assert.Equal(t, session.Active, decode[sessionJSON](t, out).Status)

			out, err = run(t, append(base, "complete", "--json")...)
			require.NoError(t, err)

			completed := decode[sessionJSON](t, out)
			assert.Equal(t, session.Completed, completed.Status)
			assert.NotNil(t, completed.CompletedAt)

			out, err = run(t, append(base, "status", "--json")...)
			require.NoError(t, err)
			assert.Equal(t, "null", strings.TrimSpace(out))

			_, err = run(t, append(base, "complete")...)
			assert.True(t, apperr.IsNotFound(err))

			out, err = run(t, append(base, "list", "--json", "--since", "today")...)
			require.NoError(t, err)

			listed := decode[[]session.Session](t, out)
			require.Len(t, listed, 1)
			assert.Equal(t, started.ID, listed[0].ID)
		})
	}
}

func TestCancelWithoutPrompt(t *testing.T) {
	base := []string{"--user", "cli-cancel"}

	_, err := run(t, append(base, "start", "--minutes", "10")...)
	require.NoError(t, err)

	out, err := run(t, append(base, "cancel", "--yes", "--yaml")...)
	require.NoError(t, err)

	var cancelled session.Session
	require.NoError(t, yaml.Unmarshal([]byte(out), &cancelled))
	assert.Equal(t, session.Cancelled, cancelled.Status)

	// A cancelled session frees the slot for a new one.
	_, err = run(t, append(base, "start", "--minutes", "10")...)
	assert.NoError(t, err)
}

func TestStartValidation(t *testing.T) {
	_, err := run(t, "--user", "cli-invalid", "start", "--minutes", "0")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestTasksAndHabits(t *testing.T) {
	base := []string{"--user", "cli-records"}

	for _, title := range []string{"task 10", "task 2", "read paper"} {
		_, err := run(t, append(base, "task", "add", title)...)
		require.NoError(t, err)
	}

	out, err := run(t, append(base, "task", "done", "--json", "READ PAPER")...)
	require.NoError(t, err)

	done := decode[models.Task](t, out)
	assert.True(t, done.Completed)
	assert.Equal(t, "read paper", done.Title)

	out, err = run(t, append(base, "task", "list", "--json")...)
	require.NoError(t, err)

	titles := func(tasks []models.Task) []string {
		var s []string
		for _, task := range tasks {
			s = append(s, task.Title)
		}

		return s
	}

	open := decode[[]models.Task](t, out)
	if diff := cmp.Diff([]string{"task 2", "task 10"}, titles(open)); diff != "" {
		t.Errorf("open tasks mismatch (-want +got):\n%s", diff)
	}

	out, err = run(t, append(base, "task", "list", "--all", "--json")...)
	require.NoError(t, err)
	assert.Equal(t, []string{"task 2", "task 10", "read paper"}, titles(decode[[]models.Task](t, out)))

	out, err = run(t, append(base, "habit", "add", "--json", "stretch")...)
	require.NoError(t, err)

	habit := decode[models.Habit](t, out)

	out, err = run(t, append(base, "habit", "check", "--json", habit.ID[:6])...)
	require.NoError(t, err)
	assert.Equal(t, habit.ID, decode[models.HabitCompletion](t, out).HabitID)

	// Checking twice on the same day is a no-op.
	_, err = run(t, append(base, "habit", "check", "stretch")...)
	require.NoError(t, err)

	out, err = run(t, append(base, "streak", "--json", "--source", "habit")...)
	require.NoError(t, err)
	assert.Equal(t, streak.Result{Current: 1, Best: 1}, decode[streak.Result](t, out))

	out, err = run(t, append(base, "streak", "--json", "--source", "task")...)
	require.NoError(t, err)
	assert.Equal(t, streak.Result{Current: 1, Best: 1}, decode[streak.Result](t, out))

	_, err = run(t, append(base, "habit", "archive", "stretch")...)
	require.NoError(t, err)

	out, err = run(t, append(base, "habit", "list", "--json")...)
	require.NoError(t, err)
	assert.Empty(t, decode[[]models.Habit](t, out))

	_, err = run(t, append(base, "habit", "check", "stretch")...)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))

	out, err = run(t, append(base, "streak", "--json", "--source", "habit")...)
	require.NoError(t, err)
	assert.Equal(t, streak.Result{}, decode[streak.Result](t, out))

	_, err = run(t, append(base, "task", "done", "missing")...)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestStreakUnknownSource(t *testing.T) {
	_, err := run(t, "--user", "cli-streak", "streak", "--source", "sleep")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestHeatmapCommand(t *testing.T) {
	out, err := run(t, "--user", "cli-heatmap", "heatmap", "--json", "--weeks", "2")
	require.NoError(t, err)

	days := decode[[]heatmap.Day](t, out)
	assert.Len(t, days, 14)

	for _, d := range days {
		assert.Zero(t, d.Level)
	}

	_, err = run(t, "--user", "cli-heatmap", "heatmap", "--weeks", "53")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestDashboardCommand(t *testing.T) {
	base := []string{"--user", "cli-dashboard"}

	_, err := run(t, append(base, "start", "--minutes", "45", "deep work")...)
	require.NoError(t, err)

	out, err := run(t, append(base, "dashboard", "--json")...)
	require.NoError(t, err)

	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &summary))

	assert.Contains(t, summary, "current_session")
	assert.Contains(t, summary, "streaks")
	assert.Contains(t, summary, "focus_goal")
}
