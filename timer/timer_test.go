package timer

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/momentum/internal/clock"
	"github.com/ayoisaiah/momentum/internal/session"
	"github.com/ayoisaiah/momentum/internal/testutil"
	"github.com/ayoisaiah/momentum/store"
)

var start = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc   *session.Service
	timer *Timer
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{now: start}
	db := testutil.OpenDB(t, store.DriverBolt)
	f.svc = session.NewService(db, session.WithClock(clock.Func(func() time.Time {
		return f.now
	})))
	f.timer = New(context.Background(), f.svc, Options{
		UserID:     "ada",
		TimeFormat: "15:04",
	})

	return f
}

// deliver runs cmd and feeds its message back into the timer.
func (f *fixture) deliver(t *testing.T, cmd tea.Cmd) tea.Cmd {
	t.Helper()

	require.NotNil(t, cmd)

	_, next := f.timer.Update(cmd())

	return next
}

func press(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}

	_, ok := cmd().(tea.QuitMsg)

	return ok
}

func TestTimerShowsRemaining(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Start(context.Background(), "ada", 25, "essay")
	require.NoError(t, err)

	f.now = start.Add(10*time.Minute + 26*time.Second)

	assert.Contains(t, f.timer.View(), "Loading session")

	next := f.deliver(t, f.timer.fetch())
	assert.Nil(t, next)

	view := f.timer.View()
	assert.Contains(t, view, "14:34")
	assert.Contains(t, view, "essay")
	assert.Contains(t, view, "FOCUS")
	assert.Contains(t, view, "until "+start.Add(25*time.Minute).Local().Format("15:04"))
}

func TestTimerOvertime(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Start(context.Background(), "ada", 5, "")
	require.NoError(t, err)

	f.now = start.Add(6*time.Minute + 5*time.Second)
	f.deliver(t, f.timer.fetch())

	view := f.timer.View()
	assert.Contains(t, view, "+01:05")
	assert.Contains(t, view, "overtime")
	assert.InDelta(t, 1.0, f.timer.elapsedFraction(), 0.0001)
}

func TestTimerTogglePause(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Start(context.Background(), "ada", 25, "")
	require.NoError(t, err)

	f.deliver(t, f.timer.fetch())

	f.now = start.Add(5 * time.Minute)
	_, cmd := f.timer.Update(press("p"))
	f.deliver(t, cmd)

	require.Equal(t, session.Paused, f.timer.Session().Status)
	assert.Contains(t, f.timer.View(), "[Paused]")

	// The countdown is frozen while paused.
	f.now = start.Add(15 * time.Minute)
	assert.Contains(t, f.timer.View(), "20:00")

	_, cmd = f.timer.Update(press("p"))
	f.deliver(t, cmd)

	require.Equal(t, session.Active, f.timer.Session().Status)
	assert.Equal(t, 600, f.timer.Session().TotalPausedSeconds)
	assert.Contains(t, f.timer.View(), "20:00")
}

func TestTimerComplete(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Start(context.Background(), "ada", 25, "")
	require.NoError(t, err)

	f.deliver(t, f.timer.fetch())

	f.now = start.Add(25 * time.Minute)
	_, cmd := f.timer.Update(press("c"))
	next := f.deliver(t, cmd)

	assert.True(t, isQuit(next))
	assert.Equal(t, session.Completed, f.timer.Session().Status)
	assert.Contains(t, f.timer.View(), "complete")

	_, err = f.svc.Current(context.Background(), "ada")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestTimerNoSession(t *testing.T) {
	f := newFixture(t)

	next := f.deliver(t, f.timer.fetch())

	assert.True(t, isQuit(next))
	assert.Contains(t, f.timer.View(), "No focus session in progress")
	assert.NoError(t, f.timer.err)
}

func TestTimerFollowsExternalChanges(t *testing.T) {
	f := newFixture(t)

	sess, err := f.svc.Start(context.Background(), "ada", 25, "")
	require.NoError(t, err)

	f.deliver(t, f.timer.fetch())

	_, err = f.svc.Cancel(context.Background(), "ada", sess.ID)
	require.NoError(t, err)

	next := f.deliver(t, f.timer.fetch())

	assert.True(t, isQuit(next))
	assert.Nil(t, f.timer.Session())
}

func TestTimerKeysWithoutSession(t *testing.T) {
	f := newFixture(t)

	_, cmd := f.timer.Update(press("p"))
	assert.Nil(t, cmd)

	_, cmd = f.timer.Update(press("q"))
	assert.True(t, isQuit(cmd))
}

func TestTimerTicks(t *testing.T) {
	f := newFixture(t)

	for i := 1; i <= refreshEvery; i++ {
		_, cmd := f.timer.Update(tickMsg(start))
		assert.NotNil(t, cmd)
	}

	assert.Equal(t, refreshEvery, f.timer.ticks)
}

func TestTimerResize(t *testing.T) {
	f := newFixture(t)

	f.timer.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.Equal(t, 26, f.timer.progress.Width)

	f.timer.Update(tea.WindowSizeMsg{Width: 200, Height: 10})
	assert.Equal(t, maxBarWidth, f.timer.progress.Width)
}
