package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/momentum/internal/apperr"
)

var t0 = time.Date(2025, 4, 14, 9, 0, 0, 0, time.UTC)

func newActive(t *testing.T, minutes int) *Session {
	t.Helper()

	sess, err := New("ayo", minutes, "write report", t0)
	require.NoError(t, err)

	return sess
}

func TestNewValidatesDuration(t *testing.T) {
	for _, minutes := range []int{0, -5, 481} {
		_, err := New("ayo", minutes, "", t0)
		assert.True(t, apperr.IsValidation(err), minutes)
	}

	for _, minutes := range []int{1, 25, 480} {
		sess, err := New("ayo", minutes, "", t0)
		require.NoError(t, err)
		assert.Equal(t, Active, sess.Status)
		assert.Nil(t, sess.PausedAt)
		assert.Nil(t, sess.CompletedAt)
		assert.NotEmpty(t, sess.ID)
	}
}

func TestPauseResumeAccumulates(t *testing.T) {
	sess := newActive(t, 25)

	require.NoError(t, sess.Pause(t0.Add(5*time.Minute)))
	assert.Equal(t, Paused, sess.Status)
	require.NotNil(t, sess.PausedAt)

	require.NoError(t, sess.Resume(t0.Add(7*time.Minute)))
	assert.Equal(t, Active, sess.Status)
	assert.Nil(t, sess.PausedAt)
	assert.Equal(t, 120, sess.TotalPausedSeconds)

	require.NoError(t, sess.Pause(t0.Add(10*time.Minute)))
	require.NoError(t, sess.Resume(t0.Add(10*time.Minute+30*time.Second)))
	assert.Equal(t, 150, sess.TotalPausedSeconds)
}

func TestCompleteFromPausedFoldsOnce(t *testing.T) {
	sess := newActive(t, 25)

	require.NoError(t, sess.Pause(t0.Add(5*time.Minute)))

	end := t0.Add(8 * time.Minute)
	require.NoError(t, sess.Complete(end))

	assert.Equal(t, Completed, sess.Status)
	assert.Equal(t, 180, sess.TotalPausedSeconds)
	assert.Nil(t, sess.PausedAt)
	require.NotNil(t, sess.CompletedAt)
	assert.True(t, end.Equal(*sess.CompletedAt))

	// a second call must be rejected and must not add the pause again
	err := sess.Complete(t0.Add(20 * time.Minute))
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, 180, sess.TotalPausedSeconds)
}

func TestCancelFromPaused(t *testing.T) {
	sess := newActive(t, 25)

	require.NoError(t, sess.Pause(t0.Add(time.Minute)))
	require.NoError(t, sess.Cancel(t0.Add(4*time.Minute)))

	assert.Equal(t, Cancelled, sess.Status)
	assert.Equal(t, 180, sess.TotalPausedSeconds)
	assert.Nil(t, sess.PausedAt)
	assert.NotNil(t, sess.CompletedAt)
}

func TestInvalidTransitions(t *testing.T) {
	type step func(*Session, time.Time) error

	steps := map[string]step{
		"pause":    (*Session).Pause,
		"resume":   (*Session).Resume,
		"complete": (*Session).Complete,
		"cancel":   (*Session).Cancel,
	}

	t.Run("resume while active", func(t *testing.T) {
		sess := newActive(t, 25)
		err := sess.Resume(t0)
		assert.True(t, errors.Is(err, apperr.ErrInvalidState))
	})

	t.Run("pause while paused", func(t *testing.T) {
		sess := newActive(t, 25)
		require.NoError(t, sess.Pause(t0))
		assert.Error(t, sess.Pause(t0.Add(time.Second)))
	})

	for _, terminal := range []step{(*Session).Complete, (*Session).Cancel} {
		for name, fn := range steps {
			sess := newActive(t, 25)
			require.NoError(t, terminal(sess, t0.Add(time.Minute)))

			before := *sess

			err := fn(sess, t0.Add(2*time.Minute))
			assert.True(t, apperr.IsNotFound(err), "%s from %s", name, before.Status)
			assert.Equal(t, before, *sess, "%s mutated a %s session", name, before.Status)
		}
	}
}

func TestRemainingSeconds(t *testing.T) {
	sess := newActive(t, 25)

	assert.Equal(t, 25*60, RemainingSeconds(sess, t0))
	assert.Equal(t, 25*60-90, RemainingSeconds(sess, t0.Add(90*time.Second)))

	// partial seconds round down
	assert.Equal(t, 25*60-91, RemainingSeconds(sess, t0.Add(90500*time.Millisecond)))

	require.NoError(t, sess.Pause(t0.Add(10*time.Minute)))

	// frozen while paused
	assert.Equal(t, 15*60, RemainingSeconds(sess, t0.Add(10*time.Minute)))
	assert.Equal(t, 15*60, RemainingSeconds(sess, t0.Add(time.Hour)))

	require.NoError(t, sess.Resume(t0.Add(15*time.Minute)))
	assert.Equal(t, 15*60, RemainingSeconds(sess, t0.Add(15*time.Minute)))
	assert.Equal(t, 14*60, RemainingSeconds(sess, t0.Add(16*time.Minute)))
}

func TestRemainingSecondsOvertime(t *testing.T) {
	sess := newActive(t, 1)

	assert.Equal(t, 0, RemainingSeconds(sess, t0.Add(time.Minute)))
	assert.Equal(t, -30, RemainingSeconds(sess, t0.Add(90*time.Second)))
	assert.Equal(t, -1, RemainingSeconds(sess, t0.Add(60500*time.Millisecond)))
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "25:00", FormatRemaining(1500))
	assert.Equal(t, "00:09", FormatRemaining(9))
	assert.Equal(t, "+01:05", FormatRemaining(-65))
	assert.Equal(t, "00:00", FormatRemaining(0))
}
