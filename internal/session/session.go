// Package session defines focus sessions and the state machine that moves
// them from start to completion
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a focus session.
type Status string

const (
	Active    Status = "ACTIVE"
	Paused    Status = "PAUSED"
	Completed Status = "COMPLETED"
	Cancelled Status = "CANCELLED"
)

const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 480
)

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == Completed || s == Cancelled
}

// Open reports whether s counts towards the one-open-session-per-user limit.
func (s Status) Open() bool {
	return s == Active || s == Paused
}

// Session is a timed focus session. Remaining time is derived from the
// persisted fields alone, so nothing needs to tick while it runs.
type Session struct {
	StartedAt time.Time `json:"started_at"             yaml:"started_at"`
	// PausedAt is set iff Status is Paused.
	PausedAt *time.Time `json:"paused_at,omitempty"    yaml:"paused_at,omitempty"`
	// CompletedAt is set iff the session is Completed or Cancelled. For a
	// cancelled session it is the time it ended.
	CompletedAt        *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	ID                 string     `json:"id"                     yaml:"id"`
	UserID             string     `json:"user_id"                yaml:"user_id"`
	Status             Status     `json:"status"                 yaml:"status"`
	Task               string     `json:"task,omitempty"         yaml:"task,omitempty"`
	DurationMinutes    int        `json:"duration_minutes"       yaml:"duration_minutes"`
	TotalPausedSeconds int        `json:"total_paused_seconds"   yaml:"total_paused_seconds"`
}

// New creates an active session that starts at now.
func New(userID string, durationMinutes int, task string, now time.Time) (*Session, error) {
	if durationMinutes < MinDurationMinutes ||
		durationMinutes > MaxDurationMinutes {
		return nil, errInvalidDuration.Fmt(
			MinDurationMinutes,
			MaxDurationMinutes,
			durationMinutes,
		)
	}

	if strings.TrimSpace(userID) == "" {
		return nil, errMissingUser
	}

	return &Session{
		ID:              uuid.NewString(),
		UserID:          userID,
		Status:          Active,
		DurationMinutes: durationMinutes,
		Task:            strings.TrimSpace(task),
		StartedAt:       now,
	}, nil
}

// Pause moves an active session to paused.
func (s *Session) Pause(now time.Time) error {
	if s.Status != Active {
		return s.invalid("pause")
	}

	s.Status = Paused
	s.PausedAt = &now

	return nil
}

// Resume moves a paused session back to active and adds the pause to the
// running total.
func (s *Session) Resume(now time.Time) error {
	if s.Status != Paused || s.PausedAt == nil {
		return s.invalid("resume")
	}

	s.foldPause(now)
	s.Status = Active

	return nil
}

// Complete ends an active or paused session. An open pause is folded into
// the total first, exactly as Resume would.
func (s *Session) Complete(now time.Time) error {
	return s.end(Completed, "complete", now)
}

// Cancel discards an active or paused session, recording when it ended.
func (s *Session) Cancel(now time.Time) error {
	return s.end(Cancelled, "cancel", now)
}

func (s *Session) end(to Status, action string, now time.Time) error {
	if !s.Status.Open() {
		return s.invalid(action)
	}

	if s.Status == Paused {
		if s.PausedAt == nil {
			return s.invalid(action)
		}

		s.foldPause(now)
	}

	s.Status = to
	s.CompletedAt = &now

	return nil
}

// foldPause adds the open pause interval to TotalPausedSeconds and clears
// PausedAt so the interval cannot be counted twice.
func (s *Session) foldPause(now time.Time) {
	paused := int(now.Sub(*s.PausedAt) / time.Second)
	if paused > 0 {
		s.TotalPausedSeconds += paused
	}

	s.PausedAt = nil
}

func (s *Session) invalid(action string) error {
	return errInvalidTransition.Fmt(action, strings.ToLower(string(s.Status)))
}

// RemainingSeconds returns the planned time left in the session at now. The
// clock stops while the session is paused. The result is negative once the
// session runs past its planned duration.
func RemainingSeconds(s *Session, now time.Time) int {
	ref := now
	if s.PausedAt != nil {
		ref = *s.PausedAt
	}

	elapsedMs := ref.Sub(s.StartedAt).Milliseconds() -
		int64(s.TotalPausedSeconds)*1000

	return int(floorDiv(int64(s.DurationMinutes)*60000-elapsedMs, 1000))
}

// Remaining is RemainingSeconds for the receiver.
func (s *Session) Remaining(now time.Time) int {
	return RemainingSeconds(s, now)
}

// FormatRemaining renders seconds as MM:SS. Overtime is shown with a "+"
// prefix.
func FormatRemaining(seconds int) string {
	prefix := ""
	if seconds < 0 {
		prefix = "+"
		seconds = -seconds
	}

	return fmt.Sprintf("%s%02d:%02d", prefix, seconds/60, seconds%60)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}
