// Package timer renders a live countdown for the user's current focus
// session. Everything shown is derived from the stored session, so several
// watchers (or none at all) can follow the same session. The store must not
// be held open between reads, see store.OpenShared.
package timer

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/momentum/internal/session"
)

const (
	tickInterval = time.Second
	// refreshEvery is the number of ticks between store reads. Ticks in
	// between only recompute the remaining time.
	refreshEvery = 5
	maxBarWidth  = 60
)

// Service is the part of session.Service the timer drives.
type Service interface {
	Now() time.Time
	Current(ctx context.Context, userID string) (*session.Session, error)
	Pause(ctx context.Context, userID, id string) (*session.Session, error)
	Resume(ctx context.Context, userID, id string) (*session.Session, error)
	Complete(ctx context.Context, userID, id string) (*session.Session, error)
}

// Timer is a bubbletea model that follows one user's open session.
type Timer struct {
	ctx        context.Context
	svc        Service
	err        error
	sess       *session.Session
	style      Style
	userID     string
	timeFormat string
	help       help.Model
	progress   progress.Model
	ticks      int
	loaded     bool
	ended      bool
}

// Options configures a Timer.
type Options struct {
	UserID     string
	TimeFormat string
	DarkTheme  bool
}

type (
	tickMsg    time.Time
	sessionMsg struct {
		sess *session.Session
		err  error
	}
)

// New returns a Timer for opts.UserID.
func New(ctx context.Context, svc Service, opts Options) *Timer {
	style := defaultStyle(opts.DarkTheme)

	bar := progress.New(progress.WithGradient(style.gradientStart, style.gradientEnd))
	bar.Width = maxBarWidth

	return &Timer{
		ctx:        ctx,
		svc:        svc,
		userID:     opts.UserID,
		timeFormat: opts.TimeFormat,
		style:      style,
		help:       help.New(),
		progress:   bar,
	}
}

// Run blocks until the session ends or the user quits.
func (t *Timer) Run() error {
	p := tea.NewProgram(t, tea.WithContext(t.ctx))

	if _, err := p.Run(); err != nil {
		return err
	}

	return t.err
}

// Session returns the last session read from the store.
func (t *Timer) Session() *session.Session {
	return t.sess
}

func (t *Timer) Init() tea.Cmd {
	return tea.Batch(t.fetch(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(now time.Time) tea.Msg {
		return tickMsg(now)
	})
}

// fetch reads the user's open session.
func (t *Timer) fetch() tea.Cmd {
	return func() tea.Msg {
		sess, err := t.svc.Current(t.ctx, t.userID)
		return sessionMsg{sess, err}
	}
}

type action func(ctx context.Context, userID, id string) (*session.Session, error)

// apply runs a state transition on the current session.
func (t *Timer) apply(fn action) tea.Cmd {
	id := t.sess.ID

	return func() tea.Msg {
		sess, err := fn(t.ctx, t.userID, id)
		return sessionMsg{sess, err}
	}
}

// remaining is the session's remaining seconds at the service clock.
func (t *Timer) remaining() int {
	return t.sess.Remaining(t.svc.Now())
}

// elapsedFraction is the share of the planned duration already used, clamped
// to [0, 1].
func (t *Timer) elapsedFraction() float64 {
	total := float64(t.sess.DurationMinutes * 60)
	if total <= 0 {
		return 1
	}

	f := 1 - float64(t.remaining())/total

	return min(max(f, 0), 1)
}
