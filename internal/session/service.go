package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/momentum/internal/clock"
)

// Store persists focus sessions.
type Store interface {
	// Active returns the user's active or paused session, or ErrNotFound.
	Active(ctx context.Context, userID string) (*Session, error)
	// Create saves a new session. It must fail with ErrAlreadyRunning, without
	// writing anything, if the user already has an open session. The check
	// and the write are a single atomic operation.
	Create(ctx context.Context, sess *Session) error
	// Get returns the user's session with the given id, or ErrNotFound.
	Get(ctx context.Context, userID, id string) (*Session, error)
	// Transition loads the session, applies fn and saves the result in one
	// transaction. Nothing is written if fn returns an error.
	Transition(
		ctx context.Context,
		userID, id string,
		fn func(*Session) error,
	) (*Session, error)
}

// Service runs the session state machine against a Store.
type Service struct {
	store      Store
	clock      clock.Clock
	sessionCmd string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used to timestamp transitions.
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// WithSessionCmd sets a command that is executed after each completed
// session.
func WithSessionCmd(cmd string) Option {
	return func(s *Service) {
		s.sessionCmd = cmd
	}
}

// NewService returns a Service backed by store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		clock: clock.Real{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.clock.Now()
}

// Start begins a new focus session for the user.
func (s *Service) Start(
	ctx context.Context,
	userID string,
	durationMinutes int,
	task string,
) (*Session, error) {
	sess, err := New(userID, durationMinutes, task, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, sess); err != nil {
		return nil, err
	}

	slog.InfoContext(
		ctx,
		"focus session started",
		slog.String("id", sess.ID),
		slog.String("user", userID),
		slog.Int("duration_minutes", durationMinutes),
	)

	return sess, nil
}

// Current returns the user's active or paused session.
func (s *Service) Current(ctx context.Context, userID string) (*Session, error) {
	return s.store.Active(ctx, userID)
}

// Get returns one of the user's sessions.
func (s *Service) Get(ctx context.Context, userID, id string) (*Session, error) {
	return s.store.Get(ctx, userID, id)
}

// Pause pauses an active session.
func (s *Service) Pause(ctx context.Context, userID, id string) (*Session, error) {
	return s.transition(ctx, "pause", userID, id, (*Session).Pause)
}

// Resume resumes a paused session.
func (s *Service) Resume(ctx context.Context, userID, id string) (*Session, error) {
	return s.transition(ctx, "resume", userID, id, (*Session).Resume)
}

// Complete finishes an active or paused session and runs the configured
// session command.
func (s *Service) Complete(ctx context.Context, userID, id string) (*Session, error) {
	sess, err := s.transition(ctx, "complete", userID, id, (*Session).Complete)
	if err != nil {
		return nil, err
	}

	if err := s.runSessionCmd(ctx, sess); err != nil {
		slog.ErrorContext(
			ctx,
			"session command failed",
			slog.String("id", sess.ID),
			slog.Any("error", err),
		)
	}

	return sess, nil
}

// Cancel discards an active or paused session.
func (s *Service) Cancel(ctx context.Context, userID, id string) (*Session, error) {
	return s.transition(ctx, "cancel", userID, id, (*Session).Cancel)
}

func (s *Service) transition(
	ctx context.Context,
	action, userID, id string,
	fn func(*Session, time.Time) error,
) (*Session, error) {
	sess, err := s.store.Transition(ctx, userID, id, func(sess *Session) error {
		return fn(sess, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(
		ctx,
		"focus session "+action,
		slog.String("id", sess.ID),
		slog.String("status", string(sess.Status)),
		slog.Int("total_paused_seconds", sess.TotalPausedSeconds),
	)

	return sess, nil
}

// runSessionCmd executes the configured command after a completed session.
func (s *Service) runSessionCmd(ctx context.Context, sess *Session) error {
	if s.sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(s.sessionCmd)
	if err != nil {
		return fmt.Errorf("unable to parse session command: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	//nolint:gosec // the command comes from the user's own config
	cmd := exec.CommandContext(ctx, cmdSlice[0], cmdSlice[1:]...)
	cmd.Env = append(
		os.Environ(),
		"MOMENTUM_SESSION_ID="+sess.ID,
		"MOMENTUM_SESSION_TASK="+sess.Task,
		fmt.Sprintf("MOMENTUM_SESSION_MINUTES=%d", sess.DurationMinutes),
	)

	return cmd.Run()
}
