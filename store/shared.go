package store

import (
	"context"
	"errors"
	"time"

	"github.com/ayoisaiah/momentum/internal/activity"
	"github.com/ayoisaiah/momentum/internal/models"
	"github.com/ayoisaiah/momentum/internal/session"
)

// SharedClient is a BoltDB client for long running commands. Bolt holds an
// exclusive lock on the file for as long as it is open, so SharedClient opens
// the database for each call and closes it before returning. Other momentum
// processes can write in between.
type SharedClient struct {
	path string
}

// OpenShared is like Open, but the returned DB does not keep the database
// locked between calls. SQLite allows concurrent connections so the regular
// client is returned for it.
func OpenShared(driver, path string) (DB, error) {
	switch driver {
	case DriverSQLite:
		return NewSQLiteClient(path)
	case DriverBolt, "":
		c, err := NewClient(path)
		if err != nil {
			return nil, err
		}

		if err := c.Close(); err != nil {
			return nil, err
		}

		return &SharedClient{path: path}, nil
	}

	return nil, errUnknownDriver.Fmt(driver)
}

func withClient[T any](s *SharedClient, fn func(*Client) (T, error)) (v T, err error) {
	c, err := NewClient(s.path)
	if err != nil {
		return v, err
	}

	defer func() {
		err = errors.Join(err, c.Close())
	}()

	return fn(c)
}

func (s *SharedClient) Active(
	ctx context.Context,
	userID string,
) (*session.Session, error) {
	return withClient(s, func(c *Client) (*session.Session, error) {
		return c.Active(ctx, userID)
	})
}

func (s *SharedClient) Create(ctx context.Context, sess *session.Session) error {
	_, err := withClient(s, func(c *Client) (struct{}, error) {
		return struct{}{}, c.Create(ctx, sess)
	})

	return err
}

func (s *SharedClient) Get(
	ctx context.Context,
	userID, id string,
) (*session.Session, error) {
	return withClient(s, func(c *Client) (*session.Session, error) {
		return c.Get(ctx, userID, id)
	})
}

func (s *SharedClient) Transition(
	ctx context.Context,
	userID, id string,
	fn func(*session.Session) error,
) (*session.Session, error) {
	return withClient(s, func(c *Client) (*session.Session, error) {
		return c.Transition(ctx, userID, id, fn)
	})
}

func (s *SharedClient) CompletedFocusSessions(
	ctx context.Context,
	userID string,
	w activity.Window,
) ([]session.Session, error) {
	return withClient(s, func(c *Client) ([]session.Session, error) {
		return c.CompletedFocusSessions(ctx, userID, w)
	})
}

func (s *SharedClient) CompletedTasks(
	ctx context.Context,
	userID string,
	w activity.Window,
) ([]models.Task, error) {
	return withClient(s, func(c *Client) ([]models.Task, error) {
		return c.CompletedTasks(ctx, userID, w)
	})
}

func (s *SharedClient) HabitCompletions(
	ctx context.Context,
	userID string,
	w activity.Window,
) ([]models.HabitCompletion, error) {
	return withClient(s, func(c *Client) ([]models.HabitCompletion, error) {
		return c.HabitCompletions(ctx, userID, w)
	})
}

func (s *SharedClient) ListSessions(
	ctx context.Context,
	userID string,
	w activity.Window,
) ([]session.Session, error) {
	return withClient(s, func(c *Client) ([]session.Session, error) {
		return c.ListSessions(ctx, userID, w)
	})
}

func (s *SharedClient) AddTask(ctx context.Context, task *models.Task) error {
	_, err := withClient(s, func(c *Client) (struct{}, error) {
		return struct{}{}, c.AddTask(ctx, task)
	})

	return err
}

func (s *SharedClient) CompleteTask(
	ctx context.Context,
	userID, id string,
	at time.Time,
) (*models.Task, error) {
	return withClient(s, func(c *Client) (*models.Task, error) {
		return c.CompleteTask(ctx, userID, id, at)
	})
}

func (s *SharedClient) ListTasks(
	ctx context.Context,
	userID string,
) ([]models.Task, error) {
	return withClient(s, func(c *Client) ([]models.Task, error) {
		return c.ListTasks(ctx, userID)
	})
}

func (s *SharedClient) AddHabit(ctx context.Context, habit *models.Habit) error {
	_, err := withClient(s, func(c *Client) (struct{}, error) {
		return struct{}{}, c.AddHabit(ctx, habit)
	})

	return err
}

func (s *SharedClient) ArchiveHabit(ctx context.Context, userID, id string) error {
	_, err := withClient(s, func(c *Client) (struct{}, error) {
		return struct{}{}, c.ArchiveHabit(ctx, userID, id)
	})

	return err
}

func (s *SharedClient) CheckHabit(
	ctx context.Context,
	userID, habitID string,
	date time.Time,
) (*models.HabitCompletion, error) {
	return withClient(s, func(c *Client) (*models.HabitCompletion, error) {
		return c.CheckHabit(ctx, userID, habitID, date)
	})
}

func (s *SharedClient) ListHabits(
	ctx context.Context,
	userID string,
	includeArchived bool,
) ([]models.Habit, error) {
	return withClient(s, func(c *Client) ([]models.Habit, error) {
		return c.ListHabits(ctx, userID, includeArchived)
	})
}

// Close is a no-op. The database is only open for the duration of a call.
func (s *SharedClient) Close() error {
	return nil
}
