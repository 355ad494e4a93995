package store

import (
	"context"
	"time"

	"github.com/ayoisaiah/momentum/internal/activity"
	"github.com/ayoisaiah/momentum/internal/models"
	"github.com/ayoisaiah/momentum/internal/session"
)

// DB is the database storage interface.
type DB interface {
	session.Store
	activity.Store
	// ListSessions returns the user's sessions started within w, oldest
	// first.
	ListSessions(
		ctx context.Context,
		userID string,
		w activity.Window,
	) ([]session.Session, error)
	// AddTask creates an open task.
	AddTask(ctx context.Context, task *models.Task) error
	// CompleteTask marks a task completed at the given time.
	CompleteTask(
		ctx context.Context,
		userID, id string,
		at time.Time,
	) (*models.Task, error)
	// ListTasks returns all of the user's tasks.
	ListTasks(ctx context.Context, userID string) ([]models.Task, error)
	// AddHabit creates a habit.
	AddHabit(ctx context.Context, habit *models.Habit) error
	// ArchiveHabit hides a habit from streaks and the heatmap.
	ArchiveHabit(ctx context.Context, userID, id string) error
	// CheckHabit records a completion for the UTC day of date. Checking the
	// same habit twice on one day is a no-op.
	CheckHabit(
		ctx context.Context,
		userID, habitID string,
		date time.Time,
	) (*models.HabitCompletion, error)
	// ListHabits returns the user's habits, optionally including archived
	// ones.
	ListHabits(
		ctx context.Context,
		userID string,
		includeArchived bool,
	) ([]models.Habit, error)
	// Close ends the database connection
	Close() error
}

// Driver names accepted by Open.
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

// Open connects to the database at path using the named driver.
func Open(driver, path string) (DB, error) {
	switch driver {
	case DriverSQLite:
		return NewSQLiteClient(path)
	case DriverBolt, "":
		return NewClient(path)
	}

	return nil, errUnknownDriver.Fmt(driver)
}
