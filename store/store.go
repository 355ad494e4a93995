// Package store persists focus sessions, tasks and habits
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/momentum/internal/activity"
	"github.com/ayoisaiah/momentum/internal/models"
	"github.com/ayoisaiah/momentum/internal/session"
	"github.com/ayoisaiah/momentum/internal/timeutil"
)

const (
	sessionBucket    = "sessions"
	sessionIndex     = "session_index"
	activeBucket     = "active"
	taskBucket       = "tasks"
	habitBucket      = "habits"
	completionBucket = "habit_completions"
	metaBucket       = "meta"
)

var topLevelBuckets = []string{
	sessionBucket,
	sessionIndex,
	activeBucket,
	taskBucket,
	habitBucket,
	completionBucket,
	metaBucket,
}

// Client is a BoltDB database client.
type Client struct {
	db *bolt.DB
}

// NewClient opens (or creates) the BoltDB database at dbPath and brings its
// schema up to date.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range topLevelBuckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return migrate(tx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialising database: %w", err)
	}

	return &Client{db: db}, nil
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	if err := os.MkdirAll(filepath.Dir(pathToDB), 0o755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errMomentumRunning
		}

		return nil, err
	}

	return db, nil
}

// Close ends the database connection.
func (c *Client) Close() error {
	return c.db.Close()
}

// userBucket returns the user's sub-bucket of a top level bucket. In a
// read-only transaction a missing bucket yields nil.
func userBucket(tx *bolt.Tx, name, userID string) (*bolt.Bucket, error) {
	parent := tx.Bucket([]byte(name))

	if !tx.Writable() {
		return parent.Bucket([]byte(userID)), nil
	}

	return parent.CreateBucketIfNotExists([]byte(userID))
}

func sessionKey(sess *session.Session) []byte {
	return append(timeutil.ToKey(sess.StartedAt), []byte("/"+sess.ID)...)
}

func indexValue(userID string, key []byte) []byte {
	return append([]byte(userID+"\x00"), key...)
}

func putSession(tx *bolt.Tx, sess *session.Session) error {
	b, err := userBucket(tx, sessionBucket, sess.UserID)
	if err != nil {
		return err
	}

	value, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	key := sessionKey(sess)

	if err := b.Put(key, value); err != nil {
		return err
	}

	err = tx.Bucket([]byte(sessionIndex)).Put(
		[]byte(sess.ID),
		indexValue(sess.UserID, key),
	)
	if err != nil {
		return err
	}

	active := tx.Bucket([]byte(activeBucket))

	if sess.Status.Open() {
		return active.Put([]byte(sess.UserID), []byte(sess.ID))
	}

	if bytes.Equal(active.Get([]byte(sess.UserID)), []byte(sess.ID)) {
		return active.Delete([]byte(sess.UserID))
	}

	return nil
}

func getSession(tx *bolt.Tx, userID, id string) (*session.Session, error) {
	idx := tx.Bucket([]byte(sessionIndex)).Get([]byte(id))
	if idx == nil {
		return nil, session.ErrNotFound
	}

	owner, key, ok := bytes.Cut(idx, []byte("\x00"))
	if !ok || string(owner) != userID {
		return nil, session.ErrNotFound
	}

	b, err := userBucket(tx, sessionBucket, userID)
	if err != nil {
		return nil, err
	}

	if b == nil {
		return nil, session.ErrNotFound
	}

	v := b.Get(key)
	if v == nil {
		return nil, session.ErrNotFound
	}

	var sess session.Session

	if err := json.Unmarshal(v, &sess); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}

	return &sess, nil
}

// Active returns the user's open session.
func (c *Client) Active(
	ctx context.Context,
	userID string,
) (*session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sess *session.Session

	err := c.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket([]byte(activeBucket)).Get([]byte(userID))
		if id == nil {
			return session.ErrNotFound
		}

		var err error

		sess, err = getSession(tx, userID, string(id))

		return err
	})

	return sess, err
}

// Create saves a new session. The open-session check and the insert share one
// write transaction, and bolt allows a single writer at a time.
func (c *Client) Create(ctx context.Context, sess *session.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(activeBucket)).Get([]byte(sess.UserID)) != nil {
			return session.ErrAlreadyRunning
		}

		return putSession(tx, sess)
	})
}

// Get returns one of the user's sessions.
func (c *Client) Get(
	ctx context.Context,
	userID, id string,
) (*session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sess *session.Session

	err := c.db.View(func(tx *bolt.Tx) error {
		var err error

		sess, err = getSession(tx, userID, id)

		return err
	})

	return sess, err
}

// Transition applies fn to the session and saves it in one transaction.
func (c *Client) Transition(
	ctx context.Context,
	userID, id string,
	fn func(*session.Session) error,
) (*session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sess *session.Session

	err := c.db.Update(func(tx *bolt.Tx) error {
		var err error

		sess, err = getSession(tx, userID, id)
		if err != nil {
			return err
		}

		if err := fn(sess); err != nil {
			return err
		}

		return putSession(tx, sess)
	})
	if err != nil {
		return nil, err
	}

	return sess, nil
}

// ListSessions returns the user's sessions started within w.
func (c *Client) ListSessions(
	ctx context.Context,
	userID string,
	w activity.Window,
) ([]session.Session, error) {
	return c.sessions(ctx, userID, w, nil)
}

// CompletedFocusSessions returns the user's completed sessions started
// within w.
func (c *Client) CompletedFocusSessions(
	ctx context.Context,
	userID string,
	w activity.Window,
) ([]session.Session, error) {
	return c.sessions(ctx, userID, w, func(s *session.Session) bool {
		return s.Status == session.Completed
	})
}

func (c *Client) sessions(
	ctx context.Context,
	userID string,
	w activity.Window,
	keep func(*session.Session) bool,
) ([]session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result []session.Session

	err := c.db.View(func(tx *bolt.Tx) error {
		b, err := userBucket(tx, sessionBucket, userID)
		if err != nil || b == nil {
			return err
		}

		cur := b.Cursor()

		var k, v []byte
		if w.Start.IsZero() {
			k, v = cur.First()
		} else {
			k, v = cur.Seek(timeutil.ToKey(w.Start))
		}

		var upper []byte
		if !w.End.IsZero() {
			// the id suffix sorts after the timestamp, so bound on the
			// next nanosecond
			upper = timeutil.ToKey(w.End.Add(time.Nanosecond))
		}

		for ; k != nil; k, v = cur.Next() {
			if upper != nil && bytes.Compare(k, upper) >= 0 {
				break
			}

			var sess session.Session

			if err := json.Unmarshal(v, &sess); err != nil {
				return fmt.Errorf("decoding session %s: %w", k, err)
			}

			if keep == nil || keep(&sess) {
				result = append(result, sess)
			}
		}

		return nil
	})

	return result, err
}

// AddTask creates a task.
func (c *Client) AddTask(ctx context.Context, task *models.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		return putJSON(tx, taskBucket, task.UserID, []byte(task.ID), task)
	})
}

// CompleteTask marks a task completed at the given time.
func (c *Client) CompleteTask(
	ctx context.Context,
	userID, id string,
	at time.Time,
) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var task models.Task

	err := c.db.Update(func(tx *bolt.Tx) error {
		found, err := getJSON(tx, taskBucket, userID, []byte(id), &task)
		if err != nil {
			return err
		}

		if !found {
			return errTaskNotFound
		}

		task.Completed = true
		task.UpdatedAt = at

		return putJSON(tx, taskBucket, userID, []byte(id), &task)
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// ListTasks returns all of the user's tasks.
func (c *Client) ListTasks(
	ctx context.Context,
	userID string,
) ([]models.Task, error) {
	return c.tasks(ctx, userID, func(*models.Task) bool { return true })
}

// CompletedTasks returns completed tasks last updated within w.
func (c *Client) CompletedTasks(
	ctx context.Context,
	userID string,
	w activity.Window,
) ([]models.Task, error) {
	return c.tasks(ctx, userID, func(t *models.Task) bool {
		return t.Completed && w.Contains(t.UpdatedAt)
	})
}

func (c *Client) tasks(
	ctx context.Context,
	userID string,
	keep func(*models.Task) bool,
) ([]models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var tasks []models.Task

	err := c.db.View(func(tx *bolt.Tx) error {
		return eachJSON(tx, taskBucket, userID, func(v []byte) error {
			var t models.Task
			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}

			if keep(&t) {
				tasks = append(tasks, t)
			}

			return nil
		})
	})

	return tasks, err
}

// AddHabit creates a habit.
func (c *Client) AddHabit(ctx context.Context, habit *models.Habit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		return putJSON(tx, habitBucket, habit.UserID, []byte(habit.ID), habit)
	})
}

// ArchiveHabit archives a habit.
func (c *Client) ArchiveHabit(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		var h models.Habit

		found, err := getJSON(tx, habitBucket, userID, []byte(id), &h)
		if err != nil {
			return err
		}

		if !found {
			return errHabitNotFound
		}

		h.Archived = true

		return putJSON(tx, habitBucket, userID, []byte(id), &h)
	})
}

// CheckHabit records a completion of the habit on the UTC day of date.
func (c *Client) CheckHabit(
	ctx context.Context,
	userID, habitID string,
	date time.Time,
) (*models.HabitCompletion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	day := timeutil.ToDayKey(date)
	completion := &models.HabitCompletion{
		ID:      string(day) + "/" + habitID,
		HabitID: habitID,
		UserID:  userID,
		Date:    day.Time(),
	}

	err := c.db.Update(func(tx *bolt.Tx) error {
		var h models.Habit

		found, err := getJSON(tx, habitBucket, userID, []byte(habitID), &h)
		if err != nil {
			return err
		}

		if !found {
			return errHabitNotFound
		}

		if h.Archived {
			return errHabitArchived.Fmt(h.Name)
		}

		return putJSON(
			tx,
			completionBucket,
			userID,
			[]byte(completion.ID),
			completion,
		)
	})
	if err != nil {
		return nil, err
	}

	return completion, nil
}

// ListHabits returns the user's habits.
func (c *Client) ListHabits(
	ctx context.Context,
	userID string,
	includeArchived bool,
) ([]models.Habit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var habits []models.Habit

	err := c.db.View(func(tx *bolt.Tx) error {
		return eachJSON(tx, habitBucket, userID, func(v []byte) error {
			var h models.Habit
			if err := json.Unmarshal(v, &h); err != nil {
				return err
			}

			if includeArchived || !h.Archived {
				habits = append(habits, h)
			}

			return nil
		})
	})

	return habits, err
}

// HabitCompletions returns completions dated within w, flagged with the
// archive state of their habit.
func (c *Client) HabitCompletions(
	ctx context.Context,
	userID string,
	w activity.Window,
) ([]models.HabitCompletion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var completions []models.HabitCompletion

	err := c.db.View(func(tx *bolt.Tx) error {
		archived := make(map[string]bool)

		err := eachJSON(tx, habitBucket, userID, func(v []byte) error {
			var h models.Habit
			if err := json.Unmarshal(v, &h); err != nil {
				return err
			}

			archived[h.ID] = h.Archived

			return nil
		})
		if err != nil {
			return err
		}

		return eachJSON(tx, completionBucket, userID, func(v []byte) error {
			var hc models.HabitCompletion
			if err := json.Unmarshal(v, &hc); err != nil {
				return err
			}

			if !w.Contains(hc.Date) {
				return nil
			}

			hc.Archived = archived[hc.HabitID]
			completions = append(completions, hc)

			return nil
		})
	})

	return completions, err
}

func putJSON(tx *bolt.Tx, bucket, userID string, key []byte, v any) error {
	b, err := userBucket(tx, bucket, userID)
	if err != nil {
		return err
	}

	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return b.Put(key, value)
}

func getJSON(
	tx *bolt.Tx,
	bucket, userID string,
	key []byte,
	v any,
) (bool, error) {
	b, err := userBucket(tx, bucket, userID)
	if err != nil || b == nil {
		return false, err
	}

	value := b.Get(key)
	if value == nil {
		return false, nil
	}

	return true, json.Unmarshal(value, v)
}

func eachJSON(
	tx *bolt.Tx,
	bucket, userID string,
	fn func(v []byte) error,
) error {
	b, err := userBucket(tx, bucket, userID)
	if err != nil || b == nil {
		return err
	}

	return b.ForEach(func(_, v []byte) error {
		if v == nil {
			return nil
		}

		return fn(v)
	})
}
