package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/ayoisaiah/momentum/internal/activity"
	"github.com/ayoisaiah/momentum/internal/models"
	"github.com/ayoisaiah/momentum/internal/session"
	"github.com/ayoisaiah/momentum/internal/timeutil"
)

// SQLiteClient stores data in SQLite. The one-open-session rule is a partial
// unique index, so it also holds across processes sharing the file.
type SQLiteClient struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS focus_sessions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  status TEXT NOT NULL,
  duration_minutes INTEGER NOT NULL,
  task TEXT NOT NULL DEFAULT '',
  started_at TEXT NOT NULL,
  paused_at TEXT,
  total_paused_seconds INTEGER NOT NULL DEFAULT 0,
  completed_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS focus_sessions_one_open
  ON focus_sessions(user_id) WHERE status IN ('ACTIVE', 'PAUSED');
CREATE INDEX IF NOT EXISTS focus_sessions_user_started
  ON focus_sessions(user_id, started_at);
CREATE TABLE IF NOT EXISTS tasks (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  title TEXT NOT NULL,
  completed INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS habits (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  name TEXT NOT NULL,
  archived INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS habit_completions (
  id TEXT PRIMARY KEY,
  habit_id TEXT NOT NULL REFERENCES habits(id),
  user_id TEXT NOT NULL,
  day TEXT NOT NULL,
  UNIQUE(habit_id, day)
);
`

// NewSQLiteClient opens (or creates) the SQLite database at dbPath.
func NewSQLiteClient(dbPath string) (*SQLiteClient, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	dsn := "file:" + dbPath +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// a single connection serialises transactions within the process
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteClient{db: db}, nil
}

// Close ends the database connection.
func (c *SQLiteClient) Close() error {
	return c.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeutil.KeyLayout)
}

func formatNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeutil.KeyLayout, s)
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}

	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}

	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

type rowScanner interface {
	Scan(dest ...any) error
}

const sessionColumns = `id, user_id, status, duration_minutes, task,
  started_at, paused_at, total_paused_seconds, completed_at`

func scanSession(row rowScanner) (*session.Session, error) {
	var (
		sess              session.Session
		status, started   string
		paused, completed sql.NullString
	)

	err := row.Scan(
		&sess.ID,
		&sess.UserID,
		&status,
		&sess.DurationMinutes,
		&sess.Task,
		&started,
		&paused,
		&sess.TotalPausedSeconds,
		&completed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}

	sess.Status = session.Status(status)

	if sess.StartedAt, err = parseTime(started); err != nil {
		return nil, fmt.Errorf("decode started_at: %w", err)
	}

	if sess.PausedAt, err = parseNullTime(paused); err != nil {
		return nil, fmt.Errorf("decode paused_at: %w", err)
	}

	if sess.CompletedAt, err = parseNullTime(completed); err != nil {
		return nil, fmt.Errorf("decode completed_at: %w", err)
	}

	return &sess, nil
}

// Active returns the user's open session.
func (c *SQLiteClient) Active(
	ctx context.Context,
	userID string,
) (*session.Session, error) {
	row := c.db.QueryRowContext(
		ctx,
		`SELECT `+sessionColumns+` FROM focus_sessions
WHERE user_id = ? AND status IN ('ACTIVE', 'PAUSED')`,
		userID,
	)

	return scanSession(row)
}

// Create inserts a session. The partial unique index rejects a second open
// session for the same user.
func (c *SQLiteClient) Create(ctx context.Context, sess *session.Session) error {
	_, err := c.db.ExecContext(
		ctx,
		`INSERT INTO focus_sessions (`+sessionColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.UserID,
		string(sess.Status),
		sess.DurationMinutes,
		sess.Task,
		formatTime(sess.StartedAt),
		formatNullTime(sess.PausedAt),
		sess.TotalPausedSeconds,
		formatNullTime(sess.CompletedAt),
	)
	if isUniqueViolation(err) {
		return session.ErrAlreadyRunning
	}

	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	return nil
}

// Get returns one of the user's sessions.
func (c *SQLiteClient) Get(
	ctx context.Context,
	userID, id string,
) (*session.Session, error) {
	row := c.db.QueryRowContext(
		ctx,
		`SELECT `+sessionColumns+` FROM focus_sessions WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)

	return scanSession(row)
}

// Transition applies fn to the session inside a transaction. The update is
// conditional on the status read, so a concurrent writer in another process
// makes it fail instead of overwriting.
func (c *SQLiteClient) Transition(
	ctx context.Context,
	userID, id string,
	fn func(*session.Session) error,
) (*session.Session, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	sess, err := scanSession(tx.QueryRowContext(
		ctx,
		`SELECT `+sessionColumns+` FROM focus_sessions WHERE id = ? AND user_id = ?`,
		id,
		userID,
	))
	if err != nil {
		return nil, err
	}

	prev := sess.Status

	if err := fn(sess); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(
		ctx,
		`UPDATE focus_sessions
SET status = ?, paused_at = ?, total_paused_seconds = ?, completed_at = ?
WHERE id = ? AND status = ?`,
		string(sess.Status),
		formatNullTime(sess.PausedAt),
		sess.TotalPausedSeconds,
		formatNullTime(sess.CompletedAt),
		sess.ID,
		string(prev),
	)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errConcurrentUpdate
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return sess, nil
}

// ListSessions returns the user's sessions started within w.
func (c *SQLiteClient) ListSessions(
	ctx context.Context,
	userID string,
	w activity.Window,
) ([]session.Session, error) {
	return c.querySessions(ctx, userID, w, "")
}

// CompletedFocusSessions returns completed sessions started within w.
func (c *SQLiteClient) CompletedFocusSessions(
	ctx context.Context,
	userID string,
	w activity.Window,
) ([]session.Session, error) {
	return c.querySessions(ctx, userID, w, session.Completed)
}

func windowClause(column string, w activity.Window) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if !w.Start.IsZero() {
		clauses = append(clauses, column+" >= ?")
		args = append(args, formatTime(w.Start))
	}

	if !w.End.IsZero() {
		clauses = append(clauses, column+" <= ?")
		args = append(args, formatTime(w.End))
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " AND " + strings.Join(clauses, " AND "), args
}

func (c *SQLiteClient) querySessions(
	ctx context.Context,
	userID string,
	w activity.Window,
	status session.Status,
) ([]session.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM focus_sessions WHERE user_id = ?`
	args := []any{userID}

	if status != "" {
		query += " AND status = ?"
		args = append(args, string(status))
	}

	clause, wargs := windowClause("started_at", w)
	query += clause + " ORDER BY started_at"
	args = append(args, wargs...)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []session.Session

	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, *sess)
	}

	return sessions, rows.Err()
}

// AddTask creates a task.
func (c *SQLiteClient) AddTask(ctx context.Context, task *models.Task) error {
	_, err := c.db.ExecContext(
		ctx,
		`INSERT INTO tasks (id, user_id, title, completed, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.UserID,
		task.Title,
		task.Completed,
		formatTime(task.CreatedAt),
		formatTime(task.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	return nil
}

// CompleteTask marks a task completed at the given time.
func (c *SQLiteClient) CompleteTask(
	ctx context.Context,
	userID, id string,
	at time.Time,
) (*models.Task, error) {
	res, err := c.db.ExecContext(
		ctx,
		`UPDATE tasks SET completed = 1, updated_at = ? WHERE id = ? AND user_id = ?`,
		formatTime(at),
		id,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errTaskNotFound
	}

	tasks, err := c.queryTasks(ctx, `WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, err
	}

	if len(tasks) == 0 {
		return nil, errTaskNotFound
	}

	return &tasks[0], nil
}

// ListTasks returns all of the user's tasks.
func (c *SQLiteClient) ListTasks(
	ctx context.Context,
	userID string,
) ([]models.Task, error) {
	return c.queryTasks(ctx, `WHERE user_id = ? ORDER BY created_at`, userID)
}

// CompletedTasks returns completed tasks last updated within w.
func (c *SQLiteClient) CompletedTasks(
	ctx context.Context,
	userID string,
	w activity.Window,
) ([]models.Task, error) {
	clause, args := windowClause("updated_at", w)

	return c.queryTasks(
		ctx,
		`WHERE user_id = ? AND completed = 1`+clause+` ORDER BY updated_at`,
		append([]any{userID}, args...)...,
	)
}

func (c *SQLiteClient) queryTasks(
	ctx context.Context,
	where string,
	args ...any,
) ([]models.Task, error) {
	rows, err := c.db.QueryContext(
		ctx,
		`SELECT id, user_id, title, completed, created_at, updated_at FROM tasks `+where,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task

	for rows.Next() {
		var (
			t                models.Task
			created, updated string
		)

		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Completed, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}

		if t.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}

		if t.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, err
		}

		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// AddHabit creates a habit.
func (c *SQLiteClient) AddHabit(ctx context.Context, habit *models.Habit) error {
	_, err := c.db.ExecContext(
		ctx,
		`INSERT INTO habits (id, user_id, name, archived, created_at) VALUES (?, ?, ?, ?, ?)`,
		habit.ID,
		habit.UserID,
		habit.Name,
		habit.Archived,
		formatTime(habit.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert habit: %w", err)
	}

	return nil
}

// ArchiveHabit archives a habit.
func (c *SQLiteClient) ArchiveHabit(ctx context.Context, userID, id string) error {
	res, err := c.db.ExecContext(
		ctx,
		`UPDATE habits SET archived = 1 WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("archive habit: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errHabitNotFound
	}

	return nil
}

// CheckHabit records a completion of the habit on the UTC day of date.
func (c *SQLiteClient) CheckHabit(
	ctx context.Context,
	userID, habitID string,
	date time.Time,
) (*models.HabitCompletion, error) {
	var (
		name     string
		archived bool
	)

	err := c.db.QueryRowContext(
		ctx,
		`SELECT name, archived FROM habits WHERE id = ? AND user_id = ?`,
		habitID,
		userID,
	).Scan(&name, &archived)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errHabitNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("query habit: %w", err)
	}

	if archived {
		return nil, errHabitArchived.Fmt(name)
	}

	day := timeutil.ToDayKey(date)
	completion := &models.HabitCompletion{
		ID:      string(day) + "/" + habitID,
		HabitID: habitID,
		UserID:  userID,
		Date:    day.Time(),
	}

	_, err = c.db.ExecContext(
		ctx,
		`INSERT INTO habit_completions (id, habit_id, user_id, day) VALUES (?, ?, ?, ?)
ON CONFLICT(habit_id, day) DO NOTHING`,
		completion.ID,
		habitID,
		userID,
		string(day),
	)
	if err != nil {
		return nil, fmt.Errorf("insert habit completion: %w", err)
	}

	return completion, nil
}

// ListHabits returns the user's habits.
func (c *SQLiteClient) ListHabits(
	ctx context.Context,
	userID string,
	includeArchived bool,
) ([]models.Habit, error) {
	query := `SELECT id, user_id, name, archived, created_at FROM habits WHERE user_id = ?`
	if !includeArchived {
		query += ` AND archived = 0`
	}

	rows, err := c.db.QueryContext(ctx, query+` ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("query habits: %w", err)
	}
	defer rows.Close()

	var habits []models.Habit

	for rows.Next() {
		var (
			h       models.Habit
			created string
		)

		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.Archived, &created); err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}

		if h.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}

		habits = append(habits, h)
	}

	return habits, rows.Err()
}

// HabitCompletions returns completions dated within w, flagged with the
// archive state of their habit.
func (c *SQLiteClient) HabitCompletions(
	ctx context.Context,
	userID string,
	w activity.Window,
) ([]models.HabitCompletion, error) {
	query := `SELECT hc.id, hc.habit_id, hc.user_id, hc.day, h.archived
FROM habit_completions hc JOIN habits h ON h.id = hc.habit_id
WHERE hc.user_id = ?`
	args := []any{userID}

	if !w.Start.IsZero() {
		query += ` AND hc.day >= ?`
		args = append(args, string(timeutil.ToDayKey(w.Start)))
	}

	if !w.End.IsZero() {
		query += ` AND hc.day <= ?`
		args = append(args, string(timeutil.ToDayKey(w.End)))
	}

	rows, err := c.db.QueryContext(ctx, query+` ORDER BY hc.day`, args...)
	if err != nil {
		return nil, fmt.Errorf("query habit completions: %w", err)
	}
	defer rows.Close()

	var completions []models.HabitCompletion

	for rows.Next() {
		var (
			hc  models.HabitCompletion
			day string
		)

		if err := rows.Scan(&hc.ID, &hc.HabitID, &hc.UserID, &day, &hc.Archived); err != nil {
			return nil, fmt.Errorf("scan habit completion: %w", err)
		}

		if hc.Date, err = timeutil.ParseDayKey(day); err != nil {
			return nil, err
		}

		completions = append(completions, hc)
	}

	return completions, rows.Err()
}
