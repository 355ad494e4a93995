// Package models holds the task and habit records that feed the activity
// streams. They are owned by the store; momentum only needs enough of them to
// know when something was completed.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ayoisaiah/momentum/internal/apperr"
)

const maxNameLength = 200

var (
	errEmptyName = &apperr.Error{
		Kind:    apperr.KindValidation,
		Message: "a %s needs a name",
	}

	errNameTooLong = &apperr.Error{
		Kind:    apperr.KindValidation,
		Message: "%s names are limited to %d characters",
	}
)

type Task struct {
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	// UpdatedAt is the last modification time. For a completed task it is
	// the completion time.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
	ID        string    `json:"id"         yaml:"id"`
	UserID    string    `json:"user_id"    yaml:"user_id"`
	Title     string    `json:"title"      yaml:"title"`
	Completed bool      `json:"completed"  yaml:"completed"`
}

type Habit struct {
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	ID        string    `json:"id"         yaml:"id"`
	UserID    string    `json:"user_id"    yaml:"user_id"`
	Name      string    `json:"name"       yaml:"name"`
	Archived  bool      `json:"archived"   yaml:"archived"`
}

// HabitCompletion records that a habit was done on a given day. Date is
// midnight UTC of that day.
type HabitCompletion struct {
	Date    time.Time `json:"date"     yaml:"date"`
	ID      string    `json:"id"       yaml:"id"`
	HabitID string    `json:"habit_id" yaml:"habit_id"`
	UserID  string    `json:"user_id"  yaml:"user_id"`
	// Archived mirrors the owning habit at query time.
	Archived bool `json:"-" yaml:"-"`
}

func validName(kind, name string) (string, error) {
	name = strings.TrimSpace(name)

	switch {
	case name == "":
		return "", errEmptyName.Fmt(kind)
	case len([]rune(name)) > maxNameLength:
		return "", errNameTooLong.Fmt(kind, maxNameLength)
	}

	return name, nil
}

// NewTask returns an open task created at now.
func NewTask(userID, title string, now time.Time) (*Task, error) {
	title, err := validName("task", title)
	if err != nil {
		return nil, err
	}

	return &Task{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}

// NewHabit returns an active habit created at now.
func NewHabit(userID, name string, now time.Time) (*Habit, error) {
	name, err := validName("habit", name)
	if err != nil {
		return nil, err
	}

	return &Habit{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now.UTC(),
	}, nil
}
