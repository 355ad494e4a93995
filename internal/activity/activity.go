// Package activity reduces focus sessions, completed tasks and habit
// completions to per-day records
package activity

import (
	"strings"
	"time"

	"github.com/ayoisaiah/momentum/internal/apperr"
	"github.com/ayoisaiah/momentum/internal/timeutil"
)

// Source identifies an activity stream.
type Source string

const (
	Focus Source = "focus"
	Task  Source = "task"
	Habit Source = "habit"
	// Overall is the union of the three streams.
	Overall Source = "overall"
)

// Sources lists the individual streams in display order.
var Sources = []Source{Focus, Task, Habit}

var errUnknownSource = &apperr.Error{
	Kind:    apperr.KindValidation,
	Message: "unknown activity source %q: expected focus, task, habit or overall",
}

// ParseSource validates a user supplied source name.
func ParseSource(s string) (Source, error) {
	src := Source(strings.ToLower(strings.TrimSpace(s)))

	switch src {
	case Focus, Task, Habit, Overall:
		return src, nil
	case "":
		return Overall, nil
	}

	return "", errUnknownSource.Fmt(s)
}

// Event is a single completion reduced to the instant it happened.
type Event struct {
	OccurredAt time.Time
	Source     Source
	Value      float64
}

// Window bounds a query. A zero Start or End leaves that side open.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}

	if !w.End.IsZero() && t.After(w.End) {
		return false
	}

	return true
}

// DayWindow returns the window covering the days from start to end inclusive.
func DayWindow(start, end timeutil.DayKey) Window {
	return Window{
		Start: start.Time(),
		End:   end.AddDays(1).Time().Add(-time.Nanosecond),
	}
}

// DaySet is a set of days with at least one qualifying activity.
type DaySet map[timeutil.DayKey]struct{}

// NewDaySet builds a set from keys.
func NewDaySet(keys ...timeutil.DayKey) DaySet {
	set := make(DaySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}

	return set
}

// Has reports whether the set contains k.
func (s DaySet) Has(k timeutil.DayKey) bool {
	_, ok := s[k]

	return ok
}

// Union adds every day of other to s.
func (s DaySet) Union(other DaySet) {
	for k := range other {
		s[k] = struct{}{}
	}
}

// Days returns the set's keys.
func (s DaySet) Days() []timeutil.DayKey {
	keys := make([]timeutil.DayKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}

	return keys
}
