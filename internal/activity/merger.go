package activity

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ayoisaiah/momentum/internal/models"
	"github.com/ayoisaiah/momentum/internal/session"
	"github.com/ayoisaiah/momentum/internal/timeutil"
)

// Store lists the completed items behind each activity stream.
type Store interface {
	// CompletedFocusSessions returns completed sessions started within w.
	CompletedFocusSessions(
		ctx context.Context,
		userID string,
		w Window,
	) ([]session.Session, error)
	// CompletedTasks returns completed tasks last updated within w.
	CompletedTasks(
		ctx context.Context,
		userID string,
		w Window,
	) ([]models.Task, error)
	// HabitCompletions returns habit completions dated within w, including
	// those of archived habits.
	HabitCompletions(
		ctx context.Context,
		userID string,
		w Window,
	) ([]models.HabitCompletion, error)
}

// Daily holds the per-day aggregates of each stream.
type Daily struct {
	// Focus is the planned minutes of completed sessions.
	Focus Totals
	// Tasks is the number of tasks completed.
	Tasks Totals
	// Habits is the number of habit completions.
	Habits Totals
}

// Merger folds the three activity streams into per-day records.
type Merger struct {
	store Store
}

// NewMerger returns a Merger reading from store.
func NewMerger(store Store) *Merger {
	return &Merger{store: store}
}

// Events returns the events of src within w. Overall returns every stream.
// Streams are fetched concurrently.
func (m *Merger) Events(
	ctx context.Context,
	userID string,
	src Source,
	w Window,
) ([]Event, error) {
	var focus, tasks, habits []Event

	g, ctx := errgroup.WithContext(ctx)

	if src == Focus || src == Overall {
		g.Go(func() error {
			sessions, err := m.store.CompletedFocusSessions(ctx, userID, w)
			if err != nil {
				return fmt.Errorf("listing focus sessions: %w", err)
			}

			focus = FocusEvents(sessions)

			return nil
		})
	}

	if src == Task || src == Overall {
		g.Go(func() error {
			list, err := m.store.CompletedTasks(ctx, userID, w)
			if err != nil {
				return fmt.Errorf("listing completed tasks: %w", err)
			}

			tasks = TaskEvents(list)

			return nil
		})
	}

	if src == Habit || src == Overall {
		g.Go(func() error {
			list, err := m.store.HabitCompletions(ctx, userID, w)
			if err != nil {
				return fmt.Errorf("listing habit completions: %w", err)
			}

			habits = HabitEvents(list)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(focus)+len(tasks)+len(habits))
	events = append(events, focus...)
	events = append(events, tasks...)
	events = append(events, habits...)

	return events, nil
}

// Days returns the days on which src had at least one event.
func (m *Merger) Days(
	ctx context.Context,
	userID string,
	src Source,
	w Window,
) (DaySet, error) {
	events, err := m.Events(ctx, userID, src, w)
	if err != nil {
		return nil, err
	}

	return EventDays(events), nil
}

// Daily returns the per-day aggregates of every stream within w.
func (m *Merger) Daily(
	ctx context.Context,
	userID string,
	w Window,
) (Daily, error) {
	events, err := m.Events(ctx, userID, Overall, w)
	if err != nil {
		return Daily{}, err
	}

	return Split(events), nil
}

// Split aggregates events per source.
func Split(events []Event) Daily {
	bySource := make(map[Source][]Event, len(Sources))
	for _, e := range events {
		bySource[e.Source] = append(bySource[e.Source], e)
	}

	sum := func(src Source) Totals {
		return AggregateByDay(
			bySource[src],
			func(e Event) time.Time { return e.OccurredAt },
			func(e Event) float64 { return e.Value },
		)
	}

	return Daily{
		Focus:  sum(Focus),
		Tasks:  sum(Task),
		Habits: sum(Habit),
	}
}

// EventDays returns the distinct days of events.
func EventDays(events []Event) DaySet {
	set := make(DaySet)
	for _, e := range events {
		set[timeutil.ToDayKey(e.OccurredAt)] = struct{}{}
	}

	return set
}

// FocusEvents maps completed sessions to events dated by their start time,
// valued in planned minutes.
func FocusEvents(sessions []session.Session) []Event {
	events := make([]Event, 0, len(sessions))

	for i := range sessions {
		s := &sessions[i]
		if s.Status != session.Completed {
			continue
		}

		events = append(events, Event{
			Source:     Focus,
			OccurredAt: s.StartedAt,
			Value:      float64(s.DurationMinutes),
		})
	}

	return events
}

// TaskEvents maps completed tasks to events dated by their last update.
func TaskEvents(tasks []models.Task) []Event {
	events := make([]Event, 0, len(tasks))

	for i := range tasks {
		if !tasks[i].Completed {
			continue
		}

		events = append(events, Event{
			Source:     Task,
			OccurredAt: tasks[i].UpdatedAt,
			Value:      1,
		})
	}

	return events
}

// HabitEvents maps completions of non-archived habits to events.
func HabitEvents(completions []models.HabitCompletion) []Event {
	events := make([]Event, 0, len(completions))

	for i := range completions {
		if completions[i].Archived {
			continue
		}

		events = append(events, Event{
			Source:     Habit,
			OccurredAt: completions[i].Date,
			Value:      1,
		})
	}

	return events
}
