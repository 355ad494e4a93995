// Package dashboard composes the same-day summary shown by the dashboard
// command and endpoint.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ayoisaiah/momentum/internal/activity"
	"github.com/ayoisaiah/momentum/internal/clock"
	"github.com/ayoisaiah/momentum/internal/models"
	"github.com/ayoisaiah/momentum/internal/session"
	"github.com/ayoisaiah/momentum/internal/streak"
	"github.com/ayoisaiah/momentum/internal/timeutil"
)

// DefaultDailyFocusMinutes is the focus goal used when none is configured.
const DefaultDailyFocusMinutes = 120

// Store is the read access the composer needs.
type Store interface {
	activity.Store
	Active(ctx context.Context, userID string) (*session.Session, error)
	ListHabits(
		ctx context.Context,
		userID string,
		includeArchived bool,
	) ([]models.Habit, error)
}

// Comparison pairs today's value with yesterday's.
type Comparison struct {
	Today     int `json:"today"          yaml:"today"`
	Yesterday int `json:"yesterday"      yaml:"yesterday"`
	// Change is the percent change from yesterday, rounded.
	Change int `json:"percent_change" yaml:"percent_change"`
}

// Progress is a count measured against a target.
type Progress struct {
	Done   int `json:"done"    yaml:"done"`
	Target int `json:"target"  yaml:"target"`
	// Percent of target, capped at 100.
	Percent int `json:"percent" yaml:"percent"`
}

// Streaks holds the overall streak and one per activity source.
type Streaks struct {
	Overall streak.Result `json:"overall" yaml:"overall"`
	Focus   streak.Result `json:"focus"   yaml:"focus"`
	Tasks   streak.Result `json:"tasks"   yaml:"tasks"`
	Habits  streak.Result `json:"habits"  yaml:"habits"`
}

// Current is the open focus session, if any.
type Current struct {
	Session          *session.Session `json:"session"           yaml:"session"`
	RemainingSeconds int              `json:"remaining_seconds" yaml:"remaining_seconds"`
}

// Summary is the dashboard payload.
type Summary struct {
	Current      *Current        `json:"current_session,omitempty" yaml:"current_session,omitempty"`
	Date         timeutil.DayKey `json:"date"                      yaml:"date"`
	Streaks      Streaks         `json:"streaks"                   yaml:"streaks"`
	FocusMinutes Comparison      `json:"focus_minutes"             yaml:"focus_minutes"`
	Tasks        Comparison      `json:"tasks_completed"           yaml:"tasks_completed"`
	Habits       Progress        `json:"habits"                    yaml:"habits"`
	FocusGoal    Progress        `json:"focus_goal"                yaml:"focus_goal"`
	// BestDayFocusMinutes is the most focus minutes completed in a single
	// day within the history window.
	BestDayFocusMinutes int `json:"best_day_focus_minutes" yaml:"best_day_focus_minutes"`
}

// Composer builds dashboard summaries.
type Composer struct {
	store      Store
	merger     *activity.Merger
	clock      clock.Clock
	goal       int
	windowDays int
}

// Option configures a Composer.
type Option func(*Composer)

// WithClock sets the composer's time source.
func WithClock(c clock.Clock) Option {
	return func(comp *Composer) {
		comp.clock = c
	}
}

// WithDailyFocusGoal sets the focus minutes target for a day.
func WithDailyFocusGoal(minutes int) Option {
	return func(comp *Composer) {
		if minutes > 0 {
			comp.goal = minutes
		}
	}
}

// WithWindowDays bounds the history read for streaks to the last n days.
// Zero reads the full history.
func WithWindowDays(n int) Option {
	return func(comp *Composer) {
		comp.windowDays = n
	}
}

// NewComposer returns a Composer reading from store.
func NewComposer(store Store, opts ...Option) *Composer {
	c := &Composer{
		store:  store,
		merger: activity.NewMerger(store),
		clock:  clock.Real{},
		goal:   DefaultDailyFocusMinutes,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compose returns the dashboard summary for the user as of now.
func (c *Composer) Compose(ctx context.Context, userID string) (Summary, error) {
	now := c.clock.Now()
	today := timeutil.ToDayKey(now)
	yesterday := today.AddDays(-1)

	var (
		events  []activity.Event
		habits  []models.Habit
		current *session.Session
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		events, err = c.merger.Events(gctx, userID, activity.Overall, c.window(today))

		return err
	})

	g.Go(func() error {
		var err error

		habits, err = c.store.ListHabits(gctx, userID, false)
		if err != nil {
			return fmt.Errorf("listing habits: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		sess, err := c.store.Active(gctx, userID)
		if errors.Is(err, session.ErrNotFound) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("reading current session: %w", err)
		}

		current = sess

		return nil
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	daily := activity.Split(events)

	focusToday := daily.Focus.Get(today)
	habitsToday := daily.Habits.Get(today)

	overall := activity.EventDays(events)

	summary := Summary{
		Date: today,
		FocusMinutes: compare(
			focusToday,
			daily.Focus.Get(yesterday),
		),
		Tasks: compare(
			daily.Tasks.Get(today),
			daily.Tasks.Get(yesterday),
		),
		Habits:    progress(habitsToday, len(habits)),
		FocusGoal: progress(focusToday, c.goal),
		Streaks: Streaks{
			Overall: streak.Calculate(overall, now),
			Focus:   streak.Calculate(daily.Focus.Days(), now),
			Tasks:   streak.Calculate(daily.Tasks.Days(), now),
			Habits:  streak.Calculate(daily.Habits.Days(), now),
		},
		BestDayFocusMinutes: timeutil.Round(activity.MaxDaily(daily.Focus)),
	}

	if current != nil {
		summary.Current = &Current{
			Session:          current,
			RemainingSeconds: current.Remaining(now),
		}
	}

	return summary, nil
}

// window covers at least today and yesterday.
func (c *Composer) window(today timeutil.DayKey) activity.Window {
	if c.windowDays <= 0 {
		return activity.Window{}
	}

	days := max(c.windowDays, 2)

	return activity.DayWindow(today.AddDays(-(days - 1)), today)
}

// PercentChange returns the rounded percent change from previous to current.
// A zero baseline yields 100 when current is positive and 0 otherwise.
func PercentChange(current, previous int) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}

		return 0
	}

	return timeutil.Round(
		float64(current-previous) / float64(previous) * 100,
	)
}

// PercentOfTarget returns done as a rounded percentage of target, capped at
// 100. A non-positive target yields 0.
func PercentOfTarget(done, target int) int {
	if target <= 0 {
		return 0
	}

	return min(timeutil.Round(float64(done)/float64(target)*100), 100)
}

func compare(today, yesterday int) Comparison {
	return Comparison{
		Today:     today,
		Yesterday: yesterday,
		Change:    PercentChange(today, yesterday),
	}
}

func progress(done, target int) Progress {
	return Progress{
		Done:    done,
		Target:  target,
		Percent: PercentOfTarget(done, target),
	}
}
