package stats

import (
	"context"

	"github.com/ayoisaiah/momentum/internal/activity"
	"github.com/ayoisaiah/momentum/internal/clock"
	"github.com/ayoisaiah/momentum/internal/heatmap"
	"github.com/ayoisaiah/momentum/internal/streak"
	"github.com/ayoisaiah/momentum/internal/timeutil"
)

// Engine answers streak and heatmap queries from the activity streams.
type Engine struct {
	merger     *activity.Merger
	clock      clock.Clock
	windowDays int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the engine's time source.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithWindowDays bounds streak queries to the last n days. Zero reads the
// full history.
func WithWindowDays(n int) Option {
	return func(e *Engine) {
		e.windowDays = n
	}
}

// NewEngine returns an Engine reading from store.
func NewEngine(store activity.Store, opts ...Option) *Engine {
	e := &Engine{
		merger: activity.NewMerger(store),
		clock:  clock.Real{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Streak returns the user's current and best streaks for src.
func (e *Engine) Streak(
	ctx context.Context,
	userID string,
	src activity.Source,
) (streak.Result, error) {
	now := e.clock.Now()

	var w activity.Window

	if e.windowDays > 0 {
		today := timeutil.ToDayKey(now)
		w = activity.DayWindow(today.AddDays(-(e.windowDays - 1)), today)
	}

	days, err := e.merger.Days(ctx, userID, src, w)
	if err != nil {
		return streak.Result{}, err
	}

	return streak.Calculate(days, now), nil
}

// Streaks returns the overall streak and that of every source, keyed by
// source.
func (e *Engine) Streaks(
	ctx context.Context,
	userID string,
) (map[activity.Source]streak.Result, error) {
	sources := append([]activity.Source{activity.Overall}, activity.Sources...)
	results := make(map[activity.Source]streak.Result, len(sources))

	for _, src := range sources {
		r, err := e.Streak(ctx, userID, src)
		if err != nil {
			return nil, err
		}

		results[src] = r
	}

	return results, nil
}

// Heatmap returns one cell per day for the given number of weeks ending
// today.
func (e *Engine) Heatmap(
	ctx context.Context,
	userID string,
	weeks int,
) ([]heatmap.Day, error) {
	if err := heatmap.ValidateWeeks(weeks); err != nil {
		return nil, err
	}

	start, end := heatmap.Range(timeutil.ToDayKey(e.clock.Now()), weeks)

	daily, err := e.merger.Daily(ctx, userID, activity.DayWindow(start, end))
	if err != nil {
		return nil, err
	}

	return heatmap.Build(start, end, daily), nil
}
