package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/momentum/internal/apperr"
	"github.com/ayoisaiah/momentum/internal/models"
	"github.com/ayoisaiah/momentum/internal/session"
	"github.com/ayoisaiah/momentum/internal/timeutil"
)

func at(day, hour int) time.Time {
	return time.Date(2025, 3, day, hour, 0, 0, 0, time.UTC)
}

func TestAggregateByDayCounts(t *testing.T) {
	items := []time.Time{at(1, 8), at(1, 23), at(2, 0), at(4, 12)}

	got := AggregateByDay(items, func(t time.Time) time.Time { return t }, nil)

	want := Totals{"2025-03-01": 2, "2025-03-02": 1, "2025-03-04": 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AggregateByDay mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateByDaySums(t *testing.T) {
	type item struct {
		at      time.Time
		minutes float64
	}

	items := []item{{at(1, 9), 25}, {at(1, 14), 50}, {at(3, 9), 15}}

	got := AggregateByDay(
		items,
		func(i item) time.Time { return i.at },
		func(i item) float64 { return i.minutes },
	)

	assert.Equal(t, 75, got.Get("2025-03-01"))
	assert.Equal(t, 15, got.Get("2025-03-03"))
	assert.Equal(t, 0, got.Get("2025-03-02"))
}

func TestMaxDaily(t *testing.T) {
	assert.Equal(t, 0.0, MaxDaily(nil))
	assert.Equal(t, 0.0, MaxDaily(Totals{}))
	assert.Equal(t, 7.0, MaxDaily(Totals{"2025-03-01": 2, "2025-03-02": 7}))
	assert.Equal(t, 3.0, MaxDaily(Totals{"2025-03-01": 3}))
}

func TestParseSource(t *testing.T) {
	src, err := ParseSource(" Habit ")
	require.NoError(t, err)
	assert.Equal(t, Habit, src)

	src, err = ParseSource("")
	require.NoError(t, err)
	assert.Equal(t, Overall, src)

	_, err = ParseSource("sleep")
	assert.True(t, apperr.IsValidation(err))
}

func TestWindow(t *testing.T) {
	w := DayWindow("2025-03-02", "2025-03-03")

	assert.False(t, w.Contains(at(1, 23)))
	assert.True(t, w.Contains(at(2, 0)))
	assert.True(t, w.Contains(time.Date(2025, 3, 3, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.Contains(at(4, 0)))
	assert.True(t, Window{}.Contains(at(20, 0)))
}

type fakeStore struct {
	err      error
	sessions []session.Session
	tasks    []models.Task
	habits   []models.HabitCompletion
}

func (f *fakeStore) CompletedFocusSessions(
	_ context.Context,
	_ string,
	_ Window,
) ([]session.Session, error) {
	return f.sessions, f.err
}

func (f *fakeStore) CompletedTasks(
	_ context.Context,
	_ string,
	_ Window,
) ([]models.Task, error) {
	return f.tasks, nil
}

func (f *fakeStore) HabitCompletions(
	_ context.Context,
	_ string,
	_ Window,
) ([]models.HabitCompletion, error) {
	return f.habits, nil
}

func testStore() *fakeStore {
	return &fakeStore{
		sessions: []session.Session{
			{Status: session.Completed, StartedAt: at(1, 9), DurationMinutes: 25},
			{Status: session.Completed, StartedAt: at(1, 23), DurationMinutes: 50},
			{Status: session.Cancelled, StartedAt: at(5, 9), DurationMinutes: 25},
		},
		tasks: []models.Task{
			{Completed: true, UpdatedAt: at(2, 10)},
			{Completed: false, UpdatedAt: at(6, 10)},
		},
		habits: []models.HabitCompletion{
			{Date: at(3, 0)},
			{Date: at(3, 0)},
			{Date: at(7, 0), Archived: true},
		},
	}
}

func TestMergerDays(t *testing.T) {
	m := NewMerger(testStore())
	ctx := context.Background()

	cases := map[Source][]timeutil.DayKey{
		Focus:   {"2025-03-01"},
		Task:    {"2025-03-02"},
		Habit:   {"2025-03-03"},
		Overall: {"2025-03-01", "2025-03-02", "2025-03-03"},
	}

	for src, want := range cases {
		got, err := m.Days(ctx, "ayo", src, Window{})
		require.NoError(t, err)
		assert.Equal(t, NewDaySet(want...), got, src)
	}
}

func TestMergerDaily(t *testing.T) {
	m := NewMerger(testStore())

	daily, err := m.Daily(context.Background(), "ayo", Window{})
	require.NoError(t, err)

	assert.Equal(t, 75, daily.Focus.Get("2025-03-01"))
	assert.Equal(t, 1, daily.Tasks.Get("2025-03-02"))
	assert.Equal(t, 2, daily.Habits.Get("2025-03-03"))
	assert.Equal(t, 0, daily.Habits.Get("2025-03-07"))
}

func TestMergerPropagatesErrors(t *testing.T) {
	store := testStore()
	store.err = errors.New("database closed")

	_, err := NewMerger(store).Days(context.Background(), "ayo", Overall, Window{})
	assert.ErrorIs(t, err, store.err)

	// the focus stream is not read for other sources
	_, err = NewMerger(store).Days(context.Background(), "ayo", Task, Window{})
	assert.NoError(t, err)
}
