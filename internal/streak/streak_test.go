package streak

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/momentum/internal/activity"
	"github.com/ayoisaiah/momentum/internal/timeutil"
)

var now = time.Date(2025, 7, 10, 15, 0, 0, 0, time.UTC)

func daysAgo(n ...int) activity.DaySet {
	today := timeutil.ToDayKey(now)

	set := make(activity.DaySet)
	for _, v := range n {
		set[today.AddDays(-v)] = struct{}{}
	}

	return set
}

func TestCalculate(t *testing.T) {
	cases := []struct {
		Name string
		Days activity.DaySet
		Want Result
	}{
		{
			Name: "empty set",
			Days: activity.DaySet{},
			Want: Result{0, 0},
		},
		{
			Name: "nil set",
			Days: nil,
			Want: Result{0, 0},
		},
		{
			Name: "single old day",
			Days: daysAgo(5),
			Want: Result{Current: 0, Best: 1},
		},
		{
			Name: "today only",
			Days: daysAgo(0),
			Want: Result{Current: 1, Best: 1},
		},
		{
			Name: "yesterday anchors the current streak",
			Days: daysAgo(1, 2, 3),
			Want: Result{Current: 3, Best: 3},
		},
		{
			Name: "gap ends the current streak",
			Days: daysAgo(0, 1, 3, 4, 5, 6),
			Want: Result{Current: 2, Best: 4},
		},
		{
			Name: "two days ago is too old",
			Days: daysAgo(2, 3),
			Want: Result{Current: 0, Best: 2},
		},
		{
			Name: "best run in the past",
			Days: daysAgo(0, 10, 11, 12, 13, 14, 20),
			Want: Result{Current: 1, Best: 5},
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Want, Calculate(tc.Days, now))
		})
	}
}

func TestCalculateConsecutiveRun(t *testing.T) {
	for _, n := range []int{1, 2, 7, 30, 366} {
		offsets := make([]int, n)
		for i := range offsets {
			offsets[i] = i
		}

		got := Calculate(daysAgo(offsets...), now)

		assert.Equal(t, n, got.Current, n)
		assert.Equal(t, n, got.Best, n)
	}
}

func TestCalculateAcrossMonthAndYear(t *testing.T) {
	newYear := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	days := activity.NewDaySet("2024-12-30", "2024-12-31", "2025-01-01")

	assert.Equal(t, Result{Current: 3, Best: 3}, Calculate(days, newYear))

	leap := activity.NewDaySet("2024-02-28", "2024-02-29", "2024-03-01")
	assert.Equal(t, 3, Calculate(leap, newYear).Best)
}

func TestCalculateUsesUTCDay(t *testing.T) {
	days := activity.NewDaySet("2025-07-10")

	// 01:00 on the 11th in UTC+3 is still the 10th in UTC
	local := time.Date(2025, 7, 11, 1, 0, 0, 0, time.FixedZone("EAT", 3*60*60))

	assert.Equal(t, 1, Calculate(days, local).Current)
}

func TestCalculateAcrossDSTChange(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	days := activity.NewDaySet("2025-11-01", "2025-11-02")

	// 19:30 on Nov 2 in New York, the day clocks go back, is 00:30 on
	// Nov 3 in UTC. Yesterday in UTC is Nov 2.
	now := time.Date(2025, 11, 2, 19, 30, 0, 0, ny)

	want := Result{Current: 2, Best: 2}
	assert.Equal(t, want, Calculate(days, now))
	assert.Equal(t, want, Calculate(days, now.UTC()))
}

func TestBestNeverBelowCurrent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		set := make(activity.DaySet)

		for j := rng.Intn(40); j > 0; j-- {
			set[timeutil.ToDayKey(now).AddDays(-rng.Intn(60))] = struct{}{}
		}

		got := Calculate(set, now)
		assert.GreaterOrEqual(t, got.Best, got.Current)
		assert.GreaterOrEqual(t, got.Current, 0)
	}
}
