package activity

import (
	"time"

	"github.com/ayoisaiah/momentum/internal/timeutil"
)

// Totals maps a day to an aggregated value.
type Totals map[timeutil.DayKey]float64

// AggregateByDay groups items by the UTC day of instant(item) and sums
// value(item). A nil value counts each item as 1.
func AggregateByDay[T any](
	items []T,
	instant func(T) time.Time,
	value func(T) float64,
) Totals {
	totals := make(Totals)

	for _, item := range items {
		v := 1.0
		if value != nil {
			v = value(item)
		}

		totals[timeutil.ToDayKey(instant(item))] += v
	}

	return totals
}

// MaxDaily returns the largest value in totals. An empty map yields 0.
func MaxDaily(totals Totals) float64 {
	if len(totals) == 0 {
		return 0
	}

	first := true

	var highest float64

	for _, v := range totals {
		if first || v > highest {
			highest = v
			first = false
		}
	}

	return highest
}

// Days returns the days with a positive total.
func (t Totals) Days() DaySet {
	set := make(DaySet, len(t))

	for k, v := range t {
		if v > 0 {
			set[k] = struct{}{}
		}
	}

	return set
}

// Get returns the total for a day rounded to the nearest integer.
func (t Totals) Get(k timeutil.DayKey) int {
	return timeutil.Round(t[k])
}
