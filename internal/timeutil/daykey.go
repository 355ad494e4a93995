package timeutil

import (
	"time"
)

const dayKeyLayout = "2006-01-02"

// DayKey identifies a calendar day in UTC. Keys are formatted as YYYY-MM-DD,
// so string order equals chronological order.
type DayKey string

// ToDayKey returns the UTC calendar day that t falls on. It never consults the
// host's local timezone.
func ToDayKey(t time.Time) DayKey {
	return DayKey(t.UTC().Format(dayKeyLayout))
}

// ParseDayKey returns midnight UTC of the day identified by k. Both the bare
// date and the date with an explicit "T00:00:00Z" suffix are accepted.
func ParseDayKey(k string) (time.Time, error) {
	if len(k) > len(dayKeyLayout) {
		t, err := time.Parse(time.RFC3339, k)
		if err != nil {
			return time.Time{}, errInvalidDate.Fmt(k)
		}

		t = t.UTC()

		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	t, err := time.Parse(dayKeyLayout, k)
	if err != nil {
		return time.Time{}, errInvalidDate.Fmt(k)
	}

	return t, nil
}

// Time returns midnight UTC of the day. Keys produced by ToDayKey always
// parse; a malformed key yields the zero time.
func (k DayKey) Time() time.Time {
	t, _ := ParseDayKey(string(k))

	return t
}

// AddDays moves the key n calendar days forward (or backward if n < 0).
func (k DayKey) AddDays(n int) DayKey {
	return ToDayKey(k.Time().AddDate(0, 0, n))
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b DayKey) int {
	return Round(b.Time().Sub(a.Time()).Hours() / HoursInADay)
}

// DayRange returns every key from start to end inclusive, ascending.
func DayRange(start, end DayKey) []DayKey {
	if end < start {
		return nil
	}

	keys := make([]DayKey, 0, DaysBetween(start, end)+1)

	for k := start; k <= end; k = k.AddDays(1) {
		keys = append(keys, k)
	}

	return keys
}
