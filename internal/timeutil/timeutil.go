// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"math"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"

	"github.com/ayoisaiah/momentum/internal/apperr"
)

const HoursInADay = 24

var errInvalidDate = &apperr.Error{
	Kind:    apperr.KindValidation,
	Message: "invalid date: %q",
}

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		0,
		t.Location(),
	)
}

// KeyLayout is a fixed-width UTC timestamp layout. Keys in this layout sort
// chronologically as plain bytes.
const KeyLayout = "2006-01-02T15:04:05.000000000Z"

// ToKey converts a time value to a sortable database key.
func ToKey(t time.Time) []byte {
	return []byte(t.UTC().Format(KeyLayout))
}

// FromStr parses a user supplied date such as "yesterday", "3 days ago" or
// "2025-01-02" relative to now. Dates without a zone are read as UTC.
func FromStr(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errInvalidDate.Fmt(s)
	}

	if t, err := time.Parse(dayKeyLayout, s); err == nil {
		return t, nil
	}

	cfg := &dps.Configuration{
		CurrentTime:     now.UTC(),
		DefaultTimezone: time.UTC,
	}

	dt, err := dps.Parse(cfg, s)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, errInvalidDate.Fmt(s)
	}

	return dt.Time.UTC(), nil
}
