// Package clock abstracts the wall clock so that streak, heatmap and timer
// calculations can be driven by an explicit instant.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// Real reads the system time.
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Func adapts a function to the Clock interface.
type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}
