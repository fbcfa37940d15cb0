package types

import "time"

// Clock supplies the current time. Services take a Clock instead of
// calling time.Now directly so proration math is deterministic in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock returns a Clock backed by the wall clock in UTC.
func NewRealClock() Clock {
	return realClock{}
}

// FixedClock always reports the same instant.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}

// DateOnly truncates t to midnight UTC. All billing-period day counts
// operate on these normalized dates so host timezones and DST cannot
// shift a period boundary.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from a to b
// after normalizing both to midnight UTC. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
