package helpers

import "time"

// Clock supplies the current time. Audit stamping and token expiry read it so tests can pin time.
type Clock interface {
	Now() time.Time
}

// SystemClock returns wall clock time in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// FixedClock always returns the same instant.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
