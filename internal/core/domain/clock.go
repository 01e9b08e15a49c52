package domain

import "time"

// Clock supplies the current instant. Injectable so lifecycle decisions can
// be tested deterministically around the grace boundary.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
