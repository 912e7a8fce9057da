package engine

import "time"

// Clock abstracts time.Now() so "today" can be pinned in tests.
// The calendar grid, the slot filter and the store all read time through it.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
