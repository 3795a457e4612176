package shell

import "time"

// Clock returns the current time. Handlers never read the wall clock themselves,
// the callers pass the time of the operation into BuildCommand / BuildQuery.
type Clock func() time.Time

// SystemClock is the Clock used in production.
func SystemClock() time.Time {
	return time.Now()
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}
