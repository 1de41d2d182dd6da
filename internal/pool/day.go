package pool

import "time"

// DayBoundary returns the start of the server-local day containing t, used
// to reset the daily Learn quota. The day is taken in t's own location:
// the server's clock is time.Now, so that is the process's local zone, and
// tests pass UTC times. There is no per-user timezone and no attempt to
// reconcile client clock skew.
func DayBoundary(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same server-local day.
func SameDay(a, b time.Time) bool {
	return DayBoundary(a).Equal(DayBoundary(b))
}
