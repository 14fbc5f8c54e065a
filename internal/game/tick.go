package game

import "time"

// TickScheduler gates the economy step on elapsed wall-clock time.
//
// At most one step fires per check. A late frame restarts the interval from
// that frame's time; missed intervals are never caught up.
type TickScheduler struct {
	Interval time.Duration
	last     time.Time
}

// NewTickScheduler creates a scheduler whose first tick is due one
// interval after start.
func NewTickScheduler(interval time.Duration, start time.Time) TickScheduler {
	return TickScheduler{Interval: interval, last: start}
}

// Check reports whether a tick is due at now. When it is, the next tick
// is measured from now.
func (t *TickScheduler) Check(now time.Time) bool {
	if now.Sub(t.last) < t.Interval {
		return false
	}
	t.last = now
	return true
}

// Last returns the time of the most recent tick (or the start time).
func (t *TickScheduler) Last() time.Time {
	return t.last
}
