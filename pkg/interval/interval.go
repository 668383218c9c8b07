// Package interval models half-open booking time ranges [start, end) and
// the overlap predicate used by conflict detection.
package interval

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// IsWellFormed reports whether the range is strictly ordered. Equal or
// inverted bounds are invalid; a zero-length interval cannot be booked.
func IsWellFormed(start, end time.Time) bool {
	return start.Before(end)
}

func (iv Interval) IsWellFormed() bool {
	return IsWellFormed(iv.Start, iv.End)
}

// Overlaps reports whether two intervals collide. The comparison is strict
// on both ends, so touching intervals (a.End == b.Start) do not overlap
// and back-to-back bookings are allowed.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

func (iv Interval) Overlaps(other Interval) bool {
	return Overlaps(iv, other)
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}
