// Package clock abstracts the time source so services can validate
// present/future constraints deterministically in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns the wall clock, truncated to UTC.
func System() Clock {
	return systemClock{}
}
