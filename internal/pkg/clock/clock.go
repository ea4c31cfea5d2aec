// Package clock abstracts the ambient wall clock so the accrual engine can be
// driven to arbitrary "current dates" in tests.
package clock

import "time"

// Clock provides the current instant. The ledger works exclusively in UTC.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// New returns the real system clock.
func New() Clock {
	return systemClock{}
}
