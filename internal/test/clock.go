package test

import "time"

// FixedClock returns a preset instant, advanced explicitly by tests.
type FixedClock struct {
	Time time.Time
}

// Now returns the configured instant.
func (c *FixedClock) Now() time.Time {
	return c.Time
}

// Advance moves the clock forward.
func (c *FixedClock) Advance(d time.Duration) {
	c.Time = c.Time.Add(d)
}

// AdvanceDays moves the clock forward by whole days.
func (c *FixedClock) AdvanceDays(days int) {
	c.Time = c.Time.AddDate(0, 0, days)
}
