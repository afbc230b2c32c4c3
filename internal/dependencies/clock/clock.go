package clock

import "time"

// Clock abstracts the current time so token expiry and record
// timestamps can be driven by a mock in tests
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

var _ Clock = (*RealClock)(nil)

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time in UTC.
// All stored timestamps and token expiries are UTC.
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}
