package mocks

import (
	"github.com/mcoot/playerhub-go/internal/dependencies/random"
)

// MockRandom is a Random that replays queued values. With nothing
// queued, String returns "", which keeps token IDs deterministic in
// wired-up test apps.
type MockRandom struct {
	queued []string
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom with an empty queue
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// QueueString appends values for String to return, in order
func (r *MockRandom) QueueString(values ...string) {
	r.queued = append(r.queued, values...)
}

// String pops and returns the next queued value
func (r *MockRandom) String(length int, alphabet string) string {
	if len(r.queued) == 0 {
		return ""
	}
	next := r.queued[0]
	r.queued = r.queued[1:]
	return next
}
