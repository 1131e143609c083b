package clock

import "time"

type SystemClock struct{}

func New() *SystemClock {
	return &SystemClock{}
}

var _ Clock = &SystemClock{}

// Now returns the local wall-clock time. The monotonic reading is stripped so
// that values compare and serialise as plain instants.
func (c *SystemClock) Now() time.Time { return time.Now().Round(0) }
