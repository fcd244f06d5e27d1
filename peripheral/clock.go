package peripheral

import "time"

// SystemClock is the real monotonic clock
type SystemClock struct{}

// NewSystemClock creates a clock backed by time.Now and time.Sleep
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time with monotonic clock reading
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep blocks the calling goroutine for d
func (c *SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
