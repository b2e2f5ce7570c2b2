package sim

import "time"

// WallClock measures real elapsed time with the monotonic clock.
type WallClock struct {
	last time.Time
	now  func() time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{last: time.Now(), now: time.Now}
}

func (c *WallClock) Restart() time.Duration {
	t := c.now()
	d := t.Sub(c.last)
	c.last = t
	return d
}

// FixedClock reports the same interval on every Restart. Headless runs and
// tests use it for reproducible stepping.
type FixedClock struct {
	Step time.Duration
}

func (c FixedClock) Restart() time.Duration { return c.Step }

// SecondsToDuration converts a float step size to a time.Duration.
func SecondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
