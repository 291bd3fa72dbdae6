package sim

import "time"

// Clock supplies the timed pauses that are the actors' only suspension
// points. Tests substitute an instant clock.
type Clock interface {
	// After returns a channel that receives once d has elapsed.
	After(d time.Duration) <-chan time.Time
}

// WallClock pauses in real time.
type WallClock struct{}

func (WallClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// InstantClock never waits: every pause completes immediately.
type InstantClock struct{}

func (InstantClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}
