package sim

import (
	"context"
	"time"
)

// runEvery calls tick each time wait() elapses, until ctx is cancelled.
// Cancellation is observed only at the top of an iteration, never inside
// tick, so an in-flight robot task always runs to completion.
func runEvery(ctx context.Context, clock Clock, wait func() time.Duration, tick func()) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-clock.After(wait()):
		}
		// Both cases may be ready at once; cancellation wins.
		if ctx.Err() != nil {
			return nil
		}
		tick()
	}
}

// fixed returns a wait function for a constant interval.
func fixed(d time.Duration) func() time.Duration {
	return func() time.Duration { return d }
}
