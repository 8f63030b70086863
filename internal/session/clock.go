package session

import "time"

// SessionClock counts wall-clock call duration from 1s ticks. It stops
// advancing once the session reaches a terminal status.
type SessionClock struct {
	elapsed time.Duration
	stopped bool
}

// Tick advances the clock by d and returns the new elapsed duration.
// Ticks arriving after Stop are ignored.
func (c *SessionClock) Tick(d time.Duration) time.Duration {
	if !c.stopped {
		c.elapsed += d
	}
	return c.elapsed
}

// Stop freezes the clock. Stopping twice is harmless.
func (c *SessionClock) Stop() { c.stopped = true }

// Stopped reports whether the clock has been frozen.
func (c *SessionClock) Stopped() bool { return c.stopped }

// Elapsed returns the accumulated call duration.
func (c *SessionClock) Elapsed() time.Duration { return c.elapsed }
