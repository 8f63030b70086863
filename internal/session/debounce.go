package session

import "time"

const (
	// MinTranscriptDelta is the minimum growth of the joined transcript,
	// in characters, before a quiet-period timer is armed.
	MinTranscriptDelta = 100

	// QuietPeriod is the trailing-debounce window: the pipeline fires only
	// after the transcript stops growing for this long.
	QuietPeriod = 500 * time.Millisecond
)

// TranscriptDebouncer decides when enough new transcript has accumulated to
// warrant another assist run. Each arm bumps a generation counter; a timer
// that fires with a stale generation was superseded by newer input, which is
// how a re-armed timer cancels its predecessor in the event loop.
type TranscriptDebouncer struct {
	lastDispatchLen int
	pendingLen      int
	generation      int
	armed           bool
}

// Observe records the new joined-transcript length. When growth since the
// last dispatch reaches MinTranscriptDelta it returns the generation to carry
// on a fresh QuietPeriod timer and true; otherwise it returns false and no
// timer should be scheduled.
func (d *TranscriptDebouncer) Observe(totalLen int) (int, bool) {
	if totalLen-d.lastDispatchLen < MinTranscriptDelta {
		return 0, false
	}
	d.generation++
	d.pendingLen = totalLen
	d.armed = true
	return d.generation, true
}

// Fire handles a quiet-period timer firing for gen. If the timer is still the
// newest one it returns the length-mark to dispatch with and true; stale or
// duplicate firings return false.
func (d *TranscriptDebouncer) Fire(gen int) (int, bool) {
	if !d.armed || gen != d.generation {
		return 0, false
	}
	d.armed = false
	d.lastDispatchLen = d.pendingLen
	return d.pendingLen, true
}

// Armed reports whether a quiet-period timer is outstanding.
func (d *TranscriptDebouncer) Armed() bool { return d.armed }
