package session

import "time"

// DeepThinkAfter is how long a call must run before the one-time deep
// background analysis is worth dispatching.
const DeepThinkAfter = 120 * time.Second

// DeepThinkGate fires the deep-analysis request exactly once per session.
// The latch is set at the moment ShouldFire grants the dispatch, not when a
// response arrives, so re-evaluations while the request is in flight cannot
// dispatch a duplicate. There is no automatic retry.
type DeepThinkGate struct {
	fired bool
}

// ShouldFire evaluates the gate. It returns true at most once per session,
// and only while the call is live, a customer identity has been resolved,
// and the call has run at least DeepThinkAfter.
func (g *DeepThinkGate) ShouldFire(terminal bool, customerID string, elapsed time.Duration) bool {
	if g.fired || terminal || customerID == "" || elapsed < DeepThinkAfter {
		return false
	}
	g.fired = true
	return true
}

// Fired reports whether the gate has dispatched.
func (g *DeepThinkGate) Fired() bool { return g.fired }
