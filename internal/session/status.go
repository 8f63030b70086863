// Package session contains the state machines that coordinate a single live
// call: status reconciliation, the transcript debouncer, the assist pipeline,
// the deep-think latch, call control, and wrap-up polling. The machines hold
// no I/O; the app model translates their decisions into commands.
package session

import "time"

// Status is the reconciled call status the UI trusts.
type Status string

const (
	StatusRinging   Status = "ringing"
	StatusConnected Status = "connected"
	StatusOnHold    Status = "on_hold"
	StatusEnded     Status = "ended"
	StatusCompleted Status = "completed"
	// StatusMissed may be reported by the call-record service. It is
	// terminal but never becomes the effective status; it maps to ended.
	StatusMissed Status = "missed"
)

// Terminal reports whether s is a terminal call status.
func (s Status) Terminal() bool {
	switch s {
	case StatusEnded, StatusCompleted, StatusMissed:
		return true
	}
	return false
}

// StatusReconciler merges push-delivered status with the polled call record
// into one effective status. Push wins while both report non-terminal values;
// a terminal report from either source sticks permanently; a confirmed local
// action (End Call acknowledged by the server) overrides everything and
// disables further reconciliation.
type StatusReconciler struct {
	pushStatus Status // zero until the push channel reports
	pollStatus Status
	effective  Status
	terminal   bool
	locked     bool
}

// NewStatusReconciler starts reconciliation from an initial status, normally
// the status on the first call-record fetch.
func NewStatusReconciler(initial Status) *StatusReconciler {
	r := &StatusReconciler{effective: initial, pollStatus: initial}
	if initial.Terminal() {
		r.markTerminal(initial)
	}
	return r
}

// ObservePush feeds a push-delivered status and returns the effective status.
func (r *StatusReconciler) ObservePush(s Status) Status {
	if r.locked || r.terminal {
		return r.effective
	}
	r.pushStatus = s
	if s.Terminal() {
		r.markTerminal(s)
		return r.effective
	}
	r.effective = s
	return r.effective
}

// ObservePoll feeds a polled call record status. A non-nil end timestamp is
// treated as a terminal report even if the status field lags behind.
func (r *StatusReconciler) ObservePoll(s Status, endedAt *time.Time) Status {
	if r.locked || r.terminal {
		return r.effective
	}
	r.pollStatus = s
	if s.Terminal() || endedAt != nil {
		if !s.Terminal() {
			s = StatusEnded
		}
		r.markTerminal(s)
		return r.effective
	}
	// Push is fresher when present; poll is the fallback.
	if r.pushStatus == "" {
		r.effective = s
	}
	return r.effective
}

// ObserveLocal feeds a server-confirmed result of a local call-control
// action. A terminal result locks the reconciler: no later poll or push
// observation can change the effective status again.
func (r *StatusReconciler) ObserveLocal(s Status) Status {
	if r.locked || r.terminal {
		return r.effective
	}
	if s.Terminal() {
		r.markTerminal(s)
		r.locked = true
		return r.effective
	}
	// Hold/resume confirmations are the freshest signal we have.
	r.pushStatus = s
	r.effective = s
	return r.effective
}

func (r *StatusReconciler) markTerminal(s Status) {
	if s == StatusMissed {
		s = StatusEnded
	}
	r.effective = s
	r.terminal = true
}

// Effective returns the current reconciled status.
func (r *StatusReconciler) Effective() Status { return r.effective }

// Terminal reports whether the session has reached a terminal status.
func (r *StatusReconciler) Terminal() bool { return r.terminal }

// PollingActive reports whether the status poll loop should keep running.
// Once false it never becomes true again for this session.
func (r *StatusReconciler) PollingActive() bool { return !r.terminal && !r.locked }
