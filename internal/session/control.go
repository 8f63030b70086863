package session

import "errors"

// ControlAction is a call-control request the agent can issue.
type ControlAction string

const (
	ActionHold     ControlAction = "hold"
	ActionResume   ControlAction = "resume"
	ActionTransfer ControlAction = "transfer"
	ActionEnd      ControlAction = "end"
)

// ControlState is the call-control machine's externally visible state.
type ControlState string

const (
	ControlIdle         ControlState = "idle"
	ControlHolding      ControlState = "holding"
	ControlResuming     ControlState = "resuming"
	ControlTransferring ControlState = "transferring"
	ControlEnding       ControlState = "ending"
)

var (
	// ErrActionPending is returned when an action is requested while
	// another is still in flight. No network call is made.
	ErrActionPending = errors.New("another call action is already in progress")

	// ErrInvalidAction is returned when the action does not apply to the
	// current state, e.g. resume while not on hold.
	ErrInvalidAction = errors.New("action not valid in current call state")

	// ErrCallOver is returned when the call has already ended.
	ErrCallOver = errors.New("call has ended")
)

// CallControlMachine serializes hold/resume/transfer/end. At most one action
// is in flight; success commits the confirmed state, failure reverts to the
// pre-action state and surfaces a transient error the caller clears after a
// timeout.
type CallControlMachine struct {
	onHold    bool
	pending   ControlAction
	prevHold  bool
	blind     bool
	ended     bool
	lastError string
}

// State reports the machine state, naming the in-flight action while one is
// pending.
func (m *CallControlMachine) State() ControlState {
	switch m.pending {
	case ActionHold:
		return ControlHolding
	case ActionResume:
		return ControlResuming
	case ActionTransfer:
		return ControlTransferring
	case ActionEnd:
		return ControlEnding
	}
	if m.onHold {
		return ControlHolding
	}
	return ControlIdle
}

// Begin admits an action. blind only matters for transfers: a blind transfer
// ends the agent leg on success, a warm transfer returns to idle.
func (m *CallControlMachine) Begin(a ControlAction, blind bool) error {
	if m.ended {
		return ErrCallOver
	}
	if m.pending != "" {
		return ErrActionPending
	}
	switch a {
	case ActionHold:
		if m.onHold {
			return ErrInvalidAction
		}
	case ActionResume:
		if !m.onHold {
			return ErrInvalidAction
		}
	case ActionTransfer, ActionEnd:
	default:
		return ErrInvalidAction
	}
	m.prevHold = m.onHold
	m.pending = a
	m.blind = blind
	return nil
}

// Succeed commits the confirmed result of the in-flight action and returns
// the call status the server confirmed, or "" when the action does not move
// the call status (warm transfer).
func (m *CallControlMachine) Succeed() Status {
	a := m.pending
	m.pending = ""
	m.lastError = ""
	switch a {
	case ActionHold:
		m.onHold = true
		return StatusOnHold
	case ActionResume:
		m.onHold = false
		return StatusConnected
	case ActionEnd:
		m.ended = true
		return StatusEnded
	case ActionTransfer:
		if m.blind {
			m.ended = true
			return StatusEnded
		}
		m.onHold = false
		return ""
	}
	return ""
}

// Fail reverts the in-flight action and records a transient error message.
func (m *CallControlMachine) Fail(msg string) {
	m.pending = ""
	m.onHold = m.prevHold
	m.lastError = msg
}

// Pending returns the in-flight action, or "".
func (m *CallControlMachine) Pending() ControlAction { return m.pending }

// OnHold reports the settled hold state.
func (m *CallControlMachine) OnHold() bool { return m.onHold }

// Error returns the last action error, or "".
func (m *CallControlMachine) Error() string { return m.lastError }

// ClearError drops the transient error. Called from the expiry timer.
func (m *CallControlMachine) ClearError() { m.lastError = "" }
