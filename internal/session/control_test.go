package session

import (
	"errors"
	"testing"
)

func TestSecondActionRejectedWhilePending(t *testing.T) {
	var m CallControlMachine

	if err := m.Begin(ActionHold, false); err != nil {
		t.Fatalf("first hold: %v", err)
	}
	if err := m.Begin(ActionHold, false); !errors.Is(err, ErrActionPending) {
		t.Errorf("second hold err = %v, want ErrActionPending", err)
	}
	if err := m.Begin(ActionEnd, false); !errors.Is(err, ErrActionPending) {
		t.Errorf("end while hold pending err = %v, want ErrActionPending", err)
	}
}

func TestHoldResumeRoundTrip(t *testing.T) {
	var m CallControlMachine

	if err := m.Begin(ActionHold, false); err != nil {
		t.Fatalf("hold: %v", err)
	}
	if m.State() != ControlHolding {
		t.Errorf("state = %q, want holding while hold is in flight", m.State())
	}
	if got := m.Succeed(); got != StatusOnHold {
		t.Errorf("confirmed status = %q, want on_hold", got)
	}
	if !m.OnHold() {
		t.Error("should be on hold after confirmation")
	}

	if err := m.Begin(ActionResume, false); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if m.State() != ControlResuming {
		t.Errorf("state = %q, want resuming", m.State())
	}
	if got := m.Succeed(); got != StatusConnected {
		t.Errorf("confirmed status = %q, want connected", got)
	}
	if m.State() != ControlIdle {
		t.Errorf("state = %q, want idle after resume", m.State())
	}
}

func TestFailureRevertsAndSurfacesError(t *testing.T) {
	var m CallControlMachine

	m.Begin(ActionHold, false)
	m.Fail("pbx rejected hold")

	if m.OnHold() {
		t.Error("failed hold must revert to not-on-hold")
	}
	if m.Pending() != "" {
		t.Error("failure must clear the pending action")
	}
	if m.Error() != "pbx rejected hold" {
		t.Errorf("error = %q", m.Error())
	}

	m.ClearError()
	if m.Error() != "" {
		t.Error("error should clear")
	}
}

func TestResumeRequiresHold(t *testing.T) {
	var m CallControlMachine
	if err := m.Begin(ActionResume, false); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("resume while idle err = %v, want ErrInvalidAction", err)
	}
}

func TestBlindTransferEndsLeg(t *testing.T) {
	var m CallControlMachine

	m.Begin(ActionTransfer, true)
	if m.State() != ControlTransferring {
		t.Errorf("state = %q, want transferring", m.State())
	}
	if got := m.Succeed(); got != StatusEnded {
		t.Errorf("blind transfer confirmed status = %q, want ended", got)
	}
	if err := m.Begin(ActionHold, false); !errors.Is(err, ErrCallOver) {
		t.Errorf("action after end err = %v, want ErrCallOver", err)
	}
}

func TestWarmTransferReturnsToIdle(t *testing.T) {
	var m CallControlMachine

	m.Begin(ActionTransfer, false)
	if got := m.Succeed(); got != "" {
		t.Errorf("warm transfer confirmed status = %q, want none", got)
	}
	if m.State() != ControlIdle {
		t.Errorf("state = %q, want idle", m.State())
	}
}

func TestEndCall(t *testing.T) {
	var m CallControlMachine

	m.Begin(ActionEnd, false)
	if m.State() != ControlEnding {
		t.Errorf("state = %q, want ending", m.State())
	}
	if got := m.Succeed(); got != StatusEnded {
		t.Errorf("confirmed status = %q, want ended", got)
	}
}
