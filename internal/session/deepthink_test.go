package session

import (
	"testing"
	"time"
)

func TestDeepThinkFiresExactlyOnce(t *testing.T) {
	var g DeepThinkGate
	var c SessionClock

	// 50 one-second ticks crossing the 120s threshold; the guard is
	// re-evaluated on every tick but dispatches once.
	c.Tick(100 * time.Second)
	fires := 0
	for i := 0; i < 50; i++ {
		elapsed := c.Tick(time.Second)
		if g.ShouldFire(false, "cust-77", elapsed) {
			fires++
		}
	}
	if fires != 1 {
		t.Errorf("fires = %d, want exactly 1", fires)
	}
}

func TestDeepThinkPreconditions(t *testing.T) {
	var g DeepThinkGate

	if g.ShouldFire(false, "cust-1", 119*time.Second) {
		t.Error("must not fire before 120s")
	}
	if g.ShouldFire(false, "", 130*time.Second) {
		t.Error("must not fire without a resolved customer")
	}
	if g.ShouldFire(true, "cust-1", 130*time.Second) {
		t.Error("must not fire on a terminal session")
	}
	if g.Fired() {
		t.Error("rejected evaluations must not set the latch")
	}
	if !g.ShouldFire(false, "cust-1", 130*time.Second) {
		t.Error("should fire once all conditions hold")
	}
}

func TestDeepThinkLatchSetAtDispatch(t *testing.T) {
	var g DeepThinkGate

	// The latch is set when the dispatch is granted, so a re-evaluation
	// while the request is still in flight cannot duplicate it.
	if !g.ShouldFire(false, "cust-9", DeepThinkAfter) {
		t.Fatal("expected first evaluation to fire")
	}
	if !g.Fired() {
		t.Fatal("latch must be set before any response arrives")
	}
	if g.ShouldFire(false, "cust-9", DeepThinkAfter+time.Second) {
		t.Error("in-flight re-evaluation dispatched a duplicate")
	}
}

func TestClockStopsAtTerminal(t *testing.T) {
	var c SessionClock

	c.Tick(30 * time.Second)
	c.Stop()
	c.Tick(10 * time.Second)

	if c.Elapsed() != 30*time.Second {
		t.Errorf("elapsed = %v, want 30s after stop", c.Elapsed())
	}
	if !c.Stopped() {
		t.Error("clock should report stopped")
	}
}
