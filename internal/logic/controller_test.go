package logic

import (
	"testing"
	"time"
)

// defaultThreshold matches 500 ms hold at the 36 ms wake period.
const defaultThreshold = 13

func TestNewController(t *testing.T) {
	c := NewController(defaultThreshold)
	if c == nil {
		t.Fatal("NewController returned nil")
	}
	if c.Supply() != SupplyOff {
		t.Errorf("new controller supply: got %s, want OFF", c.Supply())
	}
	if c.SupplyOn() {
		t.Error("new controller should report supply off")
	}
	if c.Armed() {
		t.Error("new controller should not be armed")
	}
}

func TestHoldThreshold(t *testing.T) {
	tests := []struct {
		hold   time.Duration
		period time.Duration
		want   uint
	}{
		{500 * time.Millisecond, 36 * time.Millisecond, 13},
		{500 * time.Millisecond, 100 * time.Millisecond, 5},
		{500 * time.Millisecond, 150 * time.Millisecond, 3}, // rounds down
		{500 * time.Millisecond, 500 * time.Millisecond, 1},
		{500 * time.Millisecond, 500 * time.Microsecond, 1000}, // sub-millisecond period
		{500 * time.Millisecond, 0, 0},
		{-500 * time.Millisecond, 36 * time.Millisecond, 0},
	}
	for _, tt := range tests {
		if got := HoldThreshold(tt.hold, tt.period); got != tt.want {
			t.Errorf("HoldThreshold(%v, %v): got %d, want %d", tt.hold, tt.period, got, tt.want)
		}
	}
}

func TestPowerOnImmediateOnPressEdge(t *testing.T) {
	c := NewController(defaultThreshold)

	// A few released cycles change nothing.
	for i := 0; i < 5; i++ {
		if events := c.Process(false); len(events) != 0 {
			t.Fatalf("released cycle %d: unexpected events %v", i, events)
		}
	}

	events := c.Process(true)
	if len(events) != 1 {
		t.Fatalf("press edge: expected 1 event, got %d", len(events))
	}
	if events[0].Type != EventPowerOn {
		t.Errorf("expected POWER_ON, got %s", events[0].Type)
	}
	if events[0].Supply != SupplyOn {
		t.Errorf("event supply: got %s, want ON", events[0].Supply)
	}
	if events[0].HeldCycles != 0 {
		t.Errorf("power-on should require no hold, got HeldCycles=%d", events[0].HeldCycles)
	}
	if c.Supply() != SupplyOn {
		t.Errorf("supply: got %s, want ON", c.Supply())
	}
}

func TestQuickPressStaysOnIndefinitely(t *testing.T) {
	c := NewController(defaultThreshold)

	c.Process(true) // edge: powers on
	// Immediate release, then a long stretch of idle cycles.
	for i := 0; i < 1000; i++ {
		if events := c.Process(false); len(events) != 0 {
			t.Fatalf("idle cycle %d: unexpected events %v", i, events)
		}
	}
	if c.Supply() != SupplyOn {
		t.Errorf("supply after idle: got %s, want ON", c.Supply())
	}
}

func TestPowerOffExactlyAtThreshold(t *testing.T) {
	c := NewController(defaultThreshold)

	// Power on, release.
	c.Process(true)
	c.Process(false)

	// Press again while on: arms, counter starts at 0.
	events := c.Process(true)
	if len(events) != 0 {
		t.Fatalf("arming edge: unexpected events %v", events)
	}
	if !c.Armed() {
		t.Fatal("press edge while on should arm power-off")
	}
	if c.Supply() != SupplyOn {
		t.Fatalf("arming must not transition, supply=%s", c.Supply())
	}

	// Hold. Cycles 1..12 must not fire; the cycle where the counter
	// reaches 13 must fire exactly once.
	for i := 1; i < defaultThreshold; i++ {
		events = c.Process(true)
		if len(events) != 0 {
			t.Fatalf("held cycle %d: fired early with %v", i, events)
		}
		if c.Supply() != SupplyOn {
			t.Fatalf("held cycle %d: supply=%s, want ON", i, c.Supply())
		}
	}

	events = c.Process(true)
	if len(events) != 1 {
		t.Fatalf("threshold cycle: expected 1 event, got %d", len(events))
	}
	if events[0].Type != EventPowerOff {
		t.Errorf("expected POWER_OFF, got %s", events[0].Type)
	}
	if events[0].HeldCycles != defaultThreshold {
		t.Errorf("HeldCycles: got %d, want %d", events[0].HeldCycles, defaultThreshold)
	}
	if c.Supply() != SupplyOff {
		t.Errorf("supply: got %s, want OFF", c.Supply())
	}
	if c.Armed() {
		t.Error("power-off must disarm")
	}
}

func TestLongHoldFiresPowerOffOnce(t *testing.T) {
	c := NewController(defaultThreshold)
	c.Process(true)
	c.Process(false)

	var fired int
	// Hold well past the threshold without releasing.
	for i := 0; i < defaultThreshold*4; i++ {
		for _, e := range c.Process(true) {
			if e.Type == EventPowerOff {
				fired++
			} else {
				t.Fatalf("cycle %d: unexpected event %s", i, e.Type)
			}
		}
	}
	if fired != 1 {
		t.Errorf("power-off fired %d times during one long hold, want 1", fired)
	}
	if c.Supply() != SupplyOff {
		t.Errorf("supply: got %s, want OFF", c.Supply())
	}
}

func TestEarlyReleaseLeavesSupplyOn(t *testing.T) {
	c := NewController(defaultThreshold)
	c.Process(true)
	c.Process(false)

	// Press while on, hold 5 cycles, release before the threshold.
	c.Process(true)
	for i := 0; i < 5; i++ {
		if events := c.Process(true); len(events) != 0 {
			t.Fatalf("held cycle %d: unexpected events %v", i, events)
		}
	}
	for i := 0; i < 20; i++ {
		if events := c.Process(false); len(events) != 0 {
			t.Fatalf("released cycle %d: unexpected events %v", i, events)
		}
	}
	if c.Supply() != SupplyOn {
		t.Errorf("supply after early release: got %s, want ON", c.Supply())
	}
}

func TestPartialHoldHasNoResidualEffect(t *testing.T) {
	c := NewController(defaultThreshold)
	c.Process(true)
	c.Process(false)

	// Partial hold: 5 cycles, then release.
	c.Process(true)
	for i := 0; i < 5; i++ {
		c.Process(true)
	}
	c.Process(false)

	// New press edge: counter must restart from zero, so the previous 5
	// cycles cannot shorten the required hold.
	c.Process(true)
	if c.HoldCycles() != 1 {
		t.Fatalf("counter after new edge: got %d, want 1", c.HoldCycles())
	}
	for i := 1; i < defaultThreshold; i++ {
		if events := c.Process(true); len(events) != 0 {
			t.Fatalf("held cycle %d: fired early after partial hold, events %v", i, events)
		}
	}
	events := c.Process(true)
	if len(events) != 1 || events[0].Type != EventPowerOff {
		t.Fatalf("threshold cycle: expected POWER_OFF, got %v", events)
	}
}

func TestHoldFromStartupPowersOnOnly(t *testing.T) {
	c := NewController(defaultThreshold)

	// Button held continuously from the very first cycle. The first edge
	// powers on; the ongoing hold must not power back off because the
	// power-off sequence only arms on an edge seen while on.
	events := c.Process(true)
	if len(events) != 1 || events[0].Type != EventPowerOn {
		t.Fatalf("first cycle: expected POWER_ON, got %v", events)
	}
	for i := 0; i < defaultThreshold*4; i++ {
		if events := c.Process(true); len(events) != 0 {
			t.Fatalf("held cycle %d: unexpected events %v", i, events)
		}
	}
	if c.Supply() != SupplyOn {
		t.Errorf("supply: got %s, want ON", c.Supply())
	}
	if c.Armed() {
		t.Error("hold from startup must not arm power-off")
	}

	// Release, then press and hold: normal power-off still works.
	c.Process(false)
	c.Process(true)
	for i := 1; i < defaultThreshold; i++ {
		c.Process(true)
	}
	events = c.Process(true)
	if len(events) != 1 || events[0].Type != EventPowerOff {
		t.Fatalf("expected POWER_OFF after release and full hold, got %v", events)
	}
}

func TestPowerOnRequiresNewEdgeAfterPowerOff(t *testing.T) {
	c := NewController(defaultThreshold)
	c.Process(true)
	c.Process(false)

	// Hold through power-off and keep holding.
	c.Process(true)
	for i := 0; i < defaultThreshold*2; i++ {
		c.Process(true)
	}
	if c.Supply() != SupplyOff {
		t.Fatalf("supply: got %s, want OFF", c.Supply())
	}

	// Still holding: no power-on without a fresh edge.
	for i := 0; i < 20; i++ {
		if events := c.Process(true); len(events) != 0 {
			t.Fatalf("held cycle %d: unexpected events %v", i, events)
		}
	}

	// Release and press again: powers on immediately.
	c.Process(false)
	events := c.Process(true)
	if len(events) != 1 || events[0].Type != EventPowerOn {
		t.Fatalf("expected POWER_ON on new edge, got %v", events)
	}
}

func TestEventCounts(t *testing.T) {
	c := NewController(2)

	// On, off, on.
	c.Process(true) // POWER_ON
	c.Process(false)
	c.Process(true) // arm
	c.Process(true)
	c.Process(true) // POWER_OFF at counter=2
	c.Process(false)
	c.Process(true) // POWER_ON

	counts := c.EventCountsSnapshot()
	if counts.PowerOn != 2 {
		t.Errorf("PowerOn count: got %d, want 2", counts.PowerOn)
	}
	if counts.PowerOff != 1 {
		t.Errorf("PowerOff count: got %d, want 1", counts.PowerOff)
	}
}
