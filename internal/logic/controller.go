package logic

// Controller interprets button samples and owns the supply state.
//
// A press edge while the supply is off powers it on immediately. A press
// edge while the supply is on arms a power-off sequence that fires only
// after the button has been held continuously for the configured number of
// wake cycles. Releasing early leaves the supply untouched; the next press
// edge restarts the hold from zero.
type Controller struct {
	threshold uint // hold cycles required to power off

	supply      SupplyState
	wasPressed  bool
	holdCount   uint
	offArmed    bool
	eventCounts EventCounts
}

// NewController creates a controller with the given power-off hold threshold
// in wake cycles. The supply always starts off, regardless of its state
// before the controlling process last restarted.
func NewController(threshold uint) *Controller {
	return &Controller{
		threshold: threshold,
		supply:    SupplyOff,
	}
}

// Process advances the controller by one wake cycle given the debounced
// button sample (true = pressed) and returns any transition events. The
// wake period itself is the debounce interval; a single sample per cycle is
// trusted.
func (c *Controller) Process(pressed bool) []Event {
	justPressed := pressed && !c.wasPressed
	c.wasPressed = pressed

	// The hold counter is meaningless while the button is released; it is
	// reset on the next press edge, so leave it alone here.
	if !pressed {
		return nil
	}

	if justPressed {
		c.holdCount = 0
	}

	event := c.step(justPressed)
	c.holdCount++

	if event == nil {
		return nil
	}

	switch event.Type {
	case EventPowerOn:
		c.eventCounts.PowerOn++
	case EventPowerOff:
		c.eventCounts.PowerOff++
	}

	return []Event{*event}
}

// step runs the two-state machine for one pressed cycle.
// justPressed marks the press edge; holdCount is 0 on the edge and has
// advanced once per held cycle since.
func (c *Controller) step(justPressed bool) *Event {
	if c.supply == SupplyOn {
		// Arm only on the edge. Arming on every held cycle would let a
		// single long hold re-trigger after firing.
		if justPressed {
			c.offArmed = true
		}

		if c.offArmed && c.holdCount >= c.threshold {
			c.supply = SupplyOff
			c.offArmed = false
			return &Event{Type: EventPowerOff, Supply: SupplyOff, HeldCycles: c.holdCount}
		}
		return nil
	}

	// Supply off: a press edge powers on with no hold requirement. This
	// asymmetry (instant on, held off) is the whole point of the device.
	if justPressed {
		c.supply = SupplyOn
		return &Event{Type: EventPowerOn, Supply: SupplyOn}
	}
	return nil
}

// Supply returns the commanded supply state.
func (c *Controller) Supply() SupplyState {
	return c.supply
}

// SupplyOn reports whether the supply output should currently be enabled.
// The caller drives the output line with this value every cycle.
func (c *Controller) SupplyOn() bool {
	return c.supply == SupplyOn
}

// Armed reports whether a power-off sequence is armed.
func (c *Controller) Armed() bool {
	return c.offArmed
}

// HoldCycles returns the number of cycles the button has been held since
// the last press edge. Only meaningful while the button is pressed.
func (c *Controller) HoldCycles() uint {
	return c.holdCount
}

// EventCountsSnapshot returns a copy of the transition counts since startup.
func (c *Controller) EventCountsSnapshot() EventCounts {
	return c.eventCounts
}
