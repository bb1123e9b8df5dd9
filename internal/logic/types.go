// Package logic contains pure business logic for the power switch state
// machine. This package has NO external dependencies (no GPIO, MQTT, OS, or
// time.Sleep). It is advanced one wake cycle at a time by the caller.
package logic

import "time"

// SupplyState represents the commanded state of the power supply output.
type SupplyState string

const (
	SupplyOff SupplyState = "OFF"
	SupplyOn  SupplyState = "ON"
)

// EventType represents a supply state transition event.
type EventType string

const (
	EventPowerOn  EventType = "POWER_ON"
	EventPowerOff EventType = "POWER_OFF"
)

// Event represents a supply state transition to be published.
type Event struct {
	Type   EventType
	Supply SupplyState
	// HeldCycles is the number of wake cycles the button had been held when
	// the transition fired. 0 for POWER_ON (no hold required).
	HeldCycles uint
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	PowerOn  int
	PowerOff int
}

// HoldThreshold converts the hold-to-power-off duration into a whole number
// of wake cycles, rounded down. With the defaults (500 ms hold, 36 ms
// period) this is 13 cycles.
func HoldThreshold(hold, period time.Duration) uint {
	if period <= 0 || hold <= 0 {
		return 0
	}
	return uint(hold / period)
}
