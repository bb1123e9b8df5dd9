// Package status provides a thread-safe status tracker for the power switch
// daemon. The wake loop writes it; HTTP handlers and telemetry snapshots
// read it.
package status

import (
	"sync"
	"time"

	"github.com/timali/ATXPowerSwitch/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PeriodMs   int64
	HoldMs     int64
	HoldCycles uint
	WatchdogMs int64 // 0 = no watchdog configured
	Broker     string
	HTTPAddr   string
	PinButton  int
	PinSupply  int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Supply        logic.SupplyState
	Armed         bool
	HoldCycles    uint
	Counts        logic.EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
// The supply always starts off.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Supply:    logic.SupplyOff,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets supply state, power-off arming, hold progress, and event
// counts. Called from the wake loop on every cycle.
func (t *Tracker) Update(supply logic.SupplyState, armed bool, holdCycles uint, counts logic.EventCounts) {
	t.mu.Lock()
	t.snap.Supply = supply
	t.snap.Armed = armed
	t.snap.HoldCycles = holdCycles
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
