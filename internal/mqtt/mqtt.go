// Package mqtt provides MQTT publishing with abstraction for testing.
// Telemetry is strictly outbound: nothing received from the broker can
// drive the supply line.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/timali/ATXPowerSwitch/internal/logic"
)

// Topic is the MQTT topic for supply transition events.
const Topic = "power/atx-switch/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "power/atx-switch/system"

// PowerEvent pairs a core transition with the wall-clock time it occurred.
// The core counts wake cycles, not time, so the timestamp is attached here.
type PowerEvent struct {
	At    time.Time
	Event logic.Event
}

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a supply transition event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event PowerEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Power PowerPayload `json:"power"`
}

// PowerPayload contains the supply transition details.
type PowerPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Supply    string `json:"supply"`
	// HeldCycles is how many wake cycles the button was held when the
	// transition fired; omitted for power-on, which needs no hold.
	HeldCycles uint `json:"held_cycles,omitempty"`
}

// FormatPayload creates the JSON payload for a supply transition event.
func FormatPayload(event PowerEvent) ([]byte, error) {
	payload := Payload{
		Power: PowerPayload{
			Timestamp:  event.At.UTC().Format(time.RFC3339),
			Event:      string(event.Event.Type),
			Supply:     string(event.Event.Supply),
			HeldCycles: event.Event.HeldCycles,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (LWT) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
