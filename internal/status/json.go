package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Supply        string     `json:"supply"`
	Armed         bool       `json:"power_off_armed"`
	HoldCycles    uint       `json:"hold_cycles"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	PowerOn  int `json:"power_on"`
	PowerOff int `json:"power_off"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PeriodMs   int64  `json:"period_ms"`
	HoldMs     int64  `json:"hold_ms"`
	HoldCycles uint   `json:"hold_cycles"`
	WatchdogMs int64  `json:"watchdog_ms"`
	Broker     string `json:"broker"`
	HTTPAddr   string `json:"http_addr"`
	PinButton  int    `json:"pin_button"`
	PinSupply  int    `json:"pin_supply"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Supply:        string(snap.Supply),
		Armed:         snap.Armed,
		HoldCycles:    snap.HoldCycles,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			PowerOn:  snap.Counts.PowerOn,
			PowerOff: snap.Counts.PowerOff,
		},
		Config: ConfigJSON{
			PeriodMs:   snap.Config.PeriodMs,
			HoldMs:     snap.Config.HoldMs,
			HoldCycles: snap.Config.HoldCycles,
			WatchdogMs: snap.Config.WatchdogMs,
			Broker:     snap.Config.Broker,
			HTTPAddr:   snap.Config.HTTPAddr,
			PinButton:  snap.Config.PinButton,
			PinSupply:  snap.Config.PinSupply,
		},
	}
}

// FormatStatusEvent renders a full status snapshot as the payload for a
// system lifecycle event (STARTUP, SHUTDOWN, HEARTBEAT).
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}

// FormatJSON renders a status snapshot for the HTTP JSON endpoint.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}
