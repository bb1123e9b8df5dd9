// Package watchdog feeds the service liveness timer.
// Under systemd with WatchdogSec set, a missed refresh gets the unit killed
// and restarted, which re-initializes the supply state to off. A stalled
// loop therefore fails safe instead of leaving the supply powered.
package watchdog

import "time"

// Refresher is the liveness timer seam. Refresh must be called at least as
// often as Interval; the run loop calls it once per wake cycle, before any
// other work.
type Refresher interface {
	// Refresh signals that the main loop is still alive.
	Refresh() error

	// Interval returns the configured liveness timeout. 0 means no
	// watchdog is configured and Refresh is a no-op.
	Interval() time.Duration
}

// NopRefresher is used when no watchdog is configured.
type NopRefresher struct{}

// Refresh does nothing.
func (NopRefresher) Refresh() error { return nil }

// Interval returns 0 (disabled).
func (NopRefresher) Interval() time.Duration { return 0 }
