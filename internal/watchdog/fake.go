package watchdog

import "time"

// FakeRefresher records refreshes for test assertions.
type FakeRefresher struct {
	// Refreshes counts Refresh calls.
	Refreshes int

	// RefreshError, if set, will be returned by Refresh.
	RefreshError error

	// FixedInterval is returned by Interval.
	FixedInterval time.Duration
}

// Refresh records the call.
func (f *FakeRefresher) Refresh() error {
	if f.RefreshError != nil {
		return f.RefreshError
	}
	f.Refreshes++
	return nil
}

// Interval returns the configured fixed interval.
func (f *FakeRefresher) Interval() time.Duration {
	return f.FixedInterval
}
