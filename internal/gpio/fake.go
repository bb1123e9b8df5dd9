package gpio

import "errors"

// FakeDevice is a test double with scripted button samples and a recorded
// supply line.
type FakeDevice struct {
	// Samples contains scripted button values (true = pressed).
	// Each call to ReadButton consumes the next sample.
	Samples []bool

	// index tracks current position in Samples
	index int

	// SupplyCalls records the value of every SetSupplyEnabled call.
	SupplyCalls []bool

	// SupplyTransitions counts only the calls that changed the value,
	// so tests can assert the per-cycle redrive is idempotent.
	SupplyTransitions int

	// supplyOn is the current commanded supply state.
	supplyOn bool

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by ReadButton.
	ReadError error

	// SupplyError, if set, will be returned by SetSupplyEnabled.
	SupplyError error
}

// NewFakeDevice creates a FakeDevice with the given button samples.
func NewFakeDevice(samples []bool) *FakeDevice {
	return &FakeDevice{Samples: samples}
}

// ReadButton returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeDevice) ReadButton() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}

	if len(f.Samples) == 0 {
		return false, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample, nil
}

// SetSupplyEnabled records the call and tracks actual transitions.
func (f *FakeDevice) SetSupplyEnabled(on bool) error {
	if f.SupplyError != nil {
		return f.SupplyError
	}

	f.SupplyCalls = append(f.SupplyCalls, on)
	if on != f.supplyOn {
		f.SupplyTransitions++
		f.supplyOn = on
	}
	return nil
}

// SupplyOn returns the current commanded supply state.
func (f *FakeDevice) SupplyOn() bool {
	return f.supplyOn
}

// Close marks the device as closed.
func (f *FakeDevice) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the device to its initial state.
func (f *FakeDevice) Reset() {
	f.index = 0
	f.SupplyCalls = nil
	f.SupplyTransitions = 0
	f.supplyOn = false
	f.Closed = false
}
