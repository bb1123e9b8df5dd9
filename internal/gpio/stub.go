//go:build !linux

package gpio

import "errors"

// RealDevice is not available on non-Linux platforms.
type RealDevice struct{}

// NewRealDevice returns an error on non-Linux platforms.
func NewRealDevice(pinButton, pinSupply int) (*RealDevice, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// ReadButton is not implemented on non-Linux platforms.
func (d *RealDevice) ReadButton() (bool, error) {
	return false, errors.New("gpio: not supported")
}

// SetSupplyEnabled is not implemented on non-Linux platforms.
func (d *RealDevice) SetSupplyEnabled(on bool) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (d *RealDevice) Close() error {
	return nil
}
