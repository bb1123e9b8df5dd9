//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealDevice drives actual hardware using the Linux GPIO character device.
type RealDevice struct {
	chip     *gpiocdev.Chip
	button   *gpiocdev.Line
	supply   *gpiocdev.Line
	supplyOn bool
}

// NewRealDevice opens the button and supply lines. The button is an input
// with a pull-up, so the switch only needs to short the pin to ground. The
// supply line starts as a high-impedance input, which leaves the ATX
// power-on line at its internal pull-up level: supply off.
func NewRealDevice(pinButton, pinSupply int) (*RealDevice, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	button, err := chip.RequestLine(pinButton, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button pin %d: %w", pinButton, err)
	}

	supply, err := chip.RequestLine(pinSupply, gpiocdev.AsInput)
	if err != nil {
		button.Close()
		chip.Close()
		return nil, fmt.Errorf("request supply pin %d: %w", pinSupply, err)
	}

	return &RealDevice{
		chip:   chip,
		button: button,
		supply: supply,
	}, nil
}

// ReadButton returns true when the button is pressed.
// Inverts the raw level: the pull-up reads 1 until the switch grounds it.
func (d *RealDevice) ReadButton() (bool, error) {
	raw, err := d.button.Value()
	if err != nil {
		return false, fmt.Errorf("read button pin: %w", err)
	}
	return raw == 0, nil
}

// SetSupplyEnabled commands the ATX power-on line. Enabled means driving
// the line low as an output; disabled means releasing it to a high-impedance
// input so the supply's internal pull-up takes it high again. Flipping the
// line direction instead of its level means the pin never sources current
// into the supply. Repeated calls with an unchanged value do nothing.
func (d *RealDevice) SetSupplyEnabled(on bool) error {
	if on == d.supplyOn {
		return nil
	}

	var err error
	if on {
		err = d.supply.Reconfigure(gpiocdev.AsOutput(0))
	} else {
		err = d.supply.Reconfigure(gpiocdev.AsInput)
	}
	if err != nil {
		return fmt.Errorf("reconfigure supply pin: %w", err)
	}

	d.supplyOn = on
	return nil
}

// Close releases GPIO resources. The supply line is reconfigured back to a
// high-impedance input first, so a daemon shutdown always leaves the supply
// off rather than latched on.
func (d *RealDevice) Close() error {
	var errs []error

	if d.supply != nil {
		if err := d.supply.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("release supply pin: %w", err))
		}
		if err := d.supply.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close supply pin: %w", err))
		}
	}
	if d.button != nil {
		if err := d.button.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button pin: %w", err))
		}
	}
	if d.chip != nil {
		if err := d.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
