// Package gpio provides button input and supply output with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Device is the hardware seam between the power switch core and the GPIO lines.
type Device interface {
	// ReadButton returns true when the button is physically pressed.
	// The raw line is inverted (pull-up keeps it high until the button
	// shorts it to ground); the inversion is normalized here.
	ReadButton() (bool, error)

	// SetSupplyEnabled commands the ATX power-on line. It is idempotent
	// and safe to call every wake cycle with an unchanged value.
	SetSupplyEnabled(on bool) error

	// Close releases GPIO resources, leaving the supply line released
	// (supply off).
	Close() error
}

// Pin definitions (BCM numbering)
const (
	DefaultPinButton = 26 // momentary ATX-style power switch
	DefaultPinSupply = 16 // ATX power-on line (active low)
)
