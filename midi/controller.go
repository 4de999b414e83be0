// Package midi drives a Novation Launchpad X as a second calculator keypad.
package midi

// PadEvent is sent when a pad/button is pressed on the grid
type PadEvent struct {
	Row, Col int
	Velocity uint8
}

// LEDUpdate sets one pad color
type LEDUpdate struct {
	Row, Col int
	Color    [3]uint8
	Channel  uint8
}

// Controller is a grid controller with RGB pads
type Controller interface {
	ID() string

	// Input events from the controller
	PadEvents() <-chan PadEvent

	// Output to the controller
	SetLEDRGB(row, col int, rgb [3]uint8, channel uint8) error // maps RGB to palette
	SetLEDBatch(updates []LEDUpdate) error
	ClearLEDs() error

	// Lifecycle
	Close() error
}

// Channel modes for SetLED (use as 'channel' parameter)
const (
	ChannelStatic uint8 = 0 // solid color
	ChannelFlash  uint8 = 1 // flashing A/B alternating
	ChannelPulse  uint8 = 2 // pulsing (fades)
)
