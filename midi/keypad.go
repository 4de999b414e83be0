package midi

import (
	"go-calc/keypad"
	"go-calc/theme"
)

// keyColor picks a pad color from the theme: digits in the soft foreground,
// operators in the palette accent, control keys in full foreground.
func keyColor(th *theme.Theme, k keypad.Key) [3]uint8 {
	switch k.Kind {
	case keypad.Digit:
		return [3]uint8(th.RGB(0.75))
	case keypad.Operator:
		return [3]uint8(th.Palette.RGB)
	}
	return [3]uint8(th.Palette.Foreground)
}

// KeypadLEDs colors every keypad pad
func KeypadLEDs(th *theme.Theme) []LEDUpdate {
	var updates []LEDUpdate
	for _, pad := range keypad.Pads() {
		updates = append(updates, LEDUpdate{Row: pad.Row, Col: pad.Col, Color: keyColor(th, pad.Key), Channel: ChannelStatic})
	}
	return updates
}

// PressUpdates restores the previously pressed pad (prev, if any) and pulses
// the pad at row, col.
func PressUpdates(th *theme.Theme, prev *PadEvent, row, col int) []LEDUpdate {
	var updates []LEDUpdate
	if prev != nil {
		if k, ok := keypad.FromPad(prev.Row, prev.Col); ok {
			updates = append(updates, LEDUpdate{Row: prev.Row, Col: prev.Col, Color: keyColor(th, k), Channel: ChannelStatic})
		}
	}
	if _, ok := keypad.FromPad(row, col); ok {
		updates = append(updates, LEDUpdate{Row: row, Col: col, Color: [3]uint8(th.Palette.Foreground), Channel: ChannelPulse})
	}
	return updates
}

// PaintKeypad clears the grid and lights the keypad
func PaintKeypad(c Controller, th *theme.Theme) error {
	if err := c.ClearLEDs(); err != nil {
		return err
	}
	return c.SetLEDBatch(KeypadLEDs(th))
}
