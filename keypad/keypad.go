// Package keypad describes the calculator's virtual keypad and maps terminal
// keys and Launchpad pads onto calculator actions.
package keypad

import "go-calc/calc"

// Kind classifies a key for styling and dispatch
type Kind int

const (
	Digit Kind = iota
	Operator
	Equals
	Clear
	Backspace
)

// Key is one keypad button
type Key struct {
	Label string
	Kind  Kind
}

// Layout rows, top to bottom
var Layout = [][]Key{
	{{"AC", Clear}, {"⌫", Backspace}},
	{{"7", Digit}, {"8", Digit}, {"9", Digit}, {calc.GlyphDiv, Operator}},
	{{"4", Digit}, {"5", Digit}, {"6", Digit}, {calc.GlyphMul, Operator}},
	{{"1", Digit}, {"2", Digit}, {"3", Digit}, {"-", Operator}},
	{{"0", Digit}, {calc.GlyphDecimal, Digit}, {"=", Equals}, {"+", Operator}},
}

// Columns is the width of the widest row
const Columns = 4

// Keys lists every key in layout order
func Keys() []Key {
	var keys []Key
	for _, row := range Layout {
		keys = append(keys, row...)
	}
	return keys
}

// At returns the key at a layout position
func At(row, col int) (Key, bool) {
	if row < 0 || row >= len(Layout) || col < 0 || col >= len(Layout[row]) {
		return Key{}, false
	}
	return Layout[row][col], true
}

// IsOperator reports whether the key should use operator styling
func (k Key) IsOperator() bool {
	return k.Kind != Digit
}

// Action maps a key press to a reducer action
func Action(k Key) calc.Action {
	switch k.Kind {
	case Equals:
		return calc.Calculate()
	case Clear:
		return calc.Reset()
	case Backspace:
		return calc.Backspace()
	}
	return calc.Key(k.Label)
}

// FromKeyMsg maps a terminal key name (as tea.KeyMsg.String reports it) to an
// action. Keys that are not part of the keypad return false.
func FromKeyMsg(key string) (calc.Action, bool) {
	switch key {
	case "enter", "=":
		return calc.Calculate(), true
	case "backspace":
		return calc.Backspace(), true
	case "esc", "ctrl+l":
		return calc.Reset(), true
	case "+", "-", "(", ")", ",", ".", "/", "*", calc.GlyphMul, calc.GlyphDiv:
		return calc.Key(key), true
	case "x", "X":
		return calc.Key(calc.GlyphMul), true
	}
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return calc.Key(key), true
	}
	return calc.Action{}, false
}
