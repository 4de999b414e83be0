package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-calc/keypad"
	"go-calc/theme"
)

// Keypad cell geometry, in terminal columns
const (
	KeyWidth = 6
	KeyGap   = 1
)

// KeypadWidth is the rendered width of a full keypad row
func KeypadWidth() int {
	return keypad.Columns*(KeyWidth+KeyGap) - KeyGap
}

// span is how many key slots each key in a row covers
func span(keys []keypad.Key) int {
	return keypad.Columns / len(keys)
}

// PanelStyle is the tinted backdrop behind the history and the keypad
func PanelStyle(th *theme.Theme) lipgloss.Style {
	return lipgloss.NewStyle().Background(th.Panel())
}

// RenderKeypad draws the keypad one line per row. The key labelled pressed
// (if any) is drawn inverted.
func RenderKeypad(th *theme.Theme, pressed string) string {
	gap := PanelStyle(th).Render(strings.Repeat(" ", KeyGap))
	lines := make([]string, 0, len(keypad.Layout))
	for _, keys := range keypad.Layout {
		width := span(keys)*(KeyWidth+KeyGap) - KeyGap
		var line strings.Builder
		for i, k := range keys {
			if i > 0 {
				line.WriteString(gap)
			}
			line.WriteString(keyStyle(th, k, k.Label == pressed).Width(width).Render(k.Label))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func keyStyle(th *theme.Theme, k keypad.Key, pressed bool) lipgloss.Style {
	var style lipgloss.Style
	switch {
	case pressed:
		style = th.PressedKey(k.IsOperator())
	case k.IsOperator():
		style = th.OperatorKey()
	default:
		style = th.DigitKey()
	}
	return style.Padding(0).Align(lipgloss.Center)
}

// KeypadHitTest maps a position relative to the keypad's top-left corner to
// the key under it. Gaps between keys hit nothing.
func KeypadHitTest(x, y int) (keypad.Key, bool) {
	if x < 0 || y < 0 || y >= len(keypad.Layout) {
		return keypad.Key{}, false
	}
	keys := keypad.Layout[y]
	step := span(keys) * (KeyWidth + KeyGap)
	if x%step >= step-KeyGap {
		return keypad.Key{}, false
	}
	return keypad.At(y, x/step)
}
