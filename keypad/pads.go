package keypad

// Pad places a key on the Launchpad grid. Row 0 is the bottom row.
type Pad struct {
	Row, Col int
	Key      Key
}

// FromPad maps a Launchpad grid position to a key. The keypad occupies the
// four left columns of the bottom five rows; the two top keys span two pads
// each.
func FromPad(row, col int) (Key, bool) {
	if row < 0 || row >= len(Layout) || col < 0 || col >= Columns {
		return Key{}, false
	}
	keys := Layout[len(Layout)-1-row]
	if len(keys) < Columns {
		col = col * len(keys) / Columns
	}
	return keys[col], true
}

// Pads lists every lit pad with the key it triggers
func Pads() []Pad {
	var pads []Pad
	for row := 0; row < len(Layout); row++ {
		for col := 0; col < Columns; col++ {
			if k, ok := FromPad(row, col); ok {
				pads = append(pads, Pad{Row: row, Col: col, Key: k})
			}
		}
	}
	return pads
}
