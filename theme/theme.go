package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette Palette
	Symbols Symbols
	ramp    *Ramp
}

type Symbols struct {
	Backspace rune // ⌫ delete key label
	Divider   rune // ─ between history and input
	Cursor    rune // ▏ end of the input line
	Selected  rune // ▸ highlighted history entry
	Error     rune // ✗ status line marker
	Image     rune // ◆ gallery entry
}

// panelAlpha is the opacity of the translucent keypad panel
const panelAlpha = 0.38

func New(p Palette) *Theme {
	return &Theme{
		Palette: p,
		ramp:    NewRamp("derived", p.Background, p.Foreground),
		Symbols: Symbols{
			Backspace: '⌫',
			Divider:   '─',
			Cursor:    '▏',
			Selected:  '▸',
			Error:     '✗',
			Image:     '◆',
		},
	}
}

// Color roles mapped to positions on the background->foreground ramp (0-1)
const (
	RoleBG    = 0.0
	RoleMuted = 0.45
	RoleSoft  = 0.75
	RoleFG    = 1.0
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.ramp.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.ramp.Lookup(RoleFG))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.ramp.Lookup(RoleMuted))
}

func (t *Theme) Soft() lipgloss.Color {
	return rgbToLipgloss(t.ramp.Lookup(RoleSoft))
}

// Panel is the palette's RGB laid over the background at panelAlpha, the
// terminal stand-in for the translucent wallpaper panel.
func (t *Theme) Panel() lipgloss.Color {
	return rgbToLipgloss(t.PanelRGB())
}

// PanelRGB is Panel as raw channels (for pad LEDs)
func (t *Theme) PanelRGB() RGB {
	return fromColorful(t.Palette.Background.Color().BlendRgb(t.Palette.RGB.Color(), panelAlpha))
}

// Warning is the foreground pulled toward red, readable on the background
func (t *Theme) Warning() lipgloss.Color {
	red := RGB{230, 72, 72}
	return rgbToLipgloss(fromColorful(t.Palette.Foreground.Color().BlendRgb(red.Color(), 0.7)))
}

// RGB returns raw RGB for any normalized value (for pad LEDs)
func (t *Theme) RGB(norm float64) RGB {
	return t.ramp.Lookup(norm)
}

// DigitKey is the style of number keys: dark face, light label
func (t *Theme) DigitKey() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(t.BG()).
		Foreground(t.FG()).
		Padding(0, 2)
}

// OperatorKey inverts DigitKey so operators stand out
func (t *Theme) OperatorKey() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(t.FG()).
		Foreground(t.BG()).
		Bold(true).
		Padding(0, 2)
}

// PressedKey is the hover/active look, the inverse of the key's normal style
func (t *Theme) PressedKey(operator bool) lipgloss.Style {
	if operator {
		return t.DigitKey().Underline(true)
	}
	return t.OperatorKey().Underline(true)
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}
