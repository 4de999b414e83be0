package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	th := New(DefaultPalette())

	assert.Equal(t, lipgloss.Color("#06192e"), th.BG())
	assert.Equal(t, lipgloss.Color("#c7dad9"), th.FG())
	assert.Equal(t, th.BG(), lipgloss.Color(th.RGB(RoleBG).Hex()))
	assert.Equal(t, th.FG(), lipgloss.Color(th.RGB(RoleFG).Hex()))
	assert.NotEqual(t, th.BG(), th.Muted())
}

func TestPanelBlendsTowardRGB(t *testing.T) {
	p := Palette{Background: RGB{0, 0, 0}, Foreground: RGB{255, 255, 255}, RGB: RGB{100, 200, 50}}
	panel := New(p).PanelRGB()

	assert.InDelta(t, 38, panel[0], 1)
	assert.InDelta(t, 76, panel[1], 1)
	assert.InDelta(t, 19, panel[2], 1)
}

func TestRampLookup(t *testing.T) {
	r := NewRamp("bw", RGB{0, 0, 0}, RGB{200, 100, 50})

	assert.Equal(t, RGB{0, 0, 0}, r.Lookup(-1))
	assert.Equal(t, RGB{200, 100, 50}, r.Lookup(2))
	assert.Equal(t, RGB{100, 50, 25}, r.Lookup(0.5))
	assert.Equal(t, RGB{200, 100, 50}, r.Index(10))
	assert.Equal(t, RGB{}, (&Ramp{}).Lookup(0.5))
}

func TestRampPaletteOrdersByLightness(t *testing.T) {
	p := NewRamp("inverted", RGB{240, 240, 240}, RGB{20, 20, 20}).Palette()
	assert.Equal(t, RGB{20, 20, 20}, p.Background)
	assert.Equal(t, RGB{240, 240, 240}, p.Foreground)

	single := NewRamp("one", RGB{255, 255, 255}).Palette()
	assert.Equal(t, RGB{0, 0, 0}, single.Foreground)
}

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navy.gpl")
	content := "GIMP Palette\nName: Navy\nColumns: 2\n# comment\n  6  25  46\tdeep\n199 218 217 light\nbad line\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r, err := LoadGPL(path)
	require.NoError(t, err)
	assert.Equal(t, "Navy", r.Name)
	assert.Equal(t, []RGB{{6, 25, 46}, {199, 218, 217}}, r.Colors)

	p := r.Palette()
	assert.Equal(t, RGB{6, 25, 46}, p.Background)
	assert.Equal(t, RGB{199, 218, 217}, p.Foreground)
}

func TestLoadGPLErrors(t *testing.T) {
	_, err := LoadGPL(filepath.Join(t.TempDir(), "missing.gpl"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.gpl")
	require.NoError(t, os.WriteFile(empty, []byte("GIMP Palette\n"), 0644))
	_, err = LoadGPL(empty)
	assert.Error(t, err)
}

func TestKeyStylesInvert(t *testing.T) {
	th := New(DefaultPalette())
	assert.Equal(t, th.DigitKey().GetBackground(), th.OperatorKey().GetForeground())
	assert.Equal(t, th.DigitKey().GetForeground(), th.OperatorKey().GetBackground())
}
