package theme

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

type RGB [3]uint8

// Hex returns the #rrggbb form used by lipgloss
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// Color converts to a go-colorful color for blending and lightness
func (c RGB) Color() colorful.Color {
	return colorful.Color{R: float64(c[0]) / 255, G: float64(c[1]) / 255, B: float64(c[2]) / 255}
}

// Lightness is the HSL lightness in [0, 1]
func (c RGB) Lightness() float64 {
	_, _, l := c.Color().Hsl()
	return l
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// Palette is the color set derived from one wallpaper image.
type Palette struct {
	Background RGB
	Foreground RGB
	RGB        RGB // raw channels of the background cluster, for translucent panels
}

var (
	defaultBackground = RGB{6, 25, 46}     // #06192E
	defaultForeground = RGB{199, 218, 217} // #C7DAD9
	defaultPanel      = RGB{11, 49, 78}
)

// DefaultPalette is used until an image is selected or when extraction fails
func DefaultPalette() Palette {
	return Palette{
		Background: defaultBackground,
		Foreground: defaultForeground,
		RGB:        defaultPanel,
	}
}

// IsDefault reports whether p is the built-in navy palette
func (p Palette) IsDefault() bool {
	return p == DefaultPalette()
}

// Ramp is an ordered list of colors that can be sampled at any point 0-1.
type Ramp struct {
	Name   string
	Colors []RGB
}

// NewRamp builds a ramp through the given stops
func NewRamp(name string, stops ...RGB) *Ramp {
	return &Ramp{Name: name, Colors: stops}
}

// Palette uses the darkest end of the ramp as background and the other end as
// foreground, matching how GIMP palettes are usually ordered dark to light.
func (r *Ramp) Palette() Palette {
	bg := r.Index(0)
	fg := r.Index(len(r.Colors) - 1)
	if bg.Lightness() > fg.Lightness() {
		bg, fg = fg, bg
	}
	if bg == fg {
		fg = contrastFor(bg)
	}
	return Palette{Background: bg, Foreground: fg, RGB: bg}
}

// LoadGPL reads a GIMP palette file
func LoadGPL(path string) (*Ramp, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := &Ramp{}
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "Name:") {
			p.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
			continue
		}

		// Skip headers and comments
		if line == "" || line[0] == '#' || strings.HasPrefix(line, "GIMP") || strings.HasPrefix(line, "Columns") {
			continue
		}

		// first 3 fields are R G B
		fields := strings.Fields(line)
		if len(fields) >= 3 {
			r, err1 := strconv.Atoi(fields[0])
			g, err2 := strconv.Atoi(fields[1])
			b, err3 := strconv.Atoi(fields[2])
			if err1 == nil && err2 == nil && err3 == nil {
				p.Colors = append(p.Colors, RGB{clampByte(r), clampByte(g), clampByte(b)})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("no colors found in palette %s", path)
	}

	return p, nil
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Lookup returns interpolated color for normalized value 0-1
func (r *Ramp) Lookup(norm float64) RGB {
	if len(r.Colors) == 0 {
		return RGB{}
	}
	if norm <= 0 {
		return r.Colors[0]
	}
	if norm >= 1 {
		return r.Colors[len(r.Colors)-1]
	}

	// Find the two colors to interpolate between
	pos := norm * float64(len(r.Colors)-1)
	i := int(pos)
	frac := pos - float64(i)

	c0 := r.Colors[i]
	c1 := r.Colors[i+1]

	return RGB{
		lerp(c0[0], c1[0], frac),
		lerp(c0[1], c1[1], frac),
		lerp(c0[2], c1[2], frac),
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}

// Index returns color at specific index (no interpolation)
func (r *Ramp) Index(i int) RGB {
	if len(r.Colors) == 0 {
		return RGB{}
	}
	if i < 0 {
		return r.Colors[0]
	}
	if i >= len(r.Colors) {
		return r.Colors[len(r.Colors)-1]
	}
	return r.Colors[i]
}
