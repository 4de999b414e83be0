package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-calc/theme"
)

// RenderSwatch renders a single colored block
func RenderSwatch(c theme.RGB) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	return style.Render("■")
}

// RenderPalette shows the three palette colors side by side
func RenderPalette(p theme.Palette) string {
	return strings.Join([]string{
		RenderSwatch(p.Background),
		RenderSwatch(p.Foreground),
		RenderSwatch(p.RGB),
	}, " ")
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(c theme.RGB, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderSwatch(c), name, desc)
}

// RenderPaletteLegend explains where each palette color is used
func RenderPaletteLegend(p theme.Palette) string {
	return strings.Join([]string{
		"Colors",
		RenderLegendItem(p.Background, "background", "frame and digit keys"),
		RenderLegendItem(p.Foreground, "foreground", "text and operators"),
		RenderLegendItem(p.RGB, "accent", "panel tint"),
	}, "\n")
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderShortHelp is the one-line form: "key desc key desc"
func RenderShortHelp(keys []KeyBinding) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k.Key+" "+k.Desc)
	}
	return strings.Join(parts, " ")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
