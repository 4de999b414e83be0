package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"go-calc/calc"
	"go-calc/theme"
)

// HistoryWindow returns the bounds [start, end) of the n entries that fit in
// height rows. The newest entries are shown unless that would hide selected.
func HistoryWindow(n, height, selected int) (start, end int) {
	if height <= 0 {
		return 0, 0
	}
	start, end = max(0, n-height), n
	if selected >= 0 && selected < start {
		start, end = selected, min(n, selected+height)
	}
	return start, end
}

// RenderHistory draws the history bottom-aligned in a fixed number of rows
func RenderHistory(th *theme.Theme, h calc.History, selected, height, width int) string {
	start, end := HistoryWindow(len(h), height, selected)
	blank := height - (end - start)

	normal := historyLineStyle(th, false).Width(width)
	current := historyLineStyle(th, true).Width(width)

	lines := make([]string, 0, height)
	for i := 0; i < blank; i++ {
		lines = append(lines, normal.Render(""))
	}
	for i := start; i < end; i++ {
		text := calc.ToDisplay(h[i])
		if i == selected {
			lines = append(lines, current.Render(ansi.Truncate(string(th.Symbols.Selected)+" "+text, width, "…")))
		} else {
			lines = append(lines, normal.Render(ansi.Truncate("  "+text, width, "…")))
		}
	}
	return strings.Join(lines, "\n")
}

func historyLineStyle(th *theme.Theme, selected bool) lipgloss.Style {
	if selected {
		return PanelStyle(th).Foreground(th.FG()).Bold(true)
	}
	return PanelStyle(th).Foreground(th.Muted())
}

// HistoryHitTest maps a row inside the history panel to a history index
func HistoryHitTest(y, n, height, selected int) (int, bool) {
	start, end := HistoryWindow(n, height, selected)
	blank := height - (end - start)
	if y < blank || y >= height {
		return 0, false
	}
	return start + y - blank, true
}
