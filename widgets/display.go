package widgets

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"go-calc/calc"
	"go-calc/theme"
)

// RenderClock shows the date on the left and the time on the right
func RenderClock(th *theme.Theme, now time.Time, width int) string {
	style := lipgloss.NewStyle().Foreground(th.Soft())
	date := now.Format("02/01/2006")
	clock := now.Format("15:04:05")
	gap := max(1, width-lipgloss.Width(date)-lipgloss.Width(clock))
	return style.Render(date + strings.Repeat(" ", gap) + clock)
}

// RenderInput draws the expression line with a cursor, right-aligned. Long
// expressions scroll: only the tail that fits is shown.
func RenderInput(th *theme.Theme, s calc.State, width int) string {
	style := lipgloss.NewStyle().
		Foreground(th.FG()).
		Bold(true).
		Width(width).
		Align(lipgloss.Right)
	return style.Render(tail(s.Display(), width-1) + string(th.Symbols.Cursor))
}

// tail keeps the last width cells of plain text
func tail(s string, width int) string {
	cells := 0
	i := len(s)
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		w := runewidth.RuneWidth(r)
		if cells+w > width {
			break
		}
		cells += w
		i -= size
	}
	return s[i:]
}

// RenderStatus shows the last result, or the evaluation error
func RenderStatus(th *theme.Theme, s calc.State, width int) string {
	style := lipgloss.NewStyle().Width(width).Align(lipgloss.Right)
	switch {
	case s.Err != nil:
		msg := string(th.Symbols.Error) + " " + s.Err.Error()
		return style.Foreground(th.Warning()).Render(ansi.Truncate(msg, width, "…"))
	case s.Result != "":
		return style.Foreground(th.Soft()).Render(ansi.Truncate("= "+s.Result, width, "…"))
	}
	return style.Render("")
}

// RenderDivider is a full-width rule
func RenderDivider(th *theme.Theme, width int) string {
	line := strings.Repeat(string(th.Symbols.Divider), max(0, width))
	return lipgloss.NewStyle().Foreground(th.Muted()).Render(line)
}
