package app

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// formatTime renders whole seconds as m:ss.
func formatTime(sec int) string {
	sec = max(sec, 0)
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}

// sanitize drops control characters and invalid UTF-8 so that tag
// metadata cannot break the terminal layout.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == utf8.RuneError && size <= 1:
		case r == '\u00a0':
			b.WriteByte(' ')
		case r != '\t' && unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// truncate shortens plain text to width cells, ending with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(sanitize(s), width, "…")
}

// fit truncates then pads plain text to exactly width cells.
func fit(s string, width int) string {
	return runewidth.FillRight(truncate(s, width), width)
}

// row places left and right content on one line of the given width.
func row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// progressBar renders a bar of width cells filled to pos/length.
func progressBar(pos, length, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if length > 0 {
		filled = min(width*max(pos, 0)/length, width)
	}
	return barFilledStyle.Render(strings.Repeat("━", filled)) +
		barEmptyStyle.Render(strings.Repeat("─", width-filled))
}
