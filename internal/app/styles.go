package app

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

var (
	colorPrimary   = lipgloss.Color("#a78bfa") // purple
	colorSecondary = lipgloss.Color("#f1a208") // gold
	colorFg        = lipgloss.Color("#c0c0c0")
	colorMuted     = lipgloss.Color("#808080")
	colorSubtle    = lipgloss.Color("#585858")
	colorCursor    = lipgloss.Color("#303030")
	colorSuccess   = lipgloss.Color("#22c55e")
	colorError     = lipgloss.Color("#ef4444")
)

var (
	baseStyle    = lipgloss.NewStyle().Foreground(colorFg)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	subtleStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorFg)
	playingStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	cursorStyle  = lipgloss.NewStyle().Background(colorCursor).Foreground(colorFg)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	accentStyle  = lipgloss.NewStyle().Foreground(colorSecondary)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorPrimary)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 1)

	barFilledStyle = lipgloss.NewStyle().Foreground(colorPrimary)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
)

// gradient renders bold text with a horizontal color gradient.
func gradient(text string, from, to lipgloss.Color) string {
	if text == "" {
		return ""
	}

	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	if len(clusters) == 1 {
		return lipgloss.NewStyle().Bold(true).Foreground(from).Render(text)
	}

	colors := blend(len(clusters), from, to)
	var b strings.Builder
	for i, c := range clusters {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors[i].Hex())).Render(c))
	}
	return b.String()
}

// blend interpolates in HCL space for perceptually even steps.
func blend(n int, from, to lipgloss.Color) []colorful.Color {
	c1 := toColorful(from)
	c2 := toColorful(to)
	out := make([]colorful.Color, n)
	for i := range n {
		out[i] = c1.BlendHcl(c2, float64(i)/float64(n-1)).Clamped()
	}
	return out
}

func toColorful(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	// ANSI palette indices have no hex form
	col, _ := colorful.MakeColor(color.Gray{Y: 128})
	return col
}
