package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/scentdex/scentdex-server/internal/color"
)

// Palette of the browser chrome.
var (
	Primary   = lipgloss.Color("#c77dff")
	Accent    = lipgloss.Color("#52c41a")
	Muted     = lipgloss.Color("#8a8a8a")
	Highlight = lipgloss.Color("#ffd54f")
)

// Styles groups the lipgloss styles used by every view.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Section  lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Badge    lipgloss.Style
	Filter   lipgloss.Style
	Help     lipgloss.Style
	Frame    lipgloss.Style
}

// DefaultStyles returns the standard browser styles.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Subtitle: lipgloss.NewStyle().Foreground(Muted),
		Section:  lipgloss.NewStyle().Bold(true).Underline(true),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(Highlight),
		Muted:    lipgloss.NewStyle().Foreground(Muted),
		Badge:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000")).Background(Accent).Padding(0, 1),
		Filter:   lipgloss.NewStyle().Foreground(Accent),
		Help:     lipgloss.NewStyle().Foreground(Muted).Italic(true),
		Frame:    lipgloss.NewStyle().Padding(0, 1),
	}
}

// Pill renders an accord on its palette colour.
func Pill(sw color.Swatch) string {
	fg := lipgloss.Color("#ffffff")
	if sw.Text == color.TextDark {
		fg = lipgloss.Color("#000000")
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(sw.Background)).
		Foreground(fg).
		Padding(0, 1).
		Render(sw.Accord)
}

// barWidth is the number of cells a full 100% ranking bar spans.
const barWidth = 20

// Bar draws a ranking bar of percent filled cells in hex.
func Bar(percent float64, hex string) string {
	filled := int(percent/100*barWidth + 0.5)
	filled = min(max(filled, 0), barWidth)

	full := lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	empty := lipgloss.NewStyle().Foreground(Muted)

	return full.Render(strings.Repeat("█", filled)) + empty.Render(strings.Repeat("░", barWidth-filled))
}
