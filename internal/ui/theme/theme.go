// Package theme holds the terminal styles shared by the prompter and the
// dashboard. Colours follow the Catppuccin Mocha palette.
package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Green)
	Error = lipgloss.NewStyle().Foreground(Red)
	Bar   = lipgloss.NewStyle().Background(Mantle)
)

// Meter renders done out of total as a fixed-width bar, e.g. "■■■□□".
func Meter(done, total int) string {
	if total <= 0 {
		return ""
	}
	done = min(max(done, 0), total)
	filled := ""
	for range done {
		filled += "■"
	}
	empty := ""
	for range total - done {
		empty += "□"
	}
	return Good.Render(filled) + Muted.Render(empty)
}
