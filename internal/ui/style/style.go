// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

// Header renders a bold section header.
func Header(r *lipgloss.Renderer, s string) string {
	return r.NewStyle().Bold(true).Foreground(Iris).Render(s)
}

// Muted renders secondary text.
func Muted(r *lipgloss.Renderer, s string) string {
	return r.NewStyle().Foreground(Slate).Render(s)
}

// WarningBox frames a multi-line warning with a rounded border.
func WarningBox(r *lipgloss.Renderer, title, body string) string {
	return r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Yellow).
		Padding(0, 1).
		Render(title + "\n" + body)
}
