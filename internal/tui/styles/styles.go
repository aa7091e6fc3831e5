// Package styles provides the color palette and style definitions for
// upmgr's interactive flows and styled CLI output.
package styles

import "github.com/charmbracelet/lipgloss"

// --- Color palette ---

var (
	White   = lipgloss.Color("#E2E2E2")
	Gray    = lipgloss.Color("#888888")
	Muted   = lipgloss.Color("#555555")
	DimGray = lipgloss.Color("#444444")

	Blue   = lipgloss.Color("#5FAFFF")
	Green  = lipgloss.Color("#5FD787")
	Yellow = lipgloss.Color("#FFD787")
	Red    = lipgloss.Color("#FF8787")
)

// --- Typography ---

var (
	// Title is the main header text style.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(White)

	// MutedText is for help text, hints, and less important info.
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	// ErrorText is for error messages.
	ErrorText = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	// SuccessText is for success messages.
	SuccessText = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	// WarningText is for warning messages.
	WarningText = lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true)
)

// StateStyle returns a styled string for a server lifecycle state value.
func StateStyle(state string) lipgloss.Style {
	switch state {
	case "started":
		return lipgloss.NewStyle().Foreground(Green).Bold(true)
	case "maintenance", "starting":
		return lipgloss.NewStyle().Foreground(Yellow)
	case "stopped", "error":
		return lipgloss.NewStyle().Foreground(Red)
	default:
		return lipgloss.NewStyle().Foreground(Gray)
	}
}
