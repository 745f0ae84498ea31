// Package tui implements the interactive lyric analysis client using
// bubbletea. The view is a thin shell over the lifecycle controller in
// internal/lifecycle; all state transitions happen there.
package tui

import "github.com/charmbracelet/lipgloss"

// Brand-ish palette for the terminal client.
var (
	colorPurple = lipgloss.Color("#B857F6")
	colorPink   = lipgloss.Color("#F657B8")
	colorMuted  = lipgloss.Color("#6c7086")
	colorError  = lipgloss.Color("#e53935")
	colorOK     = lipgloss.Color("#8BC34A")
	colorBorder = lipgloss.Color("#2a3850")
)

// Styles holds the lipgloss styles used by the views.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Counter  lipgloss.Style
	OverCap  lipgloss.Style
	ErrorBox lipgloss.Style
	Success  lipgloss.Style
	Help     lipgloss.Style
	Panel    lipgloss.Style
	Spinner  lipgloss.Style
}

// DefaultStyles returns the standard style set.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPurple),
		Label: lipgloss.NewStyle().
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(colorMuted),
		Counter: lipgloss.NewStyle().
			Foreground(colorMuted),
		OverCap: lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true),
		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1),
		Success: lipgloss.NewStyle().
			Foreground(colorOK),
		Help: lipgloss.NewStyle().
			Foreground(colorMuted),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		Spinner: lipgloss.NewStyle().
			Foreground(colorPink),
	}
}
