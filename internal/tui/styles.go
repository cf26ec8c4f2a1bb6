package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent   = lipgloss.Color("#8BC34A")
	colorDanger   = lipgloss.Color("#e53935")
	colorMuted    = lipgloss.Color("#9aa3ad")
	colorSelected = lipgloss.Color("#2196F3")
)

// Styles groups the lipgloss styles the view renders with.
type Styles struct {
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Detail   lipgloss.Style
	Empty    lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
	Disabled lipgloss.Style
}

// DefaultStyles returns the palette used by the roster TUI.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Heading:  lipgloss.NewStyle().Bold(true).MarginTop(1),
		Row:      lipgloss.NewStyle().PaddingLeft(2),
		Selected: lipgloss.NewStyle().PaddingLeft(0).Foreground(colorSelected).Bold(true),
		Detail:   lipgloss.NewStyle().Foreground(colorMuted),
		Empty:    lipgloss.NewStyle().Italic(true).Foreground(colorMuted),
		Error:    lipgloss.NewStyle().Foreground(colorDanger).Bold(true),
		Status:   lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		Help:     lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
		Disabled: lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true),
	}
}
