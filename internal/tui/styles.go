package tui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Cursor   lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style
	Match    lipgloss.Style
	URL      lipgloss.Style
	Pin      lipgloss.Style
	Active   lipgloss.Style
	Dim      lipgloss.Style
	Error    lipgloss.Style
	Prompt   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true),
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true),
		Match:    lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af")).Bold(true),
		URL:      lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")),
		Pin:      lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af")),
		Active:   lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")),
		Prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af")).Bold(true),
	}
}
