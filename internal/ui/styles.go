package ui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	colorAccent = lipgloss.Color("#86bada")
	colorActive = lipgloss.Color("#a6e3a1")
	colorMuted  = lipgloss.Color("#6b6d8a")
	colorBorder = lipgloss.Color("#3a3b52")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	keyStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	activeStyle = lipgloss.NewStyle().Foreground(colorActive).Bold(true)
	tableBorder = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(colorBorder)
)
