package ui

import "github.com/charmbracelet/lipgloss"

var (
	styleHeading = lipgloss.NewStyle().Bold(true)
	styleQuote   = lipgloss.NewStyle().Italic(true).Faint(true)
	styleList    = lipgloss.NewStyle()
	styleFact    = lipgloss.NewStyle().Faint(true)
	styleImage   = lipgloss.NewStyle().Faint(true).Reverse(true)

	styleStatus      = lipgloss.NewStyle().Reverse(true)
	styleStatusBusy  = lipgloss.NewStyle().Reverse(true).Bold(true)
	styleLink        = lipgloss.NewStyle().Faint(true)
	styleError       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	styleKeyHint     = lipgloss.NewStyle().Faint(true)
	styleDisabledKey = lipgloss.NewStyle().Faint(true).Strikethrough(true)
)
