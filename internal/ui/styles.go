package ui

import (
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/task"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	tabStyle       = lipgloss.NewStyle().Faint(true)

	urgentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#feca57"))
	normalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#1dd1a1"))

	doneStyle  = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	faintStyle = lipgloss.NewStyle().Faint(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// urgencyStyle tints a row by how close its due date is: red under a day,
// amber under three days, green otherwise.
func urgencyStyle(u task.Urgency) lipgloss.Style {
	switch u {
	case task.Urgent:
		return urgentStyle
	case task.Warning:
		return warningStyle
	default:
		return normalStyle
	}
}
