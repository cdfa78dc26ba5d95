package cli

import "github.com/charmbracelet/lipgloss"

var (
	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	sectionNoteStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Width(10)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	voteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)
