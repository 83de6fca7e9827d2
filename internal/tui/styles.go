package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	spotsSummaryStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Italic(true)

	liveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("35"))

	offlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)
