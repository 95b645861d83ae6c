package tui

import "github.com/charmbracelet/lipgloss"

// Global styles used across the countdown view
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	workStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))

	breakStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("120"))

	idleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))

	countdownStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("yellow")).
			Bold(true)

	counterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	appStyle = lipgloss.NewStyle().
			Padding(1, 2)
)
