package ui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	CompletedStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(lipgloss.Color("242"))

	ToastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	ToastErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
