package tui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	primaryColor   = lipgloss.Color("#E8C4A0")
	secondaryColor = lipgloss.Color("#7EBB81")
	accentColor    = lipgloss.Color("#A8C9A4")
	errorColor     = lipgloss.Color("#E07A5F")
	mutedColor     = lipgloss.Color("#B8A890")
	fgColor        = lipgloss.Color("#F5F3ED")
	highlightColor = lipgloss.Color("#F0DEB4")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(1, 2)

	bannerStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true).
			MarginBottom(1)

	promptStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accentColor).
			Padding(0, 1).
			Width(30)

	rosterBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 2).
			Margin(1, 0)

	highlightStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	instructionStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true).
				MarginTop(1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	headerCellStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Padding(0, 1)

	currentCellStyle = lipgloss.NewStyle().
				Foreground(secondaryColor).
				Bold(true).
				Padding(0, 1)

	selectedCellStyle = lipgloss.NewStyle().
				Foreground(highlightColor).
				Reverse(true).
				Padding(0, 1)

	totalCellStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)
)
