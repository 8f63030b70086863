package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the dashboard.
var (
	ColorRed     = lipgloss.Color("#FF0000")
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorMagenta = lipgloss.Color("#FF00FF")
)

// Base styles reused by the views.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	LiveDotStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	HoldDotStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	RingDotStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	EndedDotStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	AgentLabelStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	CallerLabelStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	PanelTitleActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorCyan)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	CoachingStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	PlaybookStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	InsightStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	OfflineStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)
)
