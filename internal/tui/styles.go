package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorDanger  = lipgloss.Color("#FF5F87")
	ColorMuted   = lipgloss.Color("#626262")
	ColorBorder  = lipgloss.Color("#3C3C3C")

	// Base styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	ParameterLabelStyle = lipgloss.NewStyle().
				Width(34)

	FocusedLabelStyle = ParameterLabelStyle.
				Foreground(ColorPrimary).
				Bold(true)

	MetricLabelStyle = lipgloss.NewStyle().
				Width(24).
				Foreground(ColorMuted)

	MetricValueStyle    = lipgloss.NewStyle().Bold(true)
	MetricPositiveStyle = MetricValueStyle.Foreground(ColorSuccess)
	MetricNegativeStyle = MetricValueStyle.Foreground(ColorDanger)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
