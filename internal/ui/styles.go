package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/taskrank/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")  // Cyan for strategy

	// Tier colors, hottest first
	ColorCritical = lipgloss.Color("124") // Dark red
	ColorHigh     = lipgloss.Color("203") // Light red
	ColorMedium   = lipgloss.Color("220") // Yellow
	ColorLow      = lipgloss.Color("78")  // Green

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	// Input box for the task editor
	StyleInputBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	// Editor border while a run is possible
	StyleReadyBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSuccess).
			Padding(0, 1)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleStrategy = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	StyleScore    = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleLabel    = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
)

// TierColor returns the accent color for a priority tier.
func TierColor(tier models.PriorityTier) lipgloss.Color {
	switch tier {
	case models.TierCritical:
		return ColorCritical
	case models.TierHigh:
		return ColorHigh
	case models.TierLow:
		return ColorLow
	default:
		return ColorMedium
	}
}

// TierBadge renders the tier label as a filled pill, e.g. "Critical Priority".
func TierBadge(tier models.PriorityTier) string {
	fg := lipgloss.Color("16")
	if tier == models.TierCritical {
		fg = lipgloss.Color("231")
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Background(TierColor(tier)).
		Bold(true).
		Padding(0, 1).
		Render(tier.Label())
}

// CardStyle is the bordered frame around one task, accented by tier.
func CardStyle(tier models.PriorityTier) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(TierColor(tier)).
		PaddingLeft(1).
		MarginBottom(1)
}

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}
