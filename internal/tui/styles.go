// Package tui implements the Bubble Tea browser for saved filters.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/tonebook/internal/styles"
)

var (
	// Title style for pane headers.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.ColorBlue).
			PaddingLeft(1)

	// Selected item style (matches border color).
	selectedStyle = lipgloss.NewStyle().
			Foreground(styles.ColorBlue).
			Bold(true)

	// Normal item style (no color, uses terminal default).
	normalStyle = lipgloss.NewStyle()

	// Summary line under each record name.
	summaryStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray)

	// Timestamp and ID text.
	metaStyle = lipgloss.NewStyle().
			Foreground(styles.ColorDim)

	// Selected border style for left accent bar.
	selectedBorderStyle = lipgloss.NewStyle().
				Foreground(styles.ColorBlue)

	// Preview pane frame.
	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(styles.ColorDim).
			PaddingLeft(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGreen).
			PaddingLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.ColorRed).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			PaddingLeft(1)
)

// Modal styles.
var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorBlue).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.ColorBlue)

	modalHelpStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			MarginTop(1)

	modalButtonStyle = lipgloss.NewStyle().
				Foreground(styles.ColorWhite).
				Padding(0, 2)

	modalButtonSelectedStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("#1a1b26")).
					Background(styles.ColorBlue).
					Bold(true).
					Padding(0, 2)
)

// iconDot separates inline metadata.
const iconDot = "•"
