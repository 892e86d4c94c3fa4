package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals outside this block.
var (
	// ColorCyan is used for identifiable nouns: paths, repositories, folder names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for installed folders and files.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for skipped folders and backups.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for failed folders (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (paths, repositories, folder names).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (prefixes, separators, descriptions).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Folder status constants used by template listings.
const (
	StatusCore      = "core"
	StatusInstalled = "installed"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
	StatusBackedUp  = "backed up"
)

// StatusStyle returns the lipgloss style for a given folder status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCore, StatusInstalled:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusBackedUp:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minFolderColumnWidth keeps status words aligned across folder lines.
const minFolderColumnWidth = 24

// FormatFolderLine renders a template folder name with a right-aligned,
// color-coded status suffix.
func FormatFolderLine(name, status string) string {
	padding := minFolderColumnWidth - len(name)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("d:") + StyleNoun.Render(name) + strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
