// Package tui renders tagpatch's terminal output: the dry-run table, the
// apply confirmation prompt, lookup progress and the change log.
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/tagpatch/internal/patch"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	flagStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))
)

// levelStyle returns the style and prefix for a change log level.
func levelStyle(level patch.Level) (lipgloss.Style, string) {
	switch level {
	case patch.LevelError:
		return errorStyle, "✗"
	case patch.LevelWarning:
		return warningStyle, "!"
	case patch.LevelSuccess:
		return successStyle, "✓"
	case patch.LevelInfo:
		return infoStyle, "›"
	default:
		return dimStyle, "•"
	}
}
