// ============================================================================
// Monkey - Tokenizer and Pratt parser front end
// ============================================================================
//
// Package:     explorer
// Description: Styles for the source explorer TUI
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package explorer

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray

	ColorText    = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextDim = lipgloss.Color("#64748B") // Slate 500
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	EditorPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorMuted)

	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	PositionStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	TokenStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	IllegalTokenStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	CanonicalStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	DiagnosticStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// RenderHelp renders one key binding of the help bar
func RenderHelp(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}
