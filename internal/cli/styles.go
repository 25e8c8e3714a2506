// Package cli holds the terminal output helpers shared by the unroll commands:
// lipgloss styles, status labels, yes/no prompts and interrupt handling.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/unroll/internal/model"
)

// Palette shared with the dashboard's light theme.
var (
	brand   = lipgloss.Color("#4f46e5")
	emerald = lipgloss.Color("#059669")
	amber   = lipgloss.Color("#d97706")
	rose    = lipgloss.Color("#dc2626")
	sky     = lipgloss.Color("#818cf8")
	slate   = lipgloss.Color("#64748b")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(brand)
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(brand)

	// SubtitleStyle is used for secondary lines such as "nothing found".
	SubtitleStyle = lipgloss.NewStyle().Foreground(slate).MarginBottom(1)
	SuccessStyle  = lipgloss.NewStyle().Foreground(emerald)
	WarningStyle  = lipgloss.NewStyle().Foreground(amber)
	ErrorStyle    = lipgloss.NewStyle().Foreground(rose)
	InfoStyle     = lipgloss.NewStyle().Foreground(sky)
	SubtleStyle   = lipgloss.NewStyle().Foreground(slate)
	BoldStyle     = lipgloss.NewStyle().Bold(true)

	// HeaderStyle renders table column names.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(brand)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	WalletIcon  = "💳"
	ChartIcon   = "📊"
	SavingsIcon = "🐷"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatTitle prefixes title with the wallet icon.
func FormatTitle(title string) string {
	return titleStyle.Render(WalletIcon + " " + title)
}

// FormatPrompt formats a yes/no question.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

// FormatStatus colors a subscription status the way the wallet list does:
// billing states stand out, paused ones fade.
func FormatStatus(status model.Status) string {
	label := string(status)
	switch status {
	case model.StatusActive:
		return SuccessStyle.Render(label)
	case model.StatusTrial:
		return WarningStyle.Render(label)
	default:
		return SubtleStyle.Render(label)
	}
}
