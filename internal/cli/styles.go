// Package cli implements the terminal prompts and summary output.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the accent used for prompts and titles.
	PrimaryColor = lipgloss.Color("#5FAFD7")
	// SuccessColor marks automatic matches and confirmations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// ErrorColor marks rejected input.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor is used for secondary details.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// EntryStyle highlights the entry being classified.
	EntryStyle = lipgloss.NewStyle().
			Bold(true)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// TotalStyle formats group and report totals.
	TotalStyle = lipgloss.NewStyle().
			Bold(true).
			PaddingLeft(2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt)
}
