// Package tui implements the chat-style transcription session UI using the
// Charm libraries.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"} // Blue
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"} // Cyan

	ColorSuccess = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"} // Green
	ColorError   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"} // Red

	ColorText   = lipgloss.AdaptiveColor{Light: "#1E293B", Dark: "#F1F5F9"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#94A3B8", Dark: "#64748B"}
	ColorSubtle = lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#94A3B8"}
	ColorBorder = lipgloss.AdaptiveColor{Light: "#CBD5E1", Dark: "#334155"}
)

// Base styles
var (
	BodyStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// Chat bubbles: transcription text on the left, the user's upload on
	// the right, notices inline without a border.
	BotBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Foreground(ColorText).
			Padding(0, 1)

	UserBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Foreground(ColorText).
			Padding(0, 1)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Italic(true)

	LoaderBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1).
			MarginTop(1)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorSubtle).Bold(true)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Application header
var HeaderASCII = `
╭──────────────────────────────────────────╮
│  🎙️  TranscriptorWhisperX                │
╰──────────────────────────────────────────╯`

// GetHeader returns the styled application header.
func GetHeader() string {
	return lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Render(HeaderASCII)
}
