package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the uranus chat UI.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color

	Text    lipgloss.Color
	TextDim lipgloss.Color
}

// DefaultTheme returns the default color theme.
func DefaultTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Accent:    lipgloss.Color("#F59E0B"), // Amber

		Success: lipgloss.Color("#10B981"), // Emerald
		Error:   lipgloss.Color("#EF4444"), // Red
		Muted:   lipgloss.Color("#6B7280"), // Gray

		Text:    lipgloss.Color("#F9FAFB"), // Near white
		TextDim: lipgloss.Color("#9CA3AF"), // Gray
	}
}

// Styles contains all the styled components for the UI.
type Styles struct {
	App         lipgloss.Style
	BannerTitle lipgloss.Style

	Prompt lipgloss.Style

	UserMessage      lipgloss.Style
	AssistantMessage lipgloss.Style
	SystemMessage    lipgloss.Style
	ErrorMessage     lipgloss.Style

	StatusText lipgloss.Style
	HelpKey    lipgloss.Style
	HelpValue  lipgloss.Style
	HelpBar    lipgloss.Style
}

// DefaultStyles builds the styles from the default theme.
func DefaultStyles() Styles {
	t := DefaultTheme()

	return Styles{
		App:         lipgloss.NewStyle().Padding(0, 1),
		BannerTitle: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),

		Prompt: lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),

		UserMessage:      lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		AssistantMessage: lipgloss.NewStyle().Foreground(t.Secondary),
		SystemMessage:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		ErrorMessage:     lipgloss.NewStyle().Foreground(t.Error),

		StatusText: lipgloss.NewStyle().Foreground(t.Accent),
		HelpKey:    lipgloss.NewStyle().Foreground(t.Secondary),
		HelpValue:  lipgloss.NewStyle().Foreground(t.TextDim),
		HelpBar:    lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// Banner returns the ASCII banner shown above the chat.
func Banner() string {
	return `
██╗   ██╗██████╗  █████╗ ███╗   ██╗██╗   ██╗███████╗
██║   ██║██╔══██╗██╔══██╗████╗  ██║██║   ██║██╔════╝
██║   ██║██████╔╝███████║██╔██╗ ██║██║   ██║███████╗
██║   ██║██╔══██╗██╔══██║██║╚██╗██║██║   ██║╚════██║
╚██████╔╝██║  ██║██║  ██║██║ ╚████║╚██████╔╝███████║
 ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝ ╚══════╝`
}
