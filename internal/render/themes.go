package render

import (
	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the terminal interface.
type TUITheme struct {
	Name        string
	Description string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Built-in TUI themes
var (
	// TokyoNightTheme is the default dark theme.
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	// SentinelTheme uses a green-on-dark palette fitting the security
	// assistant.
	SentinelTheme = TUITheme{
		Name:        "sentinel",
		Description: "Sentinel - Dark theme with green accents",

		Background: lipgloss.Color("#0d1117"),
		Surface:    lipgloss.Color("#161b22"),
		Border:     lipgloss.Color("#30363d"),

		Primary:   lipgloss.Color("#3fb950"),
		Secondary: lipgloss.Color("#58a6ff"),
		Accent:    lipgloss.Color("#d29922"),
		Warning:   lipgloss.Color("#d29922"),
		Error:     lipgloss.Color("#f85149"),

		Text:     lipgloss.Color("#c9d1d9"),
		TextDim:  lipgloss.Color("#8b949e"),
		TextMute: lipgloss.Color("#484f58"),
	}
)

// ThemeByName returns the named TUI theme, defaulting to Tokyo Night.
func ThemeByName(name string) TUITheme {
	switch name {
	case SentinelTheme.Name:
		return SentinelTheme
	default:
		return TokyoNightTheme
	}
}

// TUIThemes lists all built-in TUI themes.
func TUIThemes() []TUITheme {
	return []TUITheme{TokyoNightTheme, SentinelTheme}
}
