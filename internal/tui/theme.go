package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Palette of the default theme.
var (
	accentPrimary  = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#f59e0b"}
	accentBright   = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#fbbf24"}
	textStrong     = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f9fafb"}
	textMuted      = lipgloss.AdaptiveColor{Light: "#4b5563", Dark: "#9ca3af"}
	borderFocused  = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#f59e0b"}
	buttonBg       = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#f59e0b"}
	buttonBlurred  = lipgloss.AdaptiveColor{Light: "#e5e7eb", Dark: "#374151"}
	buttonText     = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#111827"}
	buttonTextBlur = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#d1d5db"}
)

// currentTheme is the theme set with SetTheme; nil means defaultTheme.
var currentTheme *huh.Theme

// SetTheme selects a theme by name. Unknown or empty names select the
// default.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return defaultTheme()
	}
	return currentTheme
}

func resetTheme() {
	currentTheme = nil
}

func defaultTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderFocused)
	t.Focused.Title = t.Focused.Title.Foreground(accentPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(textMuted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(buttonText).
		Background(buttonBg).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(buttonTextBlur).
		Background(buttonBlurred).
		Padding(0, 1)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accentBright)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	t.Help.ShortKey = t.Help.ShortKey.Foreground(textStrong)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(textMuted)
	t.Help.FullKey = t.Help.FullKey.Foreground(textStrong)
	t.Help.FullDesc = t.Help.FullDesc.Foreground(textMuted)

	return t
}
