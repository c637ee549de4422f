// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	BannerStyle        lipgloss.Style

	// Page chrome.
	TitleStyle       lipgloss.Style
	SubtitleStyle    lipgloss.Style
	HelpStyle        lipgloss.Style
	ErrorBannerStyle lipgloss.Style
	PanelStyle       lipgloss.Style

	// Stat counters.
	StatBoxStyle   lipgloss.Style
	StatValueStyle lipgloss.Style
	StatLabelStyle lipgloss.Style
	AllClearStyle  lipgloss.Style

	// Analysis units.
	SectionHeaderStyle lipgloss.Style
	ClauseTitleStyle   lipgloss.Style
	FlagTitleStyle     lipgloss.Style
	UnitBodyStyle      lipgloss.Style
	UnitCursorStyle    lipgloss.Style
	UnitNormalStyle    lipgloss.Style
	StatusMutedStyle   lipgloss.Style
	StatusActiveStyle  lipgloss.Style
	StatusErrorStyle   lipgloss.Style
	LangBadgeStyle     lipgloss.Style

	// Chat.
	ChatUserStyle       lipgloss.Style
	ChatAIStyle         lipgloss.Style
	ChatTimeStyle       lipgloss.Style
	ChatSuggestionStyle lipgloss.Style

	// Forms.
	FormFieldStyle        lipgloss.Style
	FormFieldFocusedStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	BannerStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	SubtitleStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	ErrorBannerStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Foreground(ColorError).
		Padding(0, 1)
	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)

	StatBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 2).
		Align(lipgloss.Center)
	StatValueStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	StatLabelStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	AllClearStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	SectionHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginTop(1)
	ClauseTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	FlagTitleStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
	UnitBodyStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	UnitCursorStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	UnitNormalStyle = lipgloss.NewStyle().
		Border(lipgloss.HiddenBorder(), false, false, false, true).
		PaddingLeft(1)
	StatusMutedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	StatusActiveStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	LangBadgeStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorSecondary).
		Padding(0, 1)

	ChatUserStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	ChatAIStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)
	ChatTimeStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	ChatSuggestionStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	FormFieldStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorMuted).
		PaddingLeft(1)
	FormFieldFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
}

// Banner is shown above interactive CLI prompts.
const Banner = "lawsimplify · plain-language contract review"

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
