// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/cfgarc/cfgarc/internal/config"
)

// Shared palette for all CLI output, tuned for dark terminal backgrounds.
const (
	ColorPrimary   = lipgloss.Color("#7C3AED") // violet: titles and headers
	ColorMuted     = lipgloss.Color("#6B7280") // gray: secondary text
	ColorSuccess   = lipgloss.Color("#10B981") // green: completed operations
	ColorError     = lipgloss.Color("#EF4444") // red: failures
	ColorWarning   = lipgloss.Color("#F59E0B") // amber: degraded but continuing
	ColorHighlight = lipgloss.Color("#3B82F6") // blue: paths and values
)

// Styles every command renders through. Error and title text is bold so
// it survives a glance; the rest stays at normal weight.
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	SuccessStyle  = lipgloss.NewStyle().Foreground(ColorSuccess)
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorHighlight)
)

// resolveColorMode merges the --no-color flag with the configured mode.
// The flag wins.
func resolveColorMode(cfg *config.Config, noColor bool) config.ColorMode {
	if noColor {
		return config.ColorNever
	}
	if cfg != nil {
		return cfg.Color
	}
	return config.ColorAuto
}

// applyColorMode overrides lipgloss terminal detection for the default
// renderer. ColorAuto leaves detection alone.
func applyColorMode(mode config.ColorMode) {
	switch mode {
	case config.ColorAlways:
		lipgloss.SetColorProfile(termenv.TrueColor)
	case config.ColorNever:
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// glamourStyle maps a color mode to the glamour style used for issue
// cards. "auto" picks dark or light from the terminal background.
func glamourStyle(mode config.ColorMode) string {
	if mode == config.ColorNever {
		return "notty"
	}
	return "auto"
}
