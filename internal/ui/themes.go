package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Brand colors
	Primary   lipgloss.TerminalColor
	Secondary lipgloss.TerminalColor
	Accent    lipgloss.TerminalColor

	// Semantic colors
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor

	// Surface colors
	Border     lipgloss.TerminalColor
	Foreground lipgloss.TerminalColor
	Muted      lipgloss.TerminalColor
	Selected   lipgloss.TerminalColor

	// Result colors
	Intent   lipgloss.TerminalColor
	Callout  lipgloss.TerminalColor
	Reasoner lipgloss.TerminalColor
}

func adaptive(c [2]string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: c[0], Dark: c[1]}
}

// buildTheme creates a theme from light/dark color pairs
func buildTheme(name string, primary, secondary, accent, success, warning, errorColor, border, foreground, muted, selected, intent, callout, reasoner [2]string) Theme {
	return Theme{
		Name:       name,
		Primary:    adaptive(primary),
		Secondary:  adaptive(secondary),
		Accent:     adaptive(accent),
		Success:    adaptive(success),
		Warning:    adaptive(warning),
		Error:      adaptive(errorColor),
		Border:     adaptive(border),
		Foreground: adaptive(foreground),
		Muted:      adaptive(muted),
		Selected:   adaptive(selected),
		Intent:     adaptive(intent),
		Callout:    adaptive(callout),
		Reasoner:   adaptive(reasoner),
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#4F46E5", "#818CF8"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#0D9488", "#2DD4BF"},
		[2]string{"#059669", "#10B981"}, [2]string{"#D97706", "#F59E0B"}, [2]string{"#DC2626", "#EF4444"},
		[2]string{"#D1D5DB", "#374151"}, [2]string{"#111827", "#F9FAFB"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#E0E7FF", "#312E81"}, [2]string{"#0F766E", "#5EEAD4"}, [2]string{"#EEF2FF", "#1E1B4B"},
		[2]string{"#7C3AED", "#A78BFA"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#444444", "#CCCCCC"}, [2]string{"#000080", "#8080FF"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#000000", "#FFFFFF"}, [2]string{"#444444", "#CCCCCC"},
		[2]string{"#FFFF00", "#444400"}, [2]string{"#000080", "#80FFFF"}, [2]string{"#FFFFCC", "#222222"},
		[2]string{"#800080", "#FF80FF"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#4A5568", "#CBD5E0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#E2E8F0", "#2D3748"}, [2]string{"#2D3748", "#F7FAFC"}, [2]string{"#A0AEC0", "#718096"},
		[2]string{"#EDF2F7", "#2D3748"}, [2]string{"#4A5568", "#CBD5E0"}, [2]string{"#F7FAFC", "#1A202C"},
		[2]string{"#553C9A", "#B794F6"})

	// plainTheme is used when color output is disabled
	plainTheme = Theme{
		Name:       "plain",
		Primary:    lipgloss.NoColor{},
		Secondary:  lipgloss.NoColor{},
		Accent:     lipgloss.NoColor{},
		Success:    lipgloss.NoColor{},
		Warning:    lipgloss.NoColor{},
		Error:      lipgloss.NoColor{},
		Border:     lipgloss.NoColor{},
		Foreground: lipgloss.NoColor{},
		Muted:      lipgloss.NoColor{},
		Selected:   lipgloss.NoColor{},
		Intent:     lipgloss.NoColor{},
		Callout:    lipgloss.NoColor{},
		Reasoner:   lipgloss.NoColor{},
	}
)

var (
	themeMu       sync.RWMutex
	currentTheme  = DefaultTheme
	colorDisabled bool
)

// GetTheme returns the current active theme
func GetTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if colorDisabled || os.Getenv("NO_COLOR") != "" {
		return plainTheme
	}
	return currentTheme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	var theme Theme
	switch name {
	case "default", "":
		theme = DefaultTheme
	case "high-contrast":
		theme = HighContrastTheme
	case "minimal":
		theme = MinimalTheme
	default:
		return false
	}

	themeMu.Lock()
	currentTheme = theme
	themeMu.Unlock()
	return true
}

// SetColorDisabled turns color output off regardless of theme
func SetColorDisabled(disabled bool) {
	themeMu.Lock()
	colorDisabled = disabled
	themeMu.Unlock()
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return colorDisabled || os.Getenv("NO_COLOR") != ""
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	// Chrome
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Footer   lipgloss.Style
	Muted    lipgloss.Style

	// Input
	InputFocused lipgloss.Style
	InputBlurred lipgloss.Style

	// Picker
	PickerLabel  lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style

	// Status
	Spinner lipgloss.Style
	Loading lipgloss.Style
	Error   lipgloss.Style
	Notice  lipgloss.Style

	// Result
	SectionLabel   lipgloss.Style
	Body           lipgloss.Style
	Intent         lipgloss.Style
	Recommendation lipgloss.Style
}

// GetStyles builds styles from the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Italic(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary),

		InputBlurred: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		PickerLabel: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(theme.Border).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(theme.Accent).
			Background(theme.Selected).
			Padding(0, 1),

		CardTitle: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Reasoner),

		Loading: lipgloss.NewStyle().
			Foreground(theme.Reasoner).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Notice: lipgloss.NewStyle().
			Foreground(theme.Warning),

		SectionLabel: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Underline(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Intent: lipgloss.NewStyle().
			Foreground(theme.Intent).
			Italic(true),

		Recommendation: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Background(theme.Callout).
			Padding(0, 1),
	}
}
