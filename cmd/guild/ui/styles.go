// Package ui provides the visual components for the guild dashboard TUI:
// theme and styles, the board and list pages, modal forms, and the toast
// line. Pages hold presentation state only; data and network access stay
// with the dashboard model that feeds them.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light mode colors
	LightBackground = lipgloss.Color("#f5f4f0")
	LightForeground = lipgloss.Color("#1f2430")
	LightPrimary    = lipgloss.Color("#2b4f81")
	LightAccent     = lipgloss.Color("#c59b2d")
	LightSecondary  = lipgloss.Color("#e3e1d9")
	LightMuted      = lipgloss.Color("#8a8f98")
	LightBorder     = lipgloss.Color("#d4d2c8")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark mode colors
	DarkBackground = lipgloss.Color("#161a22")
	DarkForeground = lipgloss.Color("#e8e6e1")
	DarkPrimary    = lipgloss.Color("#89b4fa")
	DarkAccent     = lipgloss.Color("#e5c07b")
	DarkSecondary  = lipgloss.Color("#222836")
	DarkMuted      = lipgloss.Color("#5c6370")
	DarkBorder     = lipgloss.Color("#353b49")
	DarkCard       = lipgloss.Color("#1d2330")

	// Semantic colors, same in both modes
	Destructive = lipgloss.Color("#e06c75")
	Success     = lipgloss.Color("#98c379")
	Warning     = lipgloss.Color("#e5c07b")
	Info        = lipgloss.Color("#61afef")

	// Column accent colors, in board order
	ProposedAccent  = lipgloss.Color("#8a8f98")
	ActiveAccent    = lipgloss.Color("#61afef")
	CompletedAccent = lipgloss.Color("#98c379")
)

// Theme holds the current color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme picks a theme from the config value, the terminal background
// hint, or GUILD_DARK_MODE, in that order. Empty configured means auto.
func DetectTheme(configured string) Theme {
	switch configured {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	}

	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// Format is "foreground;background"; ANSI indices 0-6 and 8 are
		// dark backgrounds.
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("GUILD_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	// Layout
	App     lipgloss.Style
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style
	TabBar  lipgloss.Style

	// Tabs
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Board
	Column         lipgloss.Style
	ColumnHeader   lipgloss.Style
	Card           lipgloss.Style
	CardSelected   lipgloss.Style
	CardMoving     lipgloss.Style
	ColumnTarget   lipgloss.Style
	EmptyColumn    lipgloss.Style

	// Interactive
	Prompt    lipgloss.Style
	UserInput lipgloss.Style
	FormLabel lipgloss.Style
	FormError lipgloss.Style
	Modal     lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Badge       lipgloss.Style
	BadgeUnread lipgloss.Style
	Divider     lipgloss.Style
	RowSelected lipgloss.Style
	RowPending  lipgloss.Style
}

// DefaultStyles creates Styles with the auto-detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme(""))
}

// NewStyles creates a Styles instance for the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		App: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Border),

		TabActive: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 2),

		TabInactive: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		ColumnHeader: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		CardMoving: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),

		ColumnTarget: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),

		EmptyColumn: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true).
			Padding(1, 2),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		UserInput: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		FormLabel: lipgloss.NewStyle().
			Foreground(theme.Muted),

		FormError: lipgloss.NewStyle().
			Foreground(Destructive),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 2),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Badge: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		BadgeUnread: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		RowSelected: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		RowPending: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),
	}
}

// StatusAccent returns the column accent color for a status string.
func StatusAccent(status string) lipgloss.Color {
	switch status {
	case "Active":
		return ActiveAccent
	case "Completed":
		return CompletedAccent
	default:
		return ProposedAccent
	}
}
