package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the configurable styles of the menus and the help bar.
// The sheet itself is colored through colorStyles.
type Theme struct {
	// Picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemSolved  lipgloss.Style
	MenuDescription lipgloss.Style
	Stars           lipgloss.Style

	// Records styles
	RecordsTitle lipgloss.Style
	Border       lipgloss.Color
	TableHeader  lipgloss.Style
	TableActive  lipgloss.Style
	Empty        lipgloss.Style

	// Help bar
	HelpBar lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuItemSolved:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Stars:           lipgloss.NewStyle().Foreground(lipgloss.Color("220")),

		RecordsTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1),
		Border:       lipgloss.Color("240"),
		TableHeader:  lipgloss.NewStyle().Bold(true),
		TableActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		Empty:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),

		HelpBar: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme returns a theme without colors, for terminals that
// render ANSI colors poorly.
func MonochromeTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		MenuTitle:       plain.Bold(true),
		MenuItemNormal:  plain,
		MenuItemActive:  plain.Bold(true).Underline(true),
		MenuItemSolved:  plain,
		MenuDescription: plain.Faint(true),
		Stars:           plain,

		RecordsTitle: plain.Bold(true).MarginBottom(1),
		Border:       lipgloss.Color(""),
		TableHeader:  plain.Bold(true),
		TableActive:  plain.Reverse(true),
		Empty:        plain.Italic(true).Padding(2, 4),

		HelpBar: plain.Faint(true),
	}
}

var (
	theme      = DefaultTheme()
	monochrome bool
)

// SetMonochrome switches every screen between the default and the
// colorless theme.
func SetMonochrome(on bool) {
	monochrome = on
	if on {
		theme = MonochromeTheme()
	} else {
		theme = DefaultTheme()
	}
}

// CurrentTheme returns the active theme.
func CurrentTheme() Theme {
	return theme
}
