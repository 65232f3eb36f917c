// Package styles provides colour themes and styling for the composer TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/composer/internal/core/domain"
)

// Theme defines the colour palette for the composer.
type Theme struct {
	// Primary is the main accent colour, used for the focused frame.
	Primary lipgloss.Color

	// Secondary highlights links.
	Secondary lipgloss.Color

	// Mention is the colour of mention tokens.
	Mention lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for placeholders, hints and list markers.
	Muted lipgloss.Color

	// Success reports saved drafts.
	Success lipgloss.Color

	// Warning reports throttled or pending work.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// Selection is the background of selected text.
	Selection lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Mention:    lipgloss.Color("#FAB387"), // Peach
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
		Selection:  lipgloss.Color("#585B70"), // Surface
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for the header.
	Title lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// Editor frames the composer while editable.
	Editor lipgloss.Style

	// EditorDisabled frames the composer while disabled.
	EditorDisabled lipgloss.Style

	// Link styles link runs and link blocks.
	Link lipgloss.Style

	// Mention styles mention tokens.
	Mention lipgloss.Style

	// Cursor styles the unit under the caret.
	Cursor lipgloss.Style

	// Selection styles selected units.
	Selection lipgloss.Style

	// ListMarker styles bullets and item numbers.
	ListMarker lipgloss.Style

	// Popover frames the suggestion list.
	Popover lipgloss.Style

	// PopoverItem styles a candidate.
	PopoverItem lipgloss.Style

	// PopoverSelected styles the highlighted candidate.
	PopoverSelected lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for key hints.
	Help lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Editor: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		EditorDisabled: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Foreground(theme.Muted).
			Padding(0, 1),

		Link: lipgloss.NewStyle().
			Underline(true).
			Foreground(theme.Secondary),

		Mention: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Mention),

		Cursor: lipgloss.NewStyle().
			Reverse(true),

		Selection: lipgloss.NewStyle().
			Background(theme.Selection),

		ListMarker: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Popover: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		PopoverItem: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		PopoverSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Text returns the style for a text run with marks, linked or not.
func (s *Styles) Text(marks domain.Marks, linked bool) lipgloss.Style {
	st := s.Normal
	if linked {
		st = s.Link
	}
	return st.
		Bold(marks.Bold).
		Italic(marks.Italic).
		Underline(marks.Underline || linked).
		Strikethrough(marks.Strikethrough)
}
