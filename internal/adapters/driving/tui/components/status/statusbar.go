// Package status provides the composer status bar.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/composer/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/composer/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driving"
)

// State represents the draft and delivery state for display.
type State string

const (
	StateReady   State = "ready"
	StateEditing State = "editing"
	StateSaved   State = "saved"
	StateSent    State = "sent"
	StateError   State = "error"
)

// Bar displays the formatting at the caret, draft state and key hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	format  driving.ComposerSnapshot
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	parts := []string{s.styles.Normal.Render(string(s.format.Mode))}
	if f := Formatting(s.format); f != "" {
		parts = append(parts, s.styles.Normal.Render(f))
	}

	switch s.state {
	case StateError:
		msg := "error"
		if s.message != "" {
			msg = "error: " + s.message
		}
		parts = append(parts, s.styles.Error.Render(msg))
	case StateSaved:
		parts = append(parts, s.styles.Success.Render(s.withMessage("draft saved")))
	case StateSent:
		parts = append(parts, s.styles.Success.Render(s.withMessage("sent")))
	case StateEditing:
		parts = append(parts, s.styles.Warning.Render(s.withMessage("unsaved")))
	case StateReady:
		if s.message != "" {
			parts = append(parts, s.styles.Muted.Render(s.message))
		}
	}
	return strings.Join(parts, s.styles.Muted.Render(" · "))
}

func (s *Bar) withMessage(label string) string {
	if s.message == "" {
		return label
	}
	return fmt.Sprintf("%s %s", label, s.message)
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.format.Mode == domain.ModePlain {
		bindings = s.keymap.PlainHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// Formatting summarises the marks, list and link at the caret, such as
// "B I • link". It is empty in plain mode or when nothing applies.
func Formatting(snap driving.ComposerSnapshot) string {
	if snap.Mode == domain.ModePlain {
		return ""
	}
	var parts []string
	for _, m := range []struct {
		mark  domain.Mark
		label string
	}{
		{domain.MarkBold, "B"},
		{domain.MarkItalic, "I"},
		{domain.MarkUnderline, "U"},
		{domain.MarkStrikethrough, "S"},
	} {
		if snap.Marks.Has(m.mark) {
			parts = append(parts, m.label)
		}
	}
	switch snap.List {
	case domain.KindBulletedList:
		parts = append(parts, "•")
	case domain.KindNumberedList:
		parts = append(parts, "1.")
	}
	if snap.InLink {
		parts = append(parts, "link")
	}
	return strings.Join(parts, " ")
}

// SetFormat records the snapshot the formatting summary is read from.
func (s *Bar) SetFormat(snap driving.ComposerSnapshot) {
	s.format = snap
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
