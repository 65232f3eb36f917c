package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/composer/internal/core/domain"
)

var namedKeys = map[tea.KeyType]domain.KeyEvent{
	tea.KeySpace:      domain.RuneKey(' '),
	tea.KeyEnter:      domain.NamedKey(domain.KeyEnter),
	tea.KeyCtrlJ:      {Key: domain.KeyEnter, Shift: true},
	tea.KeyTab:        domain.NamedKey(domain.KeyTab),
	tea.KeyShiftTab:   {Key: domain.KeyTab, Shift: true},
	tea.KeyBackspace:  domain.NamedKey(domain.KeyBackspace),
	tea.KeyDelete:     domain.NamedKey(domain.KeyDelete),
	tea.KeyEsc:        domain.NamedKey(domain.KeyEscape),
	tea.KeyUp:         domain.NamedKey(domain.KeyUp),
	tea.KeyDown:       domain.NamedKey(domain.KeyDown),
	tea.KeyLeft:       domain.NamedKey(domain.KeyLeft),
	tea.KeyRight:      domain.NamedKey(domain.KeyRight),
	tea.KeyHome:       domain.NamedKey(domain.KeyHome),
	tea.KeyEnd:        domain.NamedKey(domain.KeyEnd),
	tea.KeyShiftUp:    {Key: domain.KeyUp, Shift: true},
	tea.KeyShiftDown:  {Key: domain.KeyDown, Shift: true},
	tea.KeyShiftLeft:  {Key: domain.KeyLeft, Shift: true},
	tea.KeyShiftRight: {Key: domain.KeyRight, Shift: true},
	tea.KeyShiftHome:  {Key: domain.KeyHome, Shift: true},
	tea.KeyShiftEnd:   {Key: domain.KeyEnd, Shift: true},
}

// keyEvent translates a terminal key message into a composer key event.
// Multi-rune messages and pastes are not key events and report false.
func keyEvent(msg tea.KeyMsg) (domain.KeyEvent, bool) {
	if msg.Paste {
		return domain.KeyEvent{}, false
	}
	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) != 1 {
			return domain.KeyEvent{}, false
		}
		ev := domain.RuneKey(msg.Runes[0])
		ev.Alt = msg.Alt
		return ev, true
	}
	if ev, ok := namedKeys[msg.Type]; ok {
		if msg.Alt && ev.Key == domain.KeyEnter {
			ev.Shift = true
		}
		return ev, true
	}

	// ctrl+letter chords, such as ctrl+b or ctrl+z.
	name := msg.String()
	if letter, ok := strings.CutPrefix(name, "ctrl+"); ok && len(letter) == 1 {
		return domain.KeyEvent{Key: domain.KeyRune, Rune: rune(letter[0]), Ctrl: true}, true
	}
	return domain.KeyEvent{}, false
}
