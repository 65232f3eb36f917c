package domain

// Key names a keyboard key independent of any terminal or GUI toolkit.
type Key uint8

// Recognised keys. Printable characters, space included, use KeyRune.
const (
	KeyRune Key = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
)

// KeyEvent is a single key press with its modifiers.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Shift bool
	Ctrl  bool
	Meta  bool
	Alt   bool
}

// RuneKey creates a key event for a printable character.
func RuneKey(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r}
}

// NamedKey creates a key event for a non-printable key.
func NamedKey(k Key) KeyEvent {
	return KeyEvent{Key: k}
}

// IsShortcut reports whether Ctrl or Meta is held.
func (e KeyEvent) IsShortcut() bool {
	return e.Ctrl || e.Meta
}

// IsSpace reports whether the event types a space.
func (e KeyEvent) IsSpace() bool {
	return e.Key == KeyRune && e.Rune == ' '
}
