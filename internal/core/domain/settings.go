package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// Mode selects how the composer treats its content.
type Mode string

// Available composer modes.
const (
	// ModeRich enables marks, lists, mentions and auto-linking.
	ModeRich Mode = "rich"

	// ModePlain keeps a single plain paragraph and emits plain text.
	ModePlain Mode = "plain"
)

// IsValid returns true if the mode is recognised.
func (m Mode) IsValid() bool {
	return m == ModeRich || m == ModePlain
}

// String returns the string representation.
func (m Mode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m Mode) Description() string {
	switch m {
	case ModeRich:
		return "Rich (formatting, lists, mentions, links)"
	case ModePlain:
		return "Plain (text only)"
	default:
		return unknownDescription
	}
}

// Format names an external representation of a document.
type Format string

// Available formats.
const (
	// FormatCanonical is the JSON tree form.
	FormatCanonical Format = "canonical"

	// FormatMarkup is the legacy inline markup form.
	FormatMarkup Format = "markup"

	// FormatPlain is one line of text per top-level block.
	FormatPlain Format = "plain"
)

// ParseFormat resolves a format name, accepting a few aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "canonical", "json":
		return FormatCanonical, nil
	case "markup", "html":
		return FormatMarkup, nil
	case "plain", "text", "txt":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Settings holds composer preferences.
type Settings struct {
	// Mode is the default composer mode.
	Mode Mode

	// MaxCandidates caps the suggestion list.
	MaxCandidates int

	// HistoryLimit caps undo entries.
	HistoryLimit int

	// AutosaveIntervalMs is the minimum gap between draft autosaves.
	AutosaveIntervalMs int
}

// DefaultSettings returns the built-in preferences.
func DefaultSettings() Settings {
	return Settings{
		Mode:               ModeRich,
		MaxCandidates:      10,
		HistoryLimit:       1000,
		AutosaveIntervalMs: 2000,
	}
}
