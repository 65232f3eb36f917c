package tui

import "errors"

// ErrMissingComposer is returned when the composer factory is not provided.
var ErrMissingComposer = errors.New("tui: composer factory is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")

// ErrNoClipboard is reported when copy or paste is used without a clipboard.
var ErrNoClipboard = errors.New("tui: clipboard unavailable")
