// Package messages defines Bubbletea message types for the composer TUI.
// Messages carry the results of background work back into the update loop,
// so store, clipboard and watcher results are applied between keystrokes.
package messages

import (
	"time"

	"github.com/custodia-labs/composer/internal/core/domain"
)

// DirectoryLoaded carries the mention directory.
type DirectoryLoaded struct {
	Members []domain.Mention
	Err     error
}

// DraftLoaded carries the stored draft for the channel, if any.
type DraftLoaded struct {
	Draft *domain.Draft
	Err   error
}

// DraftSaved reports an autosave or explicit save.
// Saved is false when the autosave was throttled.
type DraftSaved struct {
	Draft *domain.Draft
	Saved bool
	Err   error
}

// AutosaveTick fires on the autosave interval.
type AutosaveTick struct {
	At time.Time
}

// WatchStarted carries the channel of externally written values.
type WatchStarted struct {
	Values <-chan string
	Err    error
}

// ExternalValue is a value written to the watched file by another program.
type ExternalValue struct {
	Value string
}

// WatchStopped signals the watched value channel closed.
type WatchStopped struct{}

// Submitted carries the value sent with Enter.
type Submitted struct {
	Value string
}

// ClipboardRead carries clipboard text to paste.
type ClipboardRead struct {
	Text string
	Err  error
}

// ClipboardWritten reports a copy.
type ClipboardWritten struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit after flushing the draft.
type Quit struct{}
