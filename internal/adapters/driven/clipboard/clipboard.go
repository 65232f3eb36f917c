// Package clipboard adapts the system clipboard for copying composer
// values and pasting into the composer.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driven"
)

// Ensure System implements the interface.
var _ driven.Clipboard = (*System)(nil)

// Ensure Memory implements the interface.
var _ driven.Clipboard = (*Memory)(nil)

// System uses the OS clipboard through pbcopy, xclip, xsel, wl-clipboard
// or the Windows API.
type System struct{}

// NewSystem returns the system clipboard, or nil when the platform has no
// supported clipboard utility.
func NewSystem() *System {
	if clipboard.Unsupported {
		return nil
	}
	return &System{}
}

// ReadText returns the clipboard contents.
func (s *System) ReadText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return text, nil
}

// WriteText replaces the clipboard contents.
func (s *System) WriteText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Memory is a process-local clipboard used in tests and when the system
// clipboard is unavailable.
type Memory struct {
	mu   sync.Mutex
	text string
	set  bool
}

// NewMemory creates an empty clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// ReadText returns the last written text.
func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", domain.ErrNotFound
	}
	return m.text, nil
}

// WriteText stores text.
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.set = true
	return nil
}

// New returns the system clipboard when available and a Memory
// clipboard otherwise.
func New() driven.Clipboard {
	if s := NewSystem(); s != nil {
		return s
	}
	return NewMemory()
}
