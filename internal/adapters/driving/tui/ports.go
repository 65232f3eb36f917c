// Package tui provides the interactive terminal composer.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/composer/internal/core/ports/driven"
	"github.com/custodia-labs/composer/internal/core/ports/driving"
)

// Ports aggregates the services the TUI depends on.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Composer creates the editing session. Required.
	Composer driving.ComposerFactory

	// Drafts restores and autosaves the channel draft. Optional.
	Drafts driving.DraftService

	// Directory supplies the mention directory. Optional.
	Directory driving.DirectoryService

	// Clipboard backs copy and paste. Optional.
	Clipboard driven.Clipboard
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Composer == nil {
		return ErrMissingComposer
	}
	return nil
}
