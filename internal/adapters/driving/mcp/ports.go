package mcp

import (
	"github.com/custodia-labs/composer/internal/core/ports/driving"
)

// Ports aggregates the services the MCP server exposes.
type Ports struct {
	// Conversion loads and encodes message values. Required.
	Conversion driving.ConversionService

	// Directory backs member search and the members resource.
	Directory driving.DirectoryService

	// Drafts backs the drafts resources.
	Drafts driving.DraftService
}

// Validate reports ErrMissingConversionService when no conversion
// service is wired. Directory and Drafts may be nil.
func (p *Ports) Validate() error {
	if p.Conversion == nil {
		return ErrMissingConversionService
	}
	return nil
}
