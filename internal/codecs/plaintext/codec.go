// Package plaintext provides the fallback Codec: one line of text per
// top-level block on the way out, the raw string as a single paragraph on
// the way in.
package plaintext

import (
	"strings"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driven"
)

// Ensure Codec implements the interface.
var _ driven.Codec = (*Codec)(nil)

// Codec handles plain text.
type Codec struct{}

// New creates a new plain text codec.
func New() *Codec {
	return &Codec{}
}

// Format returns the representation this codec handles.
func (c *Codec) Format() domain.Format {
	return domain.FormatPlain
}

// Priority returns the load precedence.
func (c *Codec) Priority() int {
	return 5 // Fallback codec
}

// Encode writes one line per top-level block. Structure and marks are
// dropped; list items run together and mentions render as @name.
func (c *Codec) Encode(doc domain.Document) (string, error) {
	lines := make([]string, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		lines = append(lines, b.Text())
	}
	return strings.Join(lines, "\n"), nil
}

// Decode wraps the raw value as a single paragraph with one run.
// It accepts any input.
func (c *Codec) Decode(value string) (domain.Document, error) {
	return domain.NewDocument(domain.Paragraph(domain.TextRun(value))), nil
}
