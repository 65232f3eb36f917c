package driven

import "github.com/custodia-labs/composer/internal/core/domain"

// Codec converts documents to and from one external representation.
type Codec interface {
	// Format returns the representation this codec handles.
	Format() domain.Format

	// Priority returns the load precedence (higher = tried first).
	// Structured formats should return 50-100.
	// Fallback codecs that accept any input should return 1-9.
	Priority() int

	// Encode serialises a document.
	Encode(doc domain.Document) (string, error)

	// Decode parses a value. Decoders reject values that are not in
	// their format rather than guessing.
	Decode(value string) (domain.Document, error)
}
