package driving

import "github.com/custodia-labs/composer/internal/core/domain"

// ConversionService loads and serialises composer values.
type ConversionService interface {
	// Load parses a stored value: canonical first, then legacy markup,
	// then the raw string as a single paragraph. It never fails.
	Load(value string) domain.Document

	// Detect returns the format Load would read value as.
	Detect(value string) domain.Format

	// Encode serialises doc in format.
	Encode(doc domain.Document, format domain.Format) (string, error)

	// Save serialises doc the way a composer in mode emits it:
	// canonical in rich mode, plain text in plain mode.
	Save(doc domain.Document, mode domain.Mode) (string, error)

	// Convert loads value and re-encodes it in format.
	Convert(value string, format domain.Format) (string, error)

	// Formats lists the registered formats in load order.
	Formats() []domain.Format
}
