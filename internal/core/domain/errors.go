package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedFormat indicates an unknown serialisation format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// Document Errors.

	// ErrInvariant indicates a document violates a structural invariant.
	// Commands never produce such documents; decoders reject them.
	ErrInvariant = errors.New("document invariant violated")

	// ErrNotCanonical indicates a value is not a canonical document tree.
	ErrNotCanonical = errors.New("not a canonical document")

	// ErrNotMarkup indicates a value holds no recognisable legacy markup.
	ErrNotMarkup = errors.New("not legacy markup")

	// ErrInvalidPoint indicates a point does not address a text-bearing block.
	ErrInvalidPoint = errors.New("invalid point")
)
