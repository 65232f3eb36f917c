// Package domain defines the core entities of the composer.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ordered tree of blocks holding runs of marked text
//   - Run: A text run, link run or atomic mention token
//   - Point / Selection / Range: Cursor addressing inside a Document
//   - Mention: A directory entry that can be referenced with @
//   - Draft: A persisted composer value
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
