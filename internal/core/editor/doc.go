// Package editor implements the document model operations and the mark and
// block commands of the composer.
//
// Every operation is a pure function from State to State: the input is never
// mutated, so states can be kept for undo, compared in tests and replayed
// from a command log. Commands compose as Pass values.
//
// # Import Rules
//
//   - Can Import: domain package, text segmentation
//   - Cannot Import: ports, services, adapters
package editor
