// Package driving defines the interfaces the CLI, TUI and MCP adapters
// use to reach the composer core: editing sessions, conversion between
// stored formats, drafts, the mention directory and settings.
//
// Implementations live in internal/core/services.
package driving
