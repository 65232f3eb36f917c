// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Codec: Encodes and decodes one external document format
//   - DraftStore: Draft persistence
//   - MemberStore: Mention directory persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Clipboard: System clipboard. Without it copy and paste are disabled.
//   - ValueWatcher: External value source. Without it the composer only
//     changes through its own edits.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or codec package
package driven
