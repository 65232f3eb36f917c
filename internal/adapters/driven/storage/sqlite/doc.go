// Package sqlite provides the SQLite-backed driven adapters of the composer.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. One database connection serves two stores:
//
//   - DraftStore: composer values saved per channel
//   - MemberStore: the mention directory
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration records its version in
// schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.composer/data/composer.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. SQLite runs in WAL mode.
package sqlite
