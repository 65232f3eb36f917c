// Package memory provides in-memory driven adapters. They back the
// composer when no data directory is available and act as fakes in
// service tests.
package memory
