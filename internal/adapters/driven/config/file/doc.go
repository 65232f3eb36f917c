// Package file provides the TOML configuration store of the composer.
//
// The file lives at ~/.composer/config.toml. Keys are addressed with dots
// ("composer.mode") and written back as nested tables.
package file
