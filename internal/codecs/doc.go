// Package codecs provides implementations of the Codec interface for the
// external representations of a composer value. Each codec knows how to
// encode and decode one format.
//
// Codecs are registered with the conversion service at startup; its load
// precedence follows codec priority.
package codecs
