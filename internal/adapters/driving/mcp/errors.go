// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the composer. It lets AI assistants convert stored messages between
// formats and read the mentions, drafts and directory.
package mcp

import "errors"

// ErrMissingConversionService is returned when the conversion service is not provided.
var ErrMissingConversionService = errors.New("mcp: conversion service is required")

// ErrMissingDirectoryService is returned by tools that need the directory.
var ErrMissingDirectoryService = errors.New("mcp: directory service is not configured")
