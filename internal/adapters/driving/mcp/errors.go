// Package mcp provides an MCP (Model Context Protocol) server adapter for Nextact.
// It enables AI assistants like Claude to search and inspect the local task data.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
