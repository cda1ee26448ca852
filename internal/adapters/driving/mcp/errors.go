// Package mcp provides an MCP (Model Context Protocol) server adapter for drivegate.
// It lets AI assistants inspect drives and ask for recommendations through
// the same drive service the HTTP API uses.
package mcp

import "errors"

// ErrMissingDriveService is returned when the drive service is not provided.
var ErrMissingDriveService = errors.New("mcp: drive service is required")
