// Package driving holds the interfaces the HTTP API, the MCP server, the
// CLI and the watch view call into. internal/core/services implements them.
package driving
