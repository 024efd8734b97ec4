// Package driving provides interfaces for user-facing adapters
// (primary/inbound ports): the HTTP API, CLI, MCP server and TUI.
package driving
