// Package mcp provides an MCP (Model Context Protocol) server adapter
// for pactdiff. It lets AI assistants inspect stored contracts and run
// comparisons between them.
package mcp

import "errors"

// ErrMissingComparisonService is returned when the comparison service is not provided.
var ErrMissingComparisonService = errors.New("mcp: comparison service is required")

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("mcp: document service is required")
