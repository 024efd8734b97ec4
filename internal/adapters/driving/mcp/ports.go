package mcp

import (
	"github.com/clauseworks/pactdiff/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Comparison creates and tracks comparisons.
	Comparison driving.ComparisonService

	// Document manages stored documents.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Comparison == nil {
		return ErrMissingComparisonService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
