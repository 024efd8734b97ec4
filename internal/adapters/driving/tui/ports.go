// Package tui provides an interactive terminal user interface for pactdiff.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/clauseworks/pactdiff/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Document manages stored documents.
	Document driving.DocumentService

	// Comparison creates and tracks comparisons.
	Comparison driving.ComparisonService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(document driving.DocumentService, comparison driving.ComparisonService) *Ports {
	return &Ports{
		Document:   document,
		Comparison: comparison,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Comparison == nil {
		return ErrMissingComparisonService
	}
	return nil
}
