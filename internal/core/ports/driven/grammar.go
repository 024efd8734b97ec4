package driven

import (
	"context"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

// GrammarChecker finds grammar and style issues in document text.
// This is an optional service - when nil, the grammar stage is skipped.
type GrammarChecker interface {
	// Check returns the issues found in the given text.
	Check(ctx context.Context, text, language string) ([]domain.GrammarIssue, error)

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
