package driven

import (
	"context"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

// ComparisonStore persists comparison jobs and their results.
type ComparisonStore interface {
	// Save stores or updates a comparison.
	Save(ctx context.Context, cmp *domain.Comparison) error

	// Get retrieves a comparison by ID.
	Get(ctx context.Context, id string) (*domain.Comparison, error)

	// List returns all comparisons, newest first.
	List(ctx context.Context) ([]domain.Comparison, error)

	// ListByState returns comparisons in the given state, oldest first.
	// Used to re-queue unfinished work on startup.
	ListByState(ctx context.Context, state domain.ComparisonState) ([]domain.Comparison, error)

	// Delete removes a comparison.
	Delete(ctx context.Context, id string) error
}
