package driving

import (
	"context"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

// ComparisonService creates and tracks document comparisons.
type ComparisonService interface {
	// Create queues a comparison between two stored documents and
	// returns it in the queued state.
	Create(ctx context.Context, originalID, modifiedID string, level domain.ComparisonLevel) (*domain.Comparison, error)

	// Status returns the current state of a comparison.
	Status(ctx context.Context, id string) (*domain.Comparison, error)

	// Result returns the result of a completed comparison.
	// Returns ErrComparisonIncomplete while the comparison is running.
	Result(ctx context.Context, id string) (*domain.Result, error)

	// List returns all comparisons, newest first.
	List(ctx context.Context) ([]domain.Comparison, error)

	// Execute runs the comparison pipeline synchronously and returns the
	// result without persisting a job. Used by the CLI compare command.
	Execute(ctx context.Context, originalID, modifiedID string, level domain.ComparisonLevel) (*domain.Result, error)

	// Start launches the background worker that processes queued
	// comparisons. It blocks until Stop is called or ctx is cancelled.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the background worker.
	Stop() error
}
