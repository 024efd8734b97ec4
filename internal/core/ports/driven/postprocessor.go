package driven

import (
	"context"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

// PostProcessor transforms a normalised document's chunks.
// Processors run in a configured order after normalisation.
type PostProcessor interface {
	// Name returns the processor name used in pipeline configuration.
	Name() string

	// Process transforms the chunks for a document. The input chunks are
	// the output of the previous processor (empty for the first).
	Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error)
}
