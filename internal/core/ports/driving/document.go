package driving

import (
	"context"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

// DocumentService manages uploaded documents.
type DocumentService interface {
	// Ingest normalises raw bytes into a stored document.
	// Returns ErrUnsupportedType for unknown formats.
	Ingest(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)

	// List returns all stored documents.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// GetContent returns the extracted text of a document.
	GetContent(ctx context.Context, id string) (string, error)

	// Delete removes a document and its chunks.
	Delete(ctx context.Context, id string) error
}
