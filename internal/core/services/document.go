package services

import (
	"context"
	"fmt"

	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driven"
	"github.com/clauseworks/pactdiff/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages uploaded documents.
type DocumentService struct {
	docStore       driven.DocumentStore
	registry       *NormaliserRegistry
	postProcessors []driven.PostProcessor
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	docStore driven.DocumentStore,
	registry *NormaliserRegistry,
	postProcessors ...driven.PostProcessor,
) *DocumentService {
	return &DocumentService{
		docStore:       docStore,
		registry:       registry,
		postProcessors: postProcessors,
	}
}

// Ingest normalises raw bytes into a stored document. The MIME type is
// taken from the raw document when set, otherwise guessed from the
// filename extension.
func (s *DocumentService) Ingest(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil || raw.Filename == "" {
		return nil, fmt.Errorf("%w: missing filename", domain.ErrInvalidInput)
	}
	if len(raw.Content) == 0 {
		return nil, fmt.Errorf("%w: empty content", domain.ErrInvalidInput)
	}

	if _, ok := domain.DocumentTypeForFilename(raw.Filename); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, raw.Filename)
	}

	mimeType := raw.MIMEType
	if mimeType == "" {
		mimeType = MIMETypeForFilename(raw.Filename)
	}

	normaliser, ok := s.registry.ForMIMEType(mimeType)
	if !ok {
		return nil, fmt.Errorf("%w: no normaliser for %q", domain.ErrUnsupportedType, mimeType)
	}

	raw.MIMEType = mimeType
	result, err := normaliser.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", raw.Filename, err)
	}
	doc := result.Document

	var chunks []domain.Chunk
	for _, pp := range s.postProcessors {
		chunks, err = pp.Process(ctx, &doc, chunks)
		if err != nil {
			return nil, fmt.Errorf("post-process %s (%s): %w", raw.Filename, pp.Name(), err)
		}
	}

	if err := s.docStore.SaveDocument(ctx, &doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	if len(chunks) > 0 {
		if err := s.docStore.SaveChunks(ctx, chunks); err != nil {
			return nil, fmt.Errorf("save chunks: %w", err)
		}
	}

	return &doc, nil
}

// List returns all stored documents.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, id)
}

// GetContent returns the extracted text of a document.
func (s *DocumentService) GetContent(ctx context.Context, id string) (string, error) {
	doc, err := s.docStore.GetDocument(ctx, id)
	if err != nil {
		return "", err
	}
	return doc.Content, nil
}

// Delete removes a document and its chunks.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	return s.docStore.DeleteDocument(ctx, id)
}
