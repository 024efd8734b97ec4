// Package chunker provides a sentence-aware text chunking processor.
package chunker

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/diffkit"
)

// DefaultChunkSize is the default target number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlapSentences is the default number of trailing sentences
// repeated at the start of the next chunk.
const DefaultOverlapSentences = 1

// Processor splits document content into sentence-aligned chunks.
// Chunks never cut a sentence in half, so embeddings compare whole
// clauses rather than arbitrary character windows.
type Processor struct {
	chunkSize        int
	overlapSentences int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the target chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlapSentences sets how many sentences repeat between chunks.
func WithOverlapSentences(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.overlapSentences = n
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize:        DefaultChunkSize,
		overlapSentences: DefaultOverlapSentences,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	sentences := diffkit.SplitSentences(doc.Content)
	if len(sentences) == 0 {
		return nil, nil
	}

	chunks := make([]domain.Chunk, 0, len(doc.Content)/p.chunkSize+1)
	position := 0

	var current []string
	currentLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    strings.Join(current, " "),
			Position:   position,
			Metadata:   map[string]any{"sentences": len(current)},
		})
		position++

		// Carry trailing sentences into the next chunk for context
		overlap := p.overlapSentences
		if overlap > len(current) {
			overlap = len(current)
		}
		current = append([]string(nil), current[len(current)-overlap:]...)
		currentLen = 0
		for _, s := range current {
			currentLen += len(s) + 1
		}
	}

	for _, sentence := range sentences {
		if currentLen > 0 && currentLen+len(sentence) > p.chunkSize {
			flush()
		}
		current = append(current, sentence)
		currentLen += len(sentence) + 1
	}

	// Final flush without re-seeding the overlap
	if len(current) > p.overlapSentences || position == 0 {
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    strings.Join(current, " "),
			Position:   position,
			Metadata:   map[string]any{"sentences": len(current)},
		})
	}

	return chunks, nil
}
