package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown document format or MIME type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrComparisonIncomplete indicates a result was requested before the
	// comparison reached the completed state.
	ErrComparisonIncomplete = errors.New("comparison not completed")

	// ErrExtractorUnavailable indicates a required external extraction
	// tool (pdftotext, tesseract) is not installed.
	ErrExtractorUnavailable = errors.New("text extractor unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// The comparison summary falls back to the deterministic form.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Semantic comparison is skipped with a note.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGrammarUnavailable indicates the grammar checker is not
	// configured or unreachable.
	ErrGrammarUnavailable = errors.New("grammar checker unavailable")

	// ErrRateLimited indicates an external API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
