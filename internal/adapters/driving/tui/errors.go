package tui

import "errors"

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("tui: document service is required")

// ErrMissingComparisonService is returned when the comparison service is not provided.
var ErrMissingComparisonService = errors.New("tui: comparison service is required")
