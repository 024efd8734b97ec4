package tui

import (
	"context"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	content   string
	err       error
}

func (m *mockDocumentService) Ingest(_ context.Context, _ *domain.RawDocument) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return m.content, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockComparisonService is a mock implementation of driving.ComparisonService.
type mockComparisonService struct {
	comparison  *domain.Comparison
	comparisons []domain.Comparison
	result      *domain.Result
	err         error
}

func (m *mockComparisonService) Create(_ context.Context, _, _ string, _ domain.ComparisonLevel) (*domain.Comparison, error) {
	return m.comparison, m.err
}

func (m *mockComparisonService) Status(_ context.Context, _ string) (*domain.Comparison, error) {
	return m.comparison, m.err
}

func (m *mockComparisonService) Result(_ context.Context, _ string) (*domain.Result, error) {
	return m.result, m.err
}

func (m *mockComparisonService) List(_ context.Context) ([]domain.Comparison, error) {
	return m.comparisons, m.err
}

func (m *mockComparisonService) Execute(_ context.Context, _, _ string, _ domain.ComparisonLevel) (*domain.Result, error) {
	return m.result, m.err
}

func (m *mockComparisonService) Start(_ context.Context) error { return m.err }
func (m *mockComparisonService) Stop() error                   { return m.err }
