package cli

import (
	"context"
	"time"

	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driving"
)

func init() {
	skipServiceInit = true
}

// setupTestServices installs mock services and returns a cleanup function
// that restores the previous ones.
func setupTestServices() func() {
	oldDoc := documentService
	oldCmp := comparisonService
	oldSettings := settingsService

	documentService = &mockDocumentService{}
	comparisonService = &mockComparisonService{}
	settingsService = &mockSettingsService{}

	return func() {
		documentService = oldDoc
		comparisonService = oldCmp
		settingsService = oldSettings
	}
}

var testUploadTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testDocument(id, filename string) domain.Document {
	return domain.Document{
		ID:        id,
		Filename:  filename,
		Type:      domain.DocumentTypeText,
		MIMEType:  "text/plain",
		Size:      42,
		Content:   "This is the content of the test document.",
		CreatedAt: testUploadTime,
	}
}

func testResult() *domain.Result {
	return &domain.Result{
		Differences: []domain.Difference{
			{
				Type:            domain.DifferenceModification,
				OriginalContent: "within 30 days",
				ModifiedContent: "within 60 days",
				Importance:      domain.ImportanceHigh,
			},
		},
		UnifiedDiff:     "--- Document 1\n+++ Document 2\n-within 30 days\n+within 60 days\n",
		SimilarityScore: 0.87,
		Summary: &domain.Summary{
			Text:          "1 difference found between the documents.",
			Total:         1,
			Modifications: 1,
			High:          1,
		},
	}
}

// mockDocumentService is a map-free mock returning fixed documents.
type mockDocumentService struct {
	err error
}

var _ driving.DocumentService = (*mockDocumentService)(nil)

func (m *mockDocumentService) Ingest(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	doc := testDocument("doc-1", raw.Filename)
	return &doc, nil
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []domain.Document{testDocument("doc-1", "contract-v1.txt")}, nil
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	doc := testDocument(id, "contract-v1.txt")
	return &doc, nil
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "This is the content of the test document.", nil
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockDocumentServiceEmpty returns no documents.
type mockDocumentServiceEmpty struct {
	mockDocumentService
}

func (m *mockDocumentServiceEmpty) List(_ context.Context) ([]domain.Document, error) {
	return nil, nil
}

// mockComparisonService returns a fixed completed comparison.
type mockComparisonService struct {
	err error
}

var _ driving.ComparisonService = (*mockComparisonService)(nil)

func (m *mockComparisonService) Create(_ context.Context, originalID, modifiedID string, level domain.ComparisonLevel) (*domain.Comparison, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Comparison{
		ID:                 "cmp-1",
		OriginalDocumentID: originalID,
		ModifiedDocumentID: modifiedID,
		Level:              level,
		State:              domain.StateQueued,
		CreatedAt:          testUploadTime,
	}, nil
}

func (m *mockComparisonService) Status(_ context.Context, id string) (*domain.Comparison, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Comparison{
		ID:                 id,
		OriginalDocumentID: "doc-1",
		ModifiedDocumentID: "doc-2",
		Level:              domain.LevelAI,
		State:              domain.StateCompleted,
		Progress:           1,
		Result:             testResult(),
		CreatedAt:          testUploadTime,
	}, nil
}

func (m *mockComparisonService) Result(_ context.Context, _ string) (*domain.Result, error) {
	if m.err != nil {
		return nil, m.err
	}
	return testResult(), nil
}

func (m *mockComparisonService) List(_ context.Context) ([]domain.Comparison, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []domain.Comparison{{ID: "cmp-1", State: domain.StateCompleted}}, nil
}

func (m *mockComparisonService) Execute(_ context.Context, _, _ string, _ domain.ComparisonLevel) (*domain.Result, error) {
	if m.err != nil {
		return nil, m.err
	}
	return testResult(), nil
}

func (m *mockComparisonService) Start(_ context.Context) error { return nil }

func (m *mockComparisonService) Stop() error { return nil }

// mockSettingsService stores settings in memory.
type mockSettingsService struct {
	settings domain.AppSettings
	saved    *domain.AppSettings
}

var _ driving.SettingsService = (*mockSettingsService)(nil)

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.saved != nil {
		return m.saved, nil
	}
	s := m.settings
	if s == (domain.AppSettings{}) {
		s = domain.DefaultAppSettings()
	}
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.saved = settings
	return nil
}

func (m *mockSettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	s, _ := m.Get()
	s.Embedding = domain.EmbeddingSettings{Provider: provider, Model: model, APIKey: apiKey}
	m.saved = s
	return nil
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	s, _ := m.Get()
	s.LLM = domain.LLMSettings{Provider: provider, Model: model, APIKey: apiKey}
	m.saved = s
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}
