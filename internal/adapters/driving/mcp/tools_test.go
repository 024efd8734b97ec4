package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

func newTestServer(t *testing.T, cmps *mockComparisonService, docs *mockDocumentService) *Server {
	t.Helper()
	if cmps == nil {
		cmps = &mockComparisonService{}
	}
	if docs == nil {
		docs = &mockDocumentService{}
	}
	server, err := NewServer(&Ports{Comparison: cmps, Document: docs})
	require.NoError(t, err)
	return server
}

func TestNewServer_MissingPorts(t *testing.T) {
	_, err := NewServer(&Ports{Document: &mockDocumentService{}})
	assert.ErrorIs(t, err, ErrMissingComparisonService)

	_, err = NewServer(&Ports{Comparison: &mockComparisonService{}})
	assert.ErrorIs(t, err, ErrMissingDocumentService)
}

func TestServer_handleCompare(t *testing.T) {
	ctx := context.Background()

	t.Run("queues a comparison", func(t *testing.T) {
		cmps := &mockComparisonService{
			comparison: &domain.Comparison{
				ID:    "cmp-1",
				Level: domain.LevelDetailed,
				State: domain.StateQueued,
			},
		}
		server := newTestServer(t, cmps, nil)

		input := CompareInput{
			OriginalDocumentID: "doc-a",
			ModifiedDocumentID: "doc-b",
			Level:              "detailed",
		}
		_, output, err := server.handleCompare(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "cmp-1", output.ComparisonID)
		assert.Equal(t, "queued", output.Status)
		assert.Equal(t, domain.LevelDetailed, cmps.createdLevel)
	})

	t.Run("defaults to ai level", func(t *testing.T) {
		cmps := &mockComparisonService{
			comparison: &domain.Comparison{ID: "cmp-1", Level: domain.LevelAI, State: domain.StateQueued},
		}
		server := newTestServer(t, cmps, nil)

		_, _, err := server.handleCompare(ctx, nil, CompareInput{
			OriginalDocumentID: "doc-a",
			ModifiedDocumentID: "doc-b",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.LevelAI, cmps.createdLevel)
	})

	t.Run("propagates service error", func(t *testing.T) {
		cmps := &mockComparisonService{err: domain.ErrNotFound}
		server := newTestServer(t, cmps, nil)

		_, _, err := server.handleCompare(ctx, nil, CompareInput{
			OriginalDocumentID: "missing",
			ModifiedDocumentID: "doc-b",
		})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServer_handleStatus(t *testing.T) {
	ctx := context.Background()

	cmps := &mockComparisonService{
		comparison: &domain.Comparison{
			ID:       "cmp-1",
			State:    domain.StateProcessing,
			Progress: 0.6,
			Message:  "running semantic comparison",
		},
	}
	server := newTestServer(t, cmps, nil)

	_, output, err := server.handleStatus(ctx, nil, StatusInput{ComparisonID: "cmp-1"})

	require.NoError(t, err)
	assert.Equal(t, "processing", output.Status)
	assert.InDelta(t, 0.6, output.Progress, 1e-9)
	assert.Equal(t, "running semantic comparison", output.Message)
}

func TestServer_handleResult(t *testing.T) {
	ctx := context.Background()

	t.Run("returns completed result", func(t *testing.T) {
		cmps := &mockComparisonService{
			result: &domain.Result{
				Differences: []domain.Difference{
					{
						Type:            domain.DifferenceModification,
						OriginalContent: "within 30 days",
						ModifiedContent: "within 60 days",
						Importance:      domain.ImportanceHigh,
						Confidence:      0.9,
					},
				},
				SimilarityScore: 0.87,
				Summary:         &domain.Summary{Text: "1 modification"},
			},
		}
		server := newTestServer(t, cmps, nil)

		_, output, err := server.handleResult(ctx, nil, ResultInput{ComparisonID: "cmp-1"})

		require.NoError(t, err)
		assert.Equal(t, "cmp-1", output.ComparisonID)
		require.Len(t, output.Differences, 1)
		assert.Equal(t, "modification", output.Differences[0].Type)
		assert.Equal(t, "high", output.Differences[0].Importance)
		assert.Equal(t, "1 modification", output.Summary)
	})

	t.Run("propagates incomplete error", func(t *testing.T) {
		cmps := &mockComparisonService{err: domain.ErrComparisonIncomplete}
		server := newTestServer(t, cmps, nil)

		_, _, err := server.handleResult(ctx, nil, ResultInput{ComparisonID: "cmp-1"})
		assert.ErrorIs(t, err, domain.ErrComparisonIncomplete)
	})
}

func TestServer_handleListDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("lists documents", func(t *testing.T) {
		docs := &mockDocumentService{
			documents: []domain.Document{
				{
					ID:        "doc-1",
					Filename:  "contract.pdf",
					Type:      domain.DocumentTypePDF,
					Size:      2048,
					CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
				},
			},
		}
		server := newTestServer(t, nil, docs)

		_, output, err := server.handleListDocuments(ctx, nil, ListDocumentsInput{})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Documents, 1)
		assert.Equal(t, "doc-1", output.Documents[0].ID)
		assert.Equal(t, "pdf", output.Documents[0].Type)
		assert.Equal(t, "2025-06-01T12:00:00Z", output.Documents[0].UploadTime)
	})

	t.Run("propagates list failure", func(t *testing.T) {
		docs := &mockDocumentService{err: errors.New("storage down")}
		server := newTestServer(t, nil, docs)

		_, _, err := server.handleListDocuments(ctx, nil, ListDocumentsInput{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage down")
	})
}
