package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

// CompareInput is the input schema for the compare_documents tool.
type CompareInput struct {
	OriginalDocumentID string `json:"original_document_id" jsonschema:"the ID of the original document"`
	ModifiedDocumentID string `json:"modified_document_id" jsonschema:"the ID of the modified document"`
	Level              string `json:"level,omitempty" jsonschema:"comparison level: basic, detailed or ai (default ai)"`
}

// CompareOutput is the output schema for the compare_documents tool.
type CompareOutput struct {
	ComparisonID string `json:"comparison_id"`
	Status       string `json:"status"`
	Level        string `json:"level"`
}

// StatusInput is the input schema for the get_comparison_status tool.
type StatusInput struct {
	ComparisonID string `json:"comparison_id" jsonschema:"the ID of the comparison to check"`
}

// StatusOutput is the output schema for the get_comparison_status tool.
type StatusOutput struct {
	ComparisonID string  `json:"comparison_id"`
	Status       string  `json:"status"`
	Progress     float64 `json:"progress"`
	Message      string  `json:"message,omitempty"`
}

// ResultInput is the input schema for the get_comparison_result tool.
type ResultInput struct {
	ComparisonID string `json:"comparison_id" jsonschema:"the ID of the completed comparison"`
}

// ResultOutput is the output schema for the get_comparison_result tool.
type ResultOutput struct {
	ComparisonID    string             `json:"comparison_id"`
	Differences     []DifferenceOutput `json:"differences"`
	SimilarityScore float64            `json:"similarity_score"`
	Summary         string             `json:"summary,omitempty"`
	SemanticNote    string             `json:"semantic_note,omitempty"`
}

// DifferenceOutput represents a single difference.
type DifferenceOutput struct {
	Type            string  `json:"type"`
	OriginalContent string  `json:"original_content"`
	ModifiedContent string  `json:"modified_content"`
	Importance      string  `json:"importance,omitempty"`
	Confidence      float64 `json:"confidence,omitempty"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput represents a single stored document.
type DocumentOutput struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	Type       string `json:"type"`
	Size       int64  `json:"size"`
	UploadTime string `json:"upload_time"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compare_documents",
		Description: "Queue a comparison between two stored contract documents",
	}, s.handleCompare)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_comparison_status",
		Description: "Check the progress of a queued or running comparison",
	}, s.handleStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_comparison_result",
		Description: "Fetch the result of a completed comparison",
	}, s.handleResult)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List all stored contract documents",
	}, s.handleListDocuments)
}

// handleCompare handles the compare_documents tool invocation.
func (s *Server) handleCompare(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CompareInput,
) (*mcp.CallToolResult, CompareOutput, error) {
	level := domain.ComparisonLevel(input.Level)
	if input.Level == "" {
		level = domain.LevelAI
	}

	cmp, err := s.ports.Comparison.Create(ctx, input.OriginalDocumentID, input.ModifiedDocumentID, level)
	if err != nil {
		return nil, CompareOutput{}, err
	}

	return nil, CompareOutput{
		ComparisonID: cmp.ID,
		Status:       string(cmp.State),
		Level:        string(cmp.Level),
	}, nil
}

// handleStatus handles the get_comparison_status tool invocation.
func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	cmp, err := s.ports.Comparison.Status(ctx, input.ComparisonID)
	if err != nil {
		return nil, StatusOutput{}, err
	}

	return nil, StatusOutput{
		ComparisonID: cmp.ID,
		Status:       string(cmp.State),
		Progress:     cmp.Progress,
		Message:      cmp.Message,
	}, nil
}

// handleResult handles the get_comparison_result tool invocation.
func (s *Server) handleResult(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResultInput,
) (*mcp.CallToolResult, ResultOutput, error) {
	result, err := s.ports.Comparison.Result(ctx, input.ComparisonID)
	if err != nil {
		return nil, ResultOutput{}, err
	}

	output := ResultOutput{
		ComparisonID:    input.ComparisonID,
		Differences:     make([]DifferenceOutput, len(result.Differences)),
		SimilarityScore: result.SimilarityScore,
		SemanticNote:    result.SemanticNote,
	}
	if result.Summary != nil {
		output.Summary = result.Summary.Text
	}

	for i := range result.Differences {
		d := &result.Differences[i]
		output.Differences[i] = DifferenceOutput{
			Type:            string(d.Type),
			OriginalContent: d.OriginalContent,
			ModifiedContent: d.ModifiedContent,
			Importance:      string(d.Importance),
			Confidence:      d.Confidence,
		}
	}

	return nil, output, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}

	for i := range docs {
		output.Documents[i] = DocumentOutput{
			ID:         docs[i].ID,
			Filename:   docs[i].Filename,
			Type:       string(docs[i].Type),
			Size:       docs[i].Size,
			UploadTime: docs[i].CreatedAt.Format(time.RFC3339),
		}
	}

	return nil, output, nil
}
