package httpapi

import (
	"time"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

// uploadResponse is returned after a successful document upload.
type uploadResponse struct {
	FileID       string    `json:"file_id"`
	Filename     string    `json:"filename"`
	DocumentType string    `json:"document_type"`
	UploadTime   time.Time `json:"upload_time"`
	Status       string    `json:"status"`
}

// documentResponse describes a stored document.
type documentResponse struct {
	FileID       string    `json:"file_id"`
	Filename     string    `json:"filename"`
	DocumentType string    `json:"document_type"`
	MIMEType     string    `json:"mime_type,omitempty"`
	Size         int64     `json:"size"`
	UploadTime   time.Time `json:"upload_time"`
}

func toDocumentResponse(doc *domain.Document) documentResponse {
	return documentResponse{
		FileID:       doc.ID,
		Filename:     doc.Filename,
		DocumentType: string(doc.Type),
		MIMEType:     doc.MIMEType,
		Size:         doc.Size,
		UploadTime:   doc.CreatedAt,
	}
}

// comparisonRequest is the body for POST /api/v1/comparison.
type comparisonRequest struct {
	OriginalDocumentID string `json:"original_document_id"`
	ModifiedDocumentID string `json:"modified_document_id"`
	ComparisonLevel    string `json:"comparison_level"`
}

// comparisonStatusResponse reports the lifecycle state of a comparison.
type comparisonStatusResponse struct {
	ComparisonID       string     `json:"comparison_id"`
	OriginalDocumentID string     `json:"original_document_id"`
	ModifiedDocumentID string     `json:"modified_document_id"`
	ComparisonLevel    string     `json:"comparison_level"`
	Status             string     `json:"status"`
	Progress           float64    `json:"progress"`
	Message            string     `json:"message,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

func toStatusResponse(cmp *domain.Comparison) comparisonStatusResponse {
	return comparisonStatusResponse{
		ComparisonID:       cmp.ID,
		OriginalDocumentID: cmp.OriginalDocumentID,
		ModifiedDocumentID: cmp.ModifiedDocumentID,
		ComparisonLevel:    string(cmp.Level),
		Status:             string(cmp.State),
		Progress:           cmp.Progress,
		Message:            cmp.Message,
		CreatedAt:          cmp.CreatedAt,
		CompletedAt:        cmp.CompletedAt,
	}
}

// differencePayload is one difference in a result response.
type differencePayload struct {
	Type            string         `json:"type"`
	Location        map[string]any `json:"location,omitempty"`
	OriginalContent string         `json:"original_content"`
	ModifiedContent string         `json:"modified_content"`
	Importance      string         `json:"importance,omitempty"`
	Confidence      float64        `json:"confidence,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// semanticPayload is one semantic finding in a result response.
type semanticPayload struct {
	OriginalSentence string  `json:"original_sentence"`
	MatchedSentence  string  `json:"matched_sentence"`
	Similarity       float64 `json:"similarity"`
	Note             string  `json:"note,omitempty"`
}

// datesPayload reports date references added, removed or common.
type datesPayload struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
	Common  []string `json:"common"`
}

// visualPayload reports perceptual image comparison.
type visualPayload struct {
	Applicable bool     `json:"applicable"`
	Similarity float64  `json:"similarity"`
	Distance   int      `json:"distance"`
	Notes      []string `json:"notes,omitempty"`
}

// grammarPayload is one grammar issue.
type grammarPayload struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
	Offset      int      `json:"offset"`
	Length      int      `json:"length"`
	Context     string   `json:"context,omitempty"`
}

// summaryPayload aggregates a result.
type summaryPayload struct {
	Text          string `json:"text"`
	Total         int    `json:"total"`
	Additions     int    `json:"additions"`
	Deletions     int    `json:"deletions"`
	Modifications int    `json:"modifications"`
	High          int    `json:"high"`
	Medium        int    `json:"medium"`
	Low           int    `json:"low"`
}

// resultResponse is the full output of a completed comparison.
type resultResponse struct {
	ComparisonID    string              `json:"comparison_id"`
	Differences     []differencePayload `json:"differences"`
	UnifiedDiff     string              `json:"unified_diff"`
	SimilarityScore float64             `json:"similarity_score"`
	Semantic        []semanticPayload   `json:"semantic_findings,omitempty"`
	SemanticNote    string              `json:"semantic_note,omitempty"`
	Dates           *datesPayload       `json:"date_findings,omitempty"`
	Visual          *visualPayload      `json:"visual_comparison,omitempty"`
	GrammarOriginal []grammarPayload    `json:"grammar_original,omitempty"`
	GrammarModified []grammarPayload    `json:"grammar_modified,omitempty"`
	Summary         *summaryPayload     `json:"summary,omitempty"`
}

func toResultResponse(id string, result *domain.Result) resultResponse {
	resp := resultResponse{
		ComparisonID:    id,
		Differences:     make([]differencePayload, 0, len(result.Differences)),
		UnifiedDiff:     result.UnifiedDiff,
		SimilarityScore: result.SimilarityScore,
		SemanticNote:    result.SemanticNote,
		GrammarOriginal: toGrammarPayloads(result.GrammarOriginal),
		GrammarModified: toGrammarPayloads(result.GrammarModified),
	}

	for _, d := range result.Differences {
		resp.Differences = append(resp.Differences, differencePayload{
			Type:            string(d.Type),
			Location:        d.Location,
			OriginalContent: d.OriginalContent,
			ModifiedContent: d.ModifiedContent,
			Importance:      string(d.Importance),
			Confidence:      d.Confidence,
			Metadata:        d.Metadata,
		})
	}

	for _, s := range result.Semantic {
		resp.Semantic = append(resp.Semantic, semanticPayload{
			OriginalSentence: s.OriginalSentence,
			MatchedSentence:  s.MatchedSentence,
			Similarity:       s.Similarity,
			Note:             s.Note,
		})
	}

	if result.Dates != nil {
		resp.Dates = &datesPayload{
			Added:   result.Dates.Added,
			Removed: result.Dates.Removed,
			Common:  result.Dates.Common,
		}
	}

	if result.Visual != nil {
		resp.Visual = &visualPayload{
			Applicable: result.Visual.Applicable,
			Similarity: result.Visual.Similarity,
			Distance:   result.Visual.Distance,
			Notes:      result.Visual.Notes,
		}
	}

	if result.Summary != nil {
		resp.Summary = &summaryPayload{
			Text:          result.Summary.Text,
			Total:         result.Summary.Total,
			Additions:     result.Summary.Additions,
			Deletions:     result.Summary.Deletions,
			Modifications: result.Summary.Modifications,
			High:          result.Summary.High,
			Medium:        result.Summary.Medium,
			Low:           result.Summary.Low,
		}
	}

	return resp
}

func toGrammarPayloads(issues []domain.GrammarIssue) []grammarPayload {
	if len(issues) == 0 {
		return nil
	}
	out := make([]grammarPayload, 0, len(issues))
	for _, i := range issues {
		out = append(out, grammarPayload{
			Message:     i.Message,
			Suggestions: i.Suggestions,
			Offset:      i.Offset,
			Length:      i.Length,
			Context:     i.Context,
		})
	}
	return out
}
