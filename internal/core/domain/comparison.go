package domain

import "time"

// DifferenceType classifies a single difference between two documents.
type DifferenceType string

// Difference types.
const (
	// DifferenceAddition is content present only in the modified document.
	DifferenceAddition DifferenceType = "addition"

	// DifferenceDeletion is content present only in the original document.
	DifferenceDeletion DifferenceType = "deletion"

	// DifferenceModification is content changed between the documents.
	DifferenceModification DifferenceType = "modification"

	// DifferenceFormatChange is identical text with changed formatting.
	DifferenceFormatChange DifferenceType = "format_change"

	// DifferenceVisualChange is a change detected by visual comparison.
	DifferenceVisualChange DifferenceType = "visual_change"
)

// IsValid returns true if the difference type is recognised.
func (t DifferenceType) IsValid() bool {
	switch t {
	case DifferenceAddition, DifferenceDeletion, DifferenceModification,
		DifferenceFormatChange, DifferenceVisualChange:
		return true
	default:
		return false
	}
}

// Importance classifies how significant a difference is for contract review.
type Importance string

// Importance levels.
const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

// Difference is one unit of divergence between the original and
// modified documents.
type Difference struct {
	// Type classifies the difference.
	Type DifferenceType

	// Location identifies where the difference occurs. Keys are
	// format-dependent (word offsets for text diffs, run text for
	// formatting changes).
	Location map[string]any

	// OriginalContent is the affected text in the original document.
	OriginalContent string

	// ModifiedContent is the affected text in the modified document.
	ModifiedContent string

	// Importance is set by the classification stage; empty otherwise.
	Importance Importance

	// Confidence is the classifier's confidence in [0,1]; zero when
	// classification did not run.
	Confidence float64

	// Metadata contains stage-specific key-value pairs.
	Metadata map[string]any
}

// ComparisonLevel selects which pipeline stages run.
type ComparisonLevel string

// Comparison levels.
const (
	// LevelBasic runs the text diff only.
	LevelBasic ComparisonLevel = "basic"

	// LevelDetailed adds formatting, date and visual comparison.
	LevelDetailed ComparisonLevel = "detailed"

	// LevelAI adds semantic diff, grammar check, classification and summary.
	LevelAI ComparisonLevel = "ai"
)

// IsValid returns true if the comparison level is recognised.
func (l ComparisonLevel) IsValid() bool {
	switch l {
	case LevelBasic, LevelDetailed, LevelAI:
		return true
	default:
		return false
	}
}

// IncludesStructural returns true if formatting/date/visual stages run.
func (l ComparisonLevel) IncludesStructural() bool {
	return l == LevelDetailed || l == LevelAI
}

// IncludesAI returns true if semantic, grammar and classification stages run.
func (l ComparisonLevel) IncludesAI() bool {
	return l == LevelAI
}

// String returns the string representation.
func (l ComparisonLevel) String() string {
	return string(l)
}

// ComparisonState is the lifecycle state of a comparison.
type ComparisonState string

// Comparison lifecycle states.
const (
	StateQueued     ComparisonState = "queued"
	StateProcessing ComparisonState = "processing"
	StateCompleted  ComparisonState = "completed"
	StateFailed     ComparisonState = "failed"
)

// IsTerminal returns true if the state is completed or failed.
func (s ComparisonState) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed
}

// SemanticFinding reports an original sentence whose best match in the
// modified document falls below the semantic similarity threshold.
type SemanticFinding struct {
	// OriginalSentence is the sentence from the original document.
	OriginalSentence string

	// MatchedSentence is the closest sentence from the modified document.
	MatchedSentence string

	// Similarity is the cosine similarity of the best match.
	Similarity float64

	// Note is a human-readable annotation ("Meaning may differ").
	Note string
}

// DateFindings reports date references added, removed, or common
// between the two documents. Dates are ISO-8601 strings, sorted.
type DateFindings struct {
	Added   []string
	Removed []string
	Common  []string
}

// FieldChange records one formatting attribute that differs for the
// same run of text.
type FieldChange struct {
	Original any
	Modified any
}

// FormattingChange records a run whose text is unchanged but whose
// formatting attributes differ.
type FormattingChange struct {
	// Text is the run content.
	Text string

	// Fields maps attribute name to its original/modified values.
	Fields map[string]FieldChange
}

// FormattingDiff is the result of comparing formatting runs.
type FormattingDiff struct {
	// Added are runs present only in the modified document.
	Added []FormattingRun

	// Removed are runs present only in the original document.
	Removed []FormattingRun

	// Changed are runs with identical text but different attributes.
	Changed []FormattingChange
}

// VisualFinding is the result of perceptual image comparison.
type VisualFinding struct {
	// Applicable is false when one or both documents have no visual
	// representation; Notes explains why.
	Applicable bool

	// Similarity is 1 - normalised hash distance, in [0,1].
	Similarity float64

	// Distance is the raw perceptual hash Hamming distance.
	Distance int

	// Notes carries explanatory messages.
	Notes []string
}

// GrammarIssue is a single grammar or style problem found in a document.
type GrammarIssue struct {
	// Message describes the issue.
	Message string

	// Suggestions are replacement candidates.
	Suggestions []string

	// Offset and Length locate the issue in the document text.
	Offset int
	Length int

	// Context is the surrounding text.
	Context string
}

// Summary aggregates a comparison result for quick review.
type Summary struct {
	// Text is the human-readable summary, LLM-written when available.
	Text string

	// Counts by difference type.
	Total         int
	Additions     int
	Deletions     int
	Modifications int

	// Counts by importance.
	High   int
	Medium int
	Low    int
}

// Result holds the full output of a completed comparison.
type Result struct {
	// Differences is the structured diff (text, formatting and visual
	// differences merged, classified when the AI stage ran).
	Differences []Difference

	// UnifiedDiff is the line-level unified diff of the two texts.
	UnifiedDiff string

	// Semantic holds sentence-level findings; nil unless the AI stage ran.
	Semantic []SemanticFinding

	// SemanticNote explains why semantic comparison was skipped, if it was.
	SemanticNote string

	// Dates holds date-reference findings; nil for basic level.
	Dates *DateFindings

	// Formatting holds the formatting diff; nil for basic level.
	Formatting *FormattingDiff

	// Visual holds the visual comparison finding; nil for basic level.
	Visual *VisualFinding

	// GrammarOriginal and GrammarModified hold per-document grammar
	// issues; nil unless the AI stage ran with a checker configured.
	GrammarOriginal []GrammarIssue
	GrammarModified []GrammarIssue

	// Summary aggregates the result.
	Summary *Summary

	// SimilarityScore is the overall word-level similarity in [0,1].
	SimilarityScore float64
}

// Comparison tracks one comparison job between two documents.
type Comparison struct {
	// ID is the unique identifier for the comparison.
	ID string

	// OriginalDocumentID and ModifiedDocumentID reference the compared
	// documents.
	OriginalDocumentID string
	ModifiedDocumentID string

	// Level selects the pipeline stages.
	Level ComparisonLevel

	// State is the lifecycle state.
	State ComparisonState

	// Progress is in [0,1].
	Progress float64

	// Message describes the current state for status polling.
	Message string

	// Result is populated when State is completed.
	Result *Result

	// CreatedAt is when the comparison was requested.
	CreatedAt time.Time

	// UpdatedAt is when the comparison last changed state.
	UpdatedAt time.Time

	// CompletedAt is set when the comparison reaches a terminal state.
	CompletedAt *time.Time
}
