package diffkit

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

// Unified diff file labels.
const (
	fromFile = "Document 1"
	toFile   = "Document 2"
)

// UnifiedDiff returns the line-level unified diff between two texts.
func UnifiedDiff(original, modified string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(modified),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// WordDiff compares two texts word by word and returns structured
// differences. Opcode tags map to difference types: replace becomes a
// modification, delete a deletion, insert an addition.
func WordDiff(original, modified string) []domain.Difference {
	words1 := strings.Fields(original)
	words2 := strings.Fields(modified)

	matcher := difflib.NewMatcher(words1, words2)

	var diffs []domain.Difference
	for _, op := range matcher.GetOpCodes() {
		loc := map[string]any{
			"original_offset": op.I1,
			"modified_offset": op.J1,
		}
		switch op.Tag {
		case 'r':
			diffs = append(diffs, domain.Difference{
				Type:            domain.DifferenceModification,
				Location:        loc,
				OriginalContent: strings.Join(words1[op.I1:op.I2], " "),
				ModifiedContent: strings.Join(words2[op.J1:op.J2], " "),
			})
		case 'd':
			diffs = append(diffs, domain.Difference{
				Type:            domain.DifferenceDeletion,
				Location:        loc,
				OriginalContent: strings.Join(words1[op.I1:op.I2], " "),
			})
		case 'i':
			diffs = append(diffs, domain.Difference{
				Type:            domain.DifferenceAddition,
				Location:        loc,
				ModifiedContent: strings.Join(words2[op.J1:op.J2], " "),
			})
		}
	}

	return diffs
}

// SimilarityRatio returns the word-level similarity of two texts in [0,1].
func SimilarityRatio(original, modified string) float64 {
	words1 := strings.Fields(original)
	words2 := strings.Fields(modified)
	if len(words1) == 0 && len(words2) == 0 {
		return 1.0
	}
	return difflib.NewMatcher(words1, words2).Ratio()
}
