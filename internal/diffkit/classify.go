package diffkit

import (
	"fmt"
	"math"
	"strings"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

// legalTerms are contract terms whose appearance or disappearance in a
// change marks it high importance regardless of textual similarity.
var legalTerms = []string{
	"shall",
	"must",
	"will not",
	"required",
	"payment",
	"terminate",
	"warranty",
	"liability",
	"damages",
	"agree",
	"obligation",
}

// Classification thresholds (overridable via CompareSettings).
const (
	// DefaultHighThreshold marks changes below this similarity as high importance.
	DefaultHighThreshold = 0.6

	// DefaultMediumThreshold marks changes below this similarity as medium importance.
	DefaultMediumThreshold = 0.85
)

// ClassifyImportance assigns an importance level to a change based on
// legal term presence and pairwise similarity. A legal term appearing
// on only one side of the change is always high importance.
func ClassifyImportance(original, modified string, similarity, highThreshold, mediumThreshold float64) domain.Importance {
	if highThreshold <= 0 {
		highThreshold = DefaultHighThreshold
	}
	if mediumThreshold <= 0 {
		mediumThreshold = DefaultMediumThreshold
	}

	originalHas := containsLegalTerm(original)
	modifiedHas := containsLegalTerm(modified)
	if originalHas != modifiedHas {
		return domain.ImportanceHigh
	}

	switch {
	case similarity < highThreshold:
		return domain.ImportanceHigh
	case similarity < mediumThreshold:
		return domain.ImportanceMedium
	default:
		return domain.ImportanceLow
	}
}

// Confidence derives a classification confidence from pairwise
// similarity, rounded to 4 decimal places.
func Confidence(similarity float64) float64 {
	c := 1.0 - similarity
	if c < 0 {
		c = 0
	}
	return math.Round(c*10000) / 10000
}

func containsLegalTerm(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range legalTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// BuildSummary aggregates differences into a Summary with the
// deterministic count-based text.
func BuildSummary(diffs []domain.Difference) domain.Summary {
	s := domain.Summary{Total: len(diffs)}

	for _, d := range diffs {
		switch d.Type {
		case domain.DifferenceAddition:
			s.Additions++
		case domain.DifferenceDeletion:
			s.Deletions++
		case domain.DifferenceModification:
			s.Modifications++
		}
		switch d.Importance {
		case domain.ImportanceHigh:
			s.High++
		case domain.ImportanceMedium:
			s.Medium++
		case domain.ImportanceLow:
			s.Low++
		}
	}

	text := fmt.Sprintf("Found %d differences: %d additions, %d deletions, and %d modifications. ",
		s.Total, s.Additions, s.Deletions, s.Modifications)
	if s.High > 0 || s.Medium > 0 || s.Low > 0 {
		text += fmt.Sprintf("%d high importance, %d medium importance, and %d low importance changes.",
			s.High, s.Medium, s.Low)
	}
	s.Text = strings.TrimSpace(text)

	return s
}
