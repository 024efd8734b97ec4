package diffkit

import (
	"strings"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

// minRunTextLength filters out punctuation-only and single-character
// runs before comparison.
const minRunTextLength = 2

// CompareFormatting compares two formatting run lists keyed by
// normalised run text. Runs present on only one side become added or
// removed; runs with identical text but differing attributes become
// changed entries listing each attribute delta.
func CompareFormatting(original, modified []domain.FormattingRun) domain.FormattingDiff {
	idx1 := indexRuns(original)
	idx2 := indexRuns(modified)

	var diff domain.FormattingDiff

	for text, run2 := range idx2 {
		run1, ok := idx1[text]
		if !ok {
			diff.Added = append(diff.Added, run2)
			continue
		}
		if fields := runFieldChanges(run1, run2); len(fields) > 0 {
			diff.Changed = append(diff.Changed, domain.FormattingChange{
				Text:   text,
				Fields: fields,
			})
		}
	}

	for text, run1 := range idx1 {
		if _, ok := idx2[text]; !ok {
			diff.Removed = append(diff.Removed, run1)
		}
	}

	return diff
}

// indexRuns keys runs by trimmed text. Later duplicates win, matching
// a last-write index over the document order.
func indexRuns(runs []domain.FormattingRun) map[string]domain.FormattingRun {
	idx := make(map[string]domain.FormattingRun, len(runs))
	for _, run := range runs {
		text := strings.TrimSpace(run.Text)
		if len(text) < minRunTextLength {
			continue
		}
		idx[text] = run
	}
	return idx
}

// runFieldChanges compares the formatting attributes of two runs with
// the same text. Page numbers and OCR provenance are not formatting.
func runFieldChanges(a, b domain.FormattingRun) map[string]domain.FieldChange {
	fields := make(map[string]domain.FieldChange)

	if a.FontName != b.FontName {
		fields["font_name"] = domain.FieldChange{Original: a.FontName, Modified: b.FontName}
	}
	if a.FontSize != b.FontSize {
		fields["font_size"] = domain.FieldChange{Original: a.FontSize, Modified: b.FontSize}
	}
	if !boolPtrEqual(a.Bold, b.Bold) {
		fields["bold"] = domain.FieldChange{Original: boolPtrValue(a.Bold), Modified: boolPtrValue(b.Bold)}
	}
	if !boolPtrEqual(a.Italic, b.Italic) {
		fields["italic"] = domain.FieldChange{Original: boolPtrValue(a.Italic), Modified: boolPtrValue(b.Italic)}
	}
	if a.Alignment != b.Alignment {
		fields["alignment"] = domain.FieldChange{Original: a.Alignment, Modified: b.Alignment}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func boolPtrValue(p *bool) any {
	if p == nil {
		return nil
	}
	return *p
}

// FormatChangeDifferences converts changed formatting runs into
// format_change differences for the merged difference list.
func FormatChangeDifferences(diff domain.FormattingDiff) []domain.Difference {
	var out []domain.Difference
	for _, change := range diff.Changed {
		meta := make(map[string]any, len(change.Fields))
		for field, fc := range change.Fields {
			meta[field] = map[string]any{"original": fc.Original, "modified": fc.Modified}
		}
		out = append(out, domain.Difference{
			Type:            domain.DifferenceFormatChange,
			Location:        map[string]any{"text": change.Text},
			OriginalContent: change.Text,
			ModifiedContent: change.Text,
			Metadata:        meta,
		})
	}
	return out
}
