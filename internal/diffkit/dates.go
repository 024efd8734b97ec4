package diffkit

import (
	"regexp"
	"sort"
	"time"

	"github.com/araddon/dateparse"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

// Candidate date patterns. Matches are handed to dateparse for actual
// parsing, so the patterns only need to be generous, not exact.
var datePatterns = []*regexp.Regexp{
	// January 2, 2006 / Jan 2 2006 / January 2nd, 2006
	regexp.MustCompile(`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b`),
	// 2 January 2006
	regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?,?\s+\d{4}\b`),
	// 2006-01-02
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	// 01/02/2006, 1/2/06
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
	// 01.02.2006
	regexp.MustCompile(`\b\d{1,2}\.\d{1,2}\.\d{4}\b`),
}

var ordinalSuffix = regexp.MustCompile(`(?i)(\d{1,2})(st|nd|rd|th)`)

// ExtractDates finds date references in text and parses them.
// Unparseable candidates are skipped.
func ExtractDates(text string) []time.Time {
	seen := make(map[string]bool)
	var dates []time.Time

	for _, pattern := range datePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			cleaned := ordinalSuffix.ReplaceAllString(match, "$1")
			t, err := dateparse.ParseAny(cleaned)
			if err != nil {
				continue
			}
			day := t.Format("2006-01-02")
			if seen[day] {
				continue
			}
			seen[day] = true
			dates = append(dates, t)
		}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// CompareDates set-compares the date references of two documents.
// Output dates are ISO-8601 day strings, sorted ascending.
func CompareDates(original, modified []time.Time) domain.DateFindings {
	set1 := dateSet(original)
	set2 := dateSet(modified)

	findings := domain.DateFindings{}
	for day := range set2 {
		if !set1[day] {
			findings.Added = append(findings.Added, day)
		}
	}
	for day := range set1 {
		if !set2[day] {
			findings.Removed = append(findings.Removed, day)
		} else {
			findings.Common = append(findings.Common, day)
		}
	}

	sort.Strings(findings.Added)
	sort.Strings(findings.Removed)
	sort.Strings(findings.Common)
	return findings
}

// CompareDateReferences extracts and compares date references in one step.
func CompareDateReferences(originalText, modifiedText string) domain.DateFindings {
	return CompareDates(ExtractDates(originalText), ExtractDates(modifiedText))
}

func dateSet(dates []time.Time) map[string]bool {
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d.Format("2006-01-02")] = true
	}
	return set
}
