package diffkit

import (
	"strings"
	"unicode"
)

// Abbreviations that end with a period but do not terminate a sentence.
var abbreviations = map[string]bool{
	"mr":   true,
	"mrs":  true,
	"ms":   true,
	"dr":   true,
	"prof": true,
	"inc":  true,
	"ltd":  true,
	"co":   true,
	"corp": true,
	"no":   true,
	"vs":   true,
	"etc":  true,
	"e.g":  true,
	"i.e":  true,
	"sec":  true,
	"para": true,
}

// SplitSentences tokenises text into sentences. A sentence ends at
// '.', '!' or '?' followed by whitespace and an upper-case letter, a
// digit, or end of text, unless the preceding word is a known
// abbreviation. Blank-line paragraph breaks always split.
func SplitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)

		// Paragraph break
		if r == '\n' && i+1 < len(runes) && runes[i+1] == '\n' {
			flush()
			continue
		}

		if r != '.' && r != '!' && r != '?' {
			continue
		}

		if r == '.' && isAbbreviation(current.String()) {
			continue
		}

		// Look ahead past whitespace
		j := i + 1
		for j < len(runes) && (runes[j] == ' ' || runes[j] == '\t' || runes[j] == '\n') {
			j++
		}
		if j >= len(runes) {
			flush()
			continue
		}
		if j > i+1 && (unicode.IsUpper(runes[j]) || unicode.IsDigit(runes[j])) {
			flush()
		}
	}
	flush()

	return sentences
}

// isAbbreviation reports whether the text ends in a known abbreviation
// followed by the period just written.
func isAbbreviation(s string) bool {
	s = strings.TrimSuffix(s, ".")
	idx := strings.LastIndexFunc(s, func(r rune) bool {
		return r == ' ' || r == '\n' || r == '\t'
	})
	word := strings.ToLower(s[idx+1:])
	return abbreviations[word]
}
