package diffkit

import (
	"math"
	"strings"
)

// Cosine returns the cosine similarity of two embedding vectors.
// Mismatched or empty vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Jaccard returns the word-set overlap of two texts in [0,1].
// It is the fallback similarity measure when no embedding service is
// configured.
func Jaccard(text1, text2 string) float64 {
	set1 := wordSet(text1)
	set2 := wordSet(text2)

	if len(set1) == 0 && len(set2) == 0 {
		return 0
	}

	intersection := 0
	for w := range set1 {
		if set2[w] {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = true
	}
	return set
}
