package services

import (
	"mime"
	"path/filepath"
	"sort"
	"strings"

	"github.com/clauseworks/pactdiff/internal/core/ports/driven"
)

// NormaliserRegistry selects a normaliser for a document's MIME type.
// When several normalisers claim the same type, the highest priority wins.
type NormaliserRegistry struct {
	byMIME map[string][]driven.Normaliser
}

// NewNormaliserRegistry creates a registry with the given normalisers.
func NewNormaliserRegistry(normalisers ...driven.Normaliser) *NormaliserRegistry {
	r := &NormaliserRegistry{
		byMIME: make(map[string][]driven.Normaliser),
	}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser to the registry.
func (r *NormaliserRegistry) Register(n driven.Normaliser) {
	for _, mimeType := range n.SupportedMIMETypes() {
		key := canonicalMIME(mimeType)
		r.byMIME[key] = append(r.byMIME[key], n)
		sort.SliceStable(r.byMIME[key], func(i, j int) bool {
			return r.byMIME[key][i].Priority() > r.byMIME[key][j].Priority()
		})
	}
}

// ForMIMEType returns the best normaliser for a MIME type, or false
// when no registered normaliser supports it.
func (r *NormaliserRegistry) ForMIMEType(mimeType string) (driven.Normaliser, bool) {
	candidates := r.byMIME[canonicalMIME(mimeType)]
	if len(candidates) == 0 {
		return nil, false
	}
	return candidates[0], true
}

// MIMETypeForFilename guesses a MIME type from a filename extension.
func MIMETypeForFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md":
		// mime.TypeByExtension returns text/markdown on some platforms
		// and nothing on others; pin it.
		return "text/markdown"
	case ".txt", ".text":
		return "text/plain"
	case ".doc":
		return "application/msword"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return canonicalMIME(t)
	}
	return ""
}

// canonicalMIME strips parameters like charset from a MIME type.
func canonicalMIME(mimeType string) string {
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
