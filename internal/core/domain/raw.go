package domain

// RawDocument represents opaque uploaded bytes before normalisation.
// It is the input to the normaliser pipeline.
type RawDocument struct {
	// Filename is the original upload filename.
	Filename string

	// URI is the original location (upload path, inbox path, etc).
	URI string

	// MIMEType is the content type (e.g., "application/pdf").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains caller-specific key-value pairs.
	Metadata map[string]any
}
