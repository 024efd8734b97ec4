package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// DocumentType classifies an uploaded document by its source format.
type DocumentType string

// Supported document types.
const (
	// DocumentTypePDF is a PDF document (native or scanned).
	DocumentTypePDF DocumentType = "pdf"

	// DocumentTypeDOCX is a Word document.
	DocumentTypeDOCX DocumentType = "docx"

	// DocumentTypeImage is a raster image (png, jpeg).
	DocumentTypeImage DocumentType = "image"

	// DocumentTypeText is plain text or markdown.
	DocumentTypeText DocumentType = "text"
)

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypePDF, DocumentTypeDOCX, DocumentTypeImage, DocumentTypeText:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// extensionTypes maps file extensions to document types.
var extensionTypes = map[string]DocumentType{
	".pdf":  DocumentTypePDF,
	".docx": DocumentTypeDOCX,
	".doc":  DocumentTypeDOCX,
	".png":  DocumentTypeImage,
	".jpg":  DocumentTypeImage,
	".jpeg": DocumentTypeImage,
	".txt":  DocumentTypeText,
	".md":   DocumentTypeText,
	".text": DocumentTypeText,
}

// DocumentTypeForFilename returns the document type for a filename based on
// its extension. The second return value is false for unsupported extensions.
func DocumentTypeForFilename(filename string) (DocumentType, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	t, ok := extensionTypes[ext]
	return t, ok
}

// SupportedExtensions returns the accepted upload extensions, sorted.
func SupportedExtensions() []string {
	return []string{".doc", ".docx", ".jpeg", ".jpg", ".md", ".pdf", ".png", ".txt"}
}

// FormattingRun describes the formatting of a contiguous run of text.
// For DOCX documents this comes from run properties; for PDFs and scans
// it is approximated from glyph metrics or OCR bounding boxes.
type FormattingRun struct {
	// Text is the run content, used as the comparison key.
	Text string

	// FontName is the font family, when known.
	FontName string

	// FontSize is the size in points. Zero when unknown.
	FontSize float64

	// Bold and Italic are nil when the run inherits the style default.
	Bold   *bool
	Italic *bool

	// Alignment is the paragraph alignment (left, center, right, justify).
	Alignment string

	// Page is the 1-based page number for paginated formats.
	Page int

	// ApproxFromOCR marks runs whose attributes were inferred from OCR
	// bounding boxes rather than read from the file.
	ApproxFromOCR bool
}

// Document is the canonical representation of an uploaded contract
// document after normalisation.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the original upload filename.
	Filename string

	// URI is the original location (file path, inbox path, etc).
	URI string

	// Type classifies the source format.
	Type DocumentType

	// MIMEType is the detected content type.
	MIMEType string

	// Size is the raw content size in bytes.
	Size int64

	// Content is the full extracted text after normalisation.
	Content string

	// Formatting holds the formatting runs extracted alongside the text.
	Formatting []FormattingRun

	// Metadata contains arbitrary key-value pairs (image dimensions,
	// perceptual hash, OCR flags, etc).
	Metadata map[string]any

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the document was last updated.
	UpdatedAt time.Time
}

// Chunk represents a unit of document text used for semantic comparison.
// Documents are split into sentence-aligned chunks before embedding.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation for semantic comparison.
	Embedding []float32

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any
}
