package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentType_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		docType  DocumentType
		expected bool
	}{
		{name: "pdf is valid", docType: DocumentTypePDF, expected: true},
		{name: "docx is valid", docType: DocumentTypeDOCX, expected: true},
		{name: "image is valid", docType: DocumentTypeImage, expected: true},
		{name: "text is valid", docType: DocumentTypeText, expected: true},
		{name: "empty string is invalid", docType: DocumentType(""), expected: false},
		{name: "unknown type is invalid", docType: DocumentType("spreadsheet"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.docType.IsValid())
		})
	}
}

func TestDocumentTypeForFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		docType  DocumentType
		ok       bool
	}{
		{name: "pdf extension", filename: "contract.pdf", docType: DocumentTypePDF, ok: true},
		{name: "uppercase extension", filename: "CONTRACT.PDF", docType: DocumentTypePDF, ok: true},
		{name: "docx extension", filename: "contract.docx", docType: DocumentTypeDOCX, ok: true},
		{name: "legacy doc extension", filename: "contract.doc", docType: DocumentTypeDOCX, ok: true},
		{name: "png extension", filename: "scan.png", docType: DocumentTypeImage, ok: true},
		{name: "jpeg extension", filename: "scan.jpeg", docType: DocumentTypeImage, ok: true},
		{name: "txt extension", filename: "contract.txt", docType: DocumentTypeText, ok: true},
		{name: "markdown extension", filename: "contract.md", docType: DocumentTypeText, ok: true},
		{name: "unknown extension", filename: "data.csv", ok: false},
		{name: "no extension", filename: "contract", ok: false},
		{name: "dotfile only", filename: ".pdf", docType: DocumentTypePDF, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docType, ok := DocumentTypeForFilename(tt.filename)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.docType, docType)
			}
		})
	}
}

func TestSupportedExtensions(t *testing.T) {
	exts := SupportedExtensions()

	assert.Contains(t, exts, ".pdf")
	assert.Contains(t, exts, ".docx")
	assert.Contains(t, exts, ".png")
	assert.Contains(t, exts, ".txt")

	// Every advertised extension must map to a valid type
	for _, ext := range exts {
		docType, ok := DocumentTypeForFilename("file" + ext)
		assert.True(t, ok, "extension %s not mapped", ext)
		assert.True(t, docType.IsValid())
	}
}
