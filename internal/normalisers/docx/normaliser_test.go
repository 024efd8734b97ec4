package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

// createTestDOCX creates a minimal valid DOCX file in memory.
func createTestDOCX(documentXML, coreXML string) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	// Add [Content_Types].xml (required for valid DOCX)
	contentTypes, _ := w.Create("[Content_Types].xml")
	contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))

	if documentXML != "" {
		doc, _ := w.Create("word/document.xml")
		doc.Write([]byte(documentXML))
	}

	if coreXML != "" {
		core, _ := w.Create("docProps/core.xml")
		core.Write([]byte(coreXML))
	}

	w.Close()
	return buf.Bytes()
}

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
}

func TestSupportedMIMETypes(t *testing.T) {
	mimeTypes := New().SupportedMIMETypes()
	assert.Contains(t, mimeTypes, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	assert.Contains(t, mimeTypes, "application/msword")
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_InvalidZip(t *testing.T) {
	raw := &domain.RawDocument{
		Filename: "invalid.docx",
		MIMEType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Content:  []byte("not a zip file"),
	}

	result, err := New().Normalise(context.Background(), raw)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_Success(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>The parties agree as follows.</w:t></w:r></w:p>
</w:body>
</w:document>`

	coreXML := `<?xml version="1.0" encoding="UTF-8"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
xmlns:dc="http://purl.org/dc/elements/1.1/">
<dc:title>Service Agreement</dc:title>
</cp:coreProperties>`

	raw := &domain.RawDocument{
		Filename: "agreement.docx",
		URI:      "/uploads/agreement.docx",
		MIMEType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Content:  createTestDOCX(docXML, coreXML),
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, result)

	doc := result.Document
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "agreement.docx", doc.Filename)
	assert.Equal(t, domain.DocumentTypeDOCX, doc.Type)
	assert.Equal(t, "The parties agree as follows.", doc.Content)
	assert.Equal(t, "docx", doc.Metadata["format"])
	assert.Equal(t, "Service Agreement", doc.Metadata["title"])
}

func TestNormalise_MultipleParagraphs(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>First clause</w:t></w:r></w:p>
<w:p><w:r><w:t>Second clause</w:t></w:r></w:p>
</w:body>
</w:document>`

	raw := &domain.RawDocument{
		Filename: "doc.docx",
		MIMEType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Content:  createTestDOCX(docXML, ""),
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "First clause\nSecond clause", result.Document.Content)
}

func TestNormalise_FormattingRuns(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p>
<w:pPr><w:jc w:val="center"/></w:pPr>
<w:r>
<w:rPr><w:b/><w:sz w:val="28"/><w:rFonts w:ascii="Times New Roman"/></w:rPr>
<w:t>SERVICE AGREEMENT</w:t>
</w:r>
</w:p>
<w:p>
<w:r>
<w:rPr><w:i/><w:b w:val="0"/></w:rPr>
<w:t>Effective date</w:t>
</w:r>
</w:p>
</w:body>
</w:document>`

	raw := &domain.RawDocument{
		Filename: "doc.docx",
		MIMEType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Content:  createTestDOCX(docXML, ""),
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, result.Document.Formatting, 2)

	heading := result.Document.Formatting[0]
	assert.Equal(t, "SERVICE AGREEMENT", heading.Text)
	require.NotNil(t, heading.Bold)
	assert.True(t, *heading.Bold)
	assert.Nil(t, heading.Italic)
	assert.Equal(t, 14.0, heading.FontSize) // sz is half-points
	assert.Equal(t, "Times New Roman", heading.FontName)
	assert.Equal(t, "center", heading.Alignment)

	body := result.Document.Formatting[1]
	assert.Equal(t, "Effective date", body.Text)
	require.NotNil(t, body.Bold)
	assert.False(t, *body.Bold) // explicit w:b w:val="0"
	require.NotNil(t, body.Italic)
	assert.True(t, *body.Italic)
	assert.Zero(t, body.FontSize)
}

func TestNormalise_EmptyDocument(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
</w:body>
</w:document>`

	raw := &domain.RawDocument{
		Filename: "empty.docx",
		MIMEType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Content:  createTestDOCX(docXML, ""),
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Empty(t, result.Document.Content)
	assert.Empty(t, result.Document.Formatting)
}

func TestNormalise_MetadataPreserved(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:r><w:t>Test</w:t></w:r></w:p></w:body>
</w:document>`

	raw := &domain.RawDocument{
		Filename: "doc.docx",
		MIMEType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Content:  createTestDOCX(docXML, ""),
		Metadata: map[string]any{"source": "inbox"},
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "inbox", result.Document.Metadata["source"])
	assert.Equal(t, "docx", result.Document.Metadata["format"])
}

func BenchmarkNormalise(b *testing.B) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>The parties agree as follows.</w:t></w:r></w:p>
</w:body>
</w:document>`

	raw := &domain.RawDocument{
		Filename: "doc.docx",
		MIMEType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Content:  createTestDOCX(docXML, ""),
	}

	normaliser := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = normaliser.Normalise(context.Background(), raw)
	}
}
