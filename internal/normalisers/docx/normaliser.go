package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles DOCX documents.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/msword",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser
}

// Normalise converts a DOCX document to a normalised document.
// Besides the plain text it extracts per-run formatting (font, size,
// bold, italic, paragraph alignment) used for format-change detection.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	// Open as ZIP archive
	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	// Extract text and formatting runs from document.xml
	content, runs, err := extractDocument(reader)
	if err != nil {
		return nil, err
	}

	doc := domain.Document{
		ID:         uuid.New().String(),
		Filename:   raw.Filename,
		URI:        raw.URI,
		Type:       domain.DocumentTypeDOCX,
		MIMEType:   raw.MIMEType,
		Size:       int64(len(raw.Content)),
		Content:    content,
		Formatting: runs,
		Metadata:   copyMetadata(raw.Metadata),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata["format"] = "docx"
	if title := extractTitle(reader); title != "" {
		doc.Metadata["title"] = title
	}

	return &driven.NormaliseResult{Document: doc}, nil
}

// extractDocument extracts text and formatting from word/document.xml.
func extractDocument(reader *zip.Reader) (string, []domain.FormattingRun, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", nil, domain.ErrInvalidInput
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", nil, domain.ErrInvalidInput
		}

		text, runs := parseDocumentXML(content)
		return text, runs, nil
	}
	return "", nil, nil
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Properties *paragraphProperties `xml:"pPr"`
	Runs       []run                `xml:"r"`
}

type paragraphProperties struct {
	Justification *valElement `xml:"jc"`
}

type run struct {
	Properties *runProperties `xml:"rPr"`
	Text       []textElement  `xml:"t"`
}

type runProperties struct {
	Bold   *toggleElement `xml:"b"`
	Italic *toggleElement `xml:"i"`
	Size   *valElement    `xml:"sz"`
	Fonts  *fontsElement  `xml:"rFonts"`
}

// toggleElement models OOXML toggle properties where the bare element
// means true and val="0"/"false" means false.
type toggleElement struct {
	Val string `xml:"val,attr"`
}

func (t *toggleElement) enabled() *bool {
	if t == nil {
		return nil
	}
	v := t.Val != "0" && !strings.EqualFold(t.Val, "false")
	return &v
}

type valElement struct {
	Val string `xml:"val,attr"`
}

type fontsElement struct {
	ASCII string `xml:"ascii,attr"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML extracts text content and formatting runs.
func parseDocumentXML(content []byte) (string, []domain.FormattingRun) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", nil
	}

	var text strings.Builder
	var runs []domain.FormattingRun

	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			text.WriteString("\n")
		}

		alignment := ""
		if para.Properties != nil && para.Properties.Justification != nil {
			alignment = para.Properties.Justification.Val
		}

		for _, r := range para.Runs {
			var runText strings.Builder
			for _, t := range r.Text {
				runText.WriteString(t.Content)
			}
			text.WriteString(runText.String())

			if strings.TrimSpace(runText.String()) == "" {
				continue
			}

			fr := domain.FormattingRun{
				Text:      runText.String(),
				Alignment: alignment,
			}
			if r.Properties != nil {
				fr.Bold = r.Properties.Bold.enabled()
				fr.Italic = r.Properties.Italic.enabled()
				if r.Properties.Fonts != nil {
					fr.FontName = r.Properties.Fonts.ASCII
				}
				// sz is in half-points
				if r.Properties.Size != nil {
					if half, err := strconv.ParseFloat(r.Properties.Size.Val, 64); err == nil {
						fr.FontSize = half / 2
					}
				}
			}
			runs = append(runs, fr)
		}
	}

	return strings.TrimSpace(text.String()), runs
}

// coreXML represents the structure of docProps/core.xml.
type coreXML struct {
	Title string `xml:"title"`
}

// extractTitle extracts the title from docProps/core.xml, if present.
func extractTitle(reader *zip.Reader) string {
	for _, file := range reader.File {
		if file.Name != "docProps/core.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			break
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			break
		}

		var core coreXML
		if err := xml.Unmarshal(content, &core); err == nil {
			return strings.TrimSpace(core.Title)
		}
		break
	}
	return ""
}

// copyMetadata creates a shallow copy of metadata.
func copyMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
