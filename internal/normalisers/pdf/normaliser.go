package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driven"
	"github.com/clauseworks/pactdiff/internal/normalisers/shell"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF documents via the poppler tools. Text is
// extracted with pdftotext; scanned PDFs with no text layer fall back
// to rasterising pages with pdftoppm and running tesseract over them.
type Normaliser struct {
	runner driven.CommandRunner
}

// New creates a new PDF normaliser using the exec-backed runner.
func New() *Normaliser {
	return NewWithRunner(shell.New())
}

// NewWithRunner creates a PDF normaliser with a custom command runner.
func NewWithRunner(runner driven.CommandRunner) *Normaliser {
	return &Normaliser{runner: runner}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser
}

// InstallInstructions returns guidance for installing the PDF tools.
func InstallInstructions() string {
	return `PDF extraction requires pdftotext from poppler:
  macOS:  brew install poppler
  Debian: apt install poppler-utils
Scanned PDFs additionally need tesseract:
  macOS:  brew install tesseract
  Debian: apt install tesseract-ocr`
}

// Normalise converts a PDF document to a normalised document.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	// pdftotext and pdftoppm read from files, not stdin
	tmpDir, err := os.MkdirTemp("", "pactdiff-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, raw.Content, 0o600); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	out, err := n.runner.Run(ctx, "pdftotext", "-layout", pdfPath, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}

	content := strings.TrimSpace(string(out))
	usedOCR := false

	// No text layer means a scanned PDF. Rasterise and OCR.
	if content == "" {
		content, err = n.ocrPages(ctx, tmpDir, pdfPath)
		if err != nil {
			return nil, err
		}
		usedOCR = content != ""
	}

	doc := domain.Document{
		ID:        uuid.New().String(),
		Filename:  raw.Filename,
		URI:       raw.URI,
		Type:      domain.DocumentTypePDF,
		MIMEType:  raw.MIMEType,
		Size:      int64(len(raw.Content)),
		Content:   content,
		Metadata:  copyMetadata(raw.Metadata),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata["format"] = "pdf"
	doc.Metadata["ocr"] = usedOCR

	return &driven.NormaliseResult{Document: doc}, nil
}

// ocrPages rasterises the PDF to PNG pages and runs tesseract on each.
func (n *Normaliser) ocrPages(ctx context.Context, tmpDir, pdfPath string) (string, error) {
	prefix := filepath.Join(tmpDir, "page")
	if _, err := n.runner.Run(ctx, "pdftoppm", "-png", "-r", "200", pdfPath, prefix); err != nil {
		return "", fmt.Errorf("pdftoppm failed: %w", err)
	}

	pages, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return "", err
	}
	sort.Strings(pages)

	var parts []string
	for _, page := range pages {
		out, err := n.runner.Run(ctx, "tesseract", page, "stdout")
		if err != nil {
			return "", fmt.Errorf("tesseract failed: %w", err)
		}
		if text := strings.TrimSpace(string(out)); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n\n"), nil
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
