package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driven"
	"github.com/clauseworks/pactdiff/internal/diffkit"
	"github.com/clauseworks/pactdiff/internal/normalisers/shell"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles raster images (PNG, JPEG). Text is recovered with
// tesseract OCR and a perception hash is stored in metadata so visual
// comparison can run without re-decoding the source.
type Normaliser struct {
	runner driven.CommandRunner
}

// New creates a new image normaliser using the exec-backed runner.
func New() *Normaliser {
	return NewWithRunner(shell.New())
}

// NewWithRunner creates an image normaliser with a custom command runner.
func NewWithRunner(runner driven.CommandRunner) *Normaliser {
	return &Normaliser{runner: runner}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"image/png", "image/jpeg"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser
}

// Normalise converts an image document to a normalised document.
// OCR failure is not fatal: a scan with no recoverable text still
// supports visual comparison through the perception hash.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	img, format, err := image.Decode(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", domain.ErrInvalidInput, err)
	}

	content, ocrOK := n.ocr(ctx, raw)

	doc := domain.Document{
		ID:        uuid.New().String(),
		Filename:  raw.Filename,
		URI:       raw.URI,
		Type:      domain.DocumentTypeImage,
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
	doc.Metadata["format"] = format
	doc.Metadata["width"] = img.Bounds().Dx()
	doc.Metadata["height"] = img.Bounds().Dy()
	doc.Metadata["ocr"] = ocrOK

	if hash, err := diffkit.PerceptualHash(img); err == nil {
		doc.Metadata["phash"] = fmt.Sprintf("%016x", hash)
	}

	return &driven.NormaliseResult{Document: doc}, nil
}

// ocr runs tesseract over the image and returns the recovered text.
func (n *Normaliser) ocr(ctx context.Context, raw *domain.RawDocument) (string, bool) {
	tmpDir, err := os.MkdirTemp("", "pactdiff-img-*")
	if err != nil {
		return "", false
	}
	defer os.RemoveAll(tmpDir)

	ext := filepath.Ext(raw.Filename)
	if ext == "" {
		ext = ".png"
	}
	imgPath := filepath.Join(tmpDir, "input"+ext)
	if err := os.WriteFile(imgPath, raw.Content, 0o600); err != nil {
		return "", false
	}

	out, err := n.runner.Run(ctx, "tesseract", imgPath, "stdout")
	if err != nil {
		return "", false
	}
	text := strings.TrimSpace(string(out))
	return text, text != ""
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
