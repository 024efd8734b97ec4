package driven

import "context"

// CommandRunner executes an external command and returns its combined
// stdout. Normalisers use it to shell out to extraction tools
// (pdftotext, pdftoppm, tesseract) and tests substitute a mock.
type CommandRunner interface {
	// Run executes the named command with arguments and returns stdout.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
