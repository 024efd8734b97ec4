// Package shell provides the exec-backed CommandRunner used by
// normalisers that shell out to extraction tools.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driven"
)

// Ensure Runner implements the interface.
var _ driven.CommandRunner = (*Runner)(nil)

// Runner executes external commands with os/exec.
type Runner struct{}

// New creates a new exec-backed runner.
func New() *Runner {
	return &Runner{}
}

// Run executes the named command and returns its stdout.
// A missing binary maps to domain.ErrExtractorUnavailable so callers
// can degrade gracefully instead of failing the whole request.
func (r *Runner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s not installed", domain.ErrExtractorUnavailable, name)
		}
		return nil, fmt.Errorf("%s: %w: %s", name, err, stderr.String())
	}

	return stdout.Bytes(), nil
}
