// Package report renders completed comparisons as self-contained HTML
// documents for sharing outside the API and TUI.
package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

//go:embed report.html.tmpl
var reportTemplate string

// Data is everything the report template needs.
type Data struct {
	Comparison  *domain.Comparison
	Original    *domain.Document
	Modified    *domain.Document
	GeneratedAt time.Time
}

// Renderer writes HTML comparison reports.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded report template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"percent": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v*100)
		},
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
	}).Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the HTML report for a completed comparison.
// Returns ErrComparisonIncomplete when no result is available.
func (r *Renderer) Render(w io.Writer, data Data) error {
	if data.Comparison == nil || data.Comparison.Result == nil {
		return domain.ErrComparisonIncomplete
	}
	if data.GeneratedAt.IsZero() {
		data.GeneratedAt = time.Now()
	}
	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
