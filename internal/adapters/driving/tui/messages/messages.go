// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/clauseworks/pactdiff/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewDocuments lists stored documents.
	ViewDocuments
	// ViewComparisons lists comparisons and their states.
	ViewComparisons
	// ViewResult shows a completed comparison result.
	ViewResult
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewDocuments:
		return "documents"
	case ViewComparisons:
		return "comparisons"
	case ViewResult:
		return "result"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentsLoaded carries the list of stored documents.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// ComparisonsLoaded carries the list of comparisons.
type ComparisonsLoaded struct {
	Comparisons []domain.Comparison
	Err         error
}

// ComparisonQueued signals a comparison was created.
type ComparisonQueued struct {
	Comparison *domain.Comparison
	Err        error
}

// ComparisonSelected signals a comparison was selected for the result view.
type ComparisonSelected struct {
	Comparison domain.Comparison
}

// ResultLoaded carries a completed comparison result.
type ResultLoaded struct {
	ComparisonID string
	Result       *domain.Result
	Err          error
}
