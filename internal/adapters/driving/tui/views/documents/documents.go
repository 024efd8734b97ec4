// Package documents provides the stored documents list view for the TUI.
package documents

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clauseworks/pactdiff/internal/adapters/driving/tui/messages"
	"github.com/clauseworks/pactdiff/internal/adapters/driving/tui/styles"
	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driving"
)

// View is the documents list view. Pressing "c" marks the original
// document, pressing it again on another row queues a comparison.
type View struct {
	styles            *styles.Styles
	documentService   driving.DocumentService
	comparisonService driving.ComparisonService

	documents    []domain.Document
	selected     int
	markedID     string
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	scrollOffset int
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, docs driving.DocumentService, cmps driving.ComparisonService) *View {
	return &View{
		styles:            s,
		documentService:   docs,
		comparisonService: cmps,
		documents:         []domain.Document{},
	}
}

// Init initialises the view and loads the document list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return v.loadDocuments()
}

// Reset clears selection and marks.
func (v *View) Reset() {
	v.selected = 0
	v.scrollOffset = 0
	v.markedID = ""
	v.err = nil
}

// loadDocuments returns a command that loads all stored documents.
func (v *View) loadDocuments() tea.Cmd {
	return func() tea.Msg {
		if v.documentService == nil {
			return messages.DocumentsLoaded{Err: fmt.Errorf("document service not available")}
		}

		docs, err := v.documentService.List(context.Background())
		return messages.DocumentsLoaded{Documents: docs, Err: err}
	}
}

// queueComparison returns a command that creates a comparison.
func (v *View) queueComparison(originalID, modifiedID string) tea.Cmd {
	return func() tea.Msg {
		if v.comparisonService == nil {
			return messages.ComparisonQueued{Err: fmt.Errorf("comparison service not available")}
		}

		cmp, err := v.comparisonService.Create(context.Background(), originalID, modifiedID, domain.LevelAI)
		return messages.ComparisonQueued{Comparison: cmp, Err: err}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.documents = msg.Documents
			v.err = nil
		}
		return v, nil

	case messages.ComparisonQueued:
		v.markedID = ""
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		// Jump to the comparisons view to watch progress
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewComparisons}
		}

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.documents)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "c":
		if v.selected >= len(v.documents) {
			return v, nil
		}
		doc := v.documents[v.selected]
		if v.markedID == "" {
			v.markedID = doc.ID
			return v, nil
		}
		if v.markedID == doc.ID {
			v.markedID = ""
			return v, nil
		}
		return v, v.queueComparison(v.markedID, doc.ID)
	case "r":
		v.loading = true
		return v, v.loadDocuments()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// adjustScroll adjusts the scroll offset to keep the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of items that can be displayed.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, separator, help, and padding
	reserved := 8
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Documents (%d)", len(v.documents))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if len(v.documents) == 0 {
		b.WriteString(v.styles.Muted.Render("No documents uploaded yet."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.markedID != "" {
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Original marked: %s. Press c on the modified document.", v.markedID)))
		b.WriteString("\n\n")
	}

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.documents) && i < v.scrollOffset+visibleItems; i++ {
		b.WriteString(v.renderDocument(i, &v.documents[i]))
		b.WriteString("\n")
	}

	if len(v.documents) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.documents)),
			len(v.documents))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderDocument renders a single document line.
func (v *View) renderDocument(index int, doc *domain.Document) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	mark := " "
	if doc.ID == v.markedID {
		mark = "*"
	}

	name := doc.Filename
	if name == "" {
		name = doc.ID
	}

	maxNameLen := v.width/2 - 6
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	meta := fmt.Sprintf("%s  %s", doc.Type, doc.CreatedAt.Format("2006-01-02 15:04"))

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%s %-*s  %s", indicator, mark, maxNameLen, name, meta))
	}

	return v.styles.Normal.Render(indicator+mark+" ") +
		v.styles.Normal.Render(fmt.Sprintf("%-*s  ", maxNameLen, name)) +
		v.styles.Muted.Render(meta)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [c] mark/compare  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Documents returns the current list of documents.
func (v *View) Documents() []domain.Document {
	return v.documents
}

// SelectedIndex returns the currently selected document index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// MarkedID returns the ID of the document marked as original, if any.
func (v *View) MarkedID() string {
	return v.markedID
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
