// Package comparisons provides the comparison list view for the TUI.
package comparisons

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

// View is the comparisons list view.
type View struct {
	styles            *styles.Styles
	comparisonService driving.ComparisonService

	comparisons  []domain.Comparison
	selected     int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	scrollOffset int
}

// NewView creates a new comparisons view.
func NewView(s *styles.Styles, cmps driving.ComparisonService) *View {
	return &View{
		styles:            s,
		comparisonService: cmps,
		comparisons:       []domain.Comparison{},
	}
}

// Init initialises the view and loads the comparison list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return v.loadComparisons()
}

// loadComparisons returns a command that loads all comparisons.
func (v *View) loadComparisons() tea.Cmd {
	return func() tea.Msg {
		if v.comparisonService == nil {
			return messages.ComparisonsLoaded{Err: fmt.Errorf("comparison service not available")}
		}

		cmps, err := v.comparisonService.List(context.Background())
		return messages.ComparisonsLoaded{Comparisons: cmps, Err: err}
	}
}

// Update handles messages for the comparisons view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ComparisonsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.comparisons = msg.Comparisons
			v.err = nil
		}
		return v, nil

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
		if v.selected < len(v.comparisons)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if v.selected < len(v.comparisons) {
			cmp := v.comparisons[v.selected]
			return v, func() tea.Msg {
				return messages.ComparisonSelected{Comparison: cmp}
			}
		}
	case "r":
		v.loading = true
		return v, v.loadComparisons()
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
	reserved := 8
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the comparisons view.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Comparisons (%d)", len(v.comparisons))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading comparisons..."))
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

	if len(v.comparisons) == 0 {
		b.WriteString(v.styles.Muted.Render("No comparisons yet. Mark two documents with c to start one."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.comparisons) && i < v.scrollOffset+visibleItems; i++ {
		b.WriteString(v.renderComparison(i, &v.comparisons[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderComparison renders a single comparison line.
func (v *View) renderComparison(index int, cmp *domain.Comparison) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	state := string(cmp.State)
	var stateStyle = v.styles.Muted
	switch cmp.State {
	case domain.StateCompleted:
		stateStyle = v.styles.Success
	case domain.StateFailed:
		stateStyle = v.styles.Error
	case domain.StateProcessing:
		stateStyle = v.styles.Warning
		state = fmt.Sprintf("%s %.0f%%", state, cmp.Progress*100)
	case domain.StateQueued:
	}

	line := fmt.Sprintf("%-12s %s -> %s  [%s]", cmp.ID, cmp.OriginalDocumentID, cmp.ModifiedDocumentID, cmp.Level)

	if index == v.selected {
		return v.styles.Selected.Render(indicator + line + "  " + state)
	}

	return v.styles.Normal.Render(indicator+line+"  ") + stateStyle.Render(state)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] view result  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Comparisons returns the current list of comparisons.
func (v *View) Comparisons() []domain.Comparison {
	return v.comparisons
}

// SelectedIndex returns the currently selected comparison index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
