// Package result provides the comparison result view for the TUI.
// It renders the summary, classified differences and a scrollable
// coloured unified diff.
package result

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

// View is the comparison result view.
type View struct {
	styles            *styles.Styles
	comparisonService driving.ComparisonService

	comparison   *domain.Comparison
	result       *domain.Result
	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
}

// NewView creates a new result view.
func NewView(s *styles.Styles, cmps driving.ComparisonService) *View {
	return &View{
		styles:            s,
		comparisonService: cmps,
	}
}

// SetComparison sets the comparison and loads its result.
func (v *View) SetComparison(cmp domain.Comparison) tea.Cmd {
	v.comparison = &cmp
	v.result = nil
	v.lines = nil
	v.scrollOffset = 0
	v.err = nil
	v.loading = true
	return v.loadResult()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// loadResult returns a command that loads the comparison result.
func (v *View) loadResult() tea.Cmd {
	return func() tea.Msg {
		if v.comparison == nil || v.comparisonService == nil {
			return messages.ResultLoaded{Err: fmt.Errorf("comparison service not available")}
		}

		result, err := v.comparisonService.Result(context.Background(), v.comparison.ID)
		return messages.ResultLoaded{
			ComparisonID: v.comparison.ID,
			Result:       result,
			Err:          err,
		}
	}
}

// Update handles messages for the result view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		v.buildLines()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ResultLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.result = msg.Result
			v.buildLines()
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
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset -= v.visibleLines()
		if v.scrollOffset < 0 {
			v.scrollOffset = 0
		}
	case "pgdown", "ctrl+d":
		v.scrollOffset += v.visibleLines()
		if max := v.maxScrollOffset(); v.scrollOffset > max {
			v.scrollOffset = max
		}
	case "g":
		v.scrollOffset = 0
	case "G":
		v.scrollOffset = v.maxScrollOffset()
	case "r":
		v.loading = true
		return v, v.loadResult()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewComparisons}
		}
	}

	return v, nil
}

// buildLines pre-renders the result into styled lines for scrolling.
func (v *View) buildLines() {
	if v.result == nil {
		v.lines = nil
		return
	}

	var lines []string

	if s := v.result.Summary; s != nil {
		lines = append(lines, v.styles.Subtitle.Render("Summary"))
		for _, l := range strings.Split(strings.TrimSpace(s.Text), "\n") {
			lines = append(lines, v.styles.Normal.Render(l))
		}
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf(
			"%d differences: %d high, %d medium, %d low importance",
			s.Total, s.High, s.Medium, s.Low)))
		lines = append(lines, "")
	}

	lines = append(lines, v.styles.Normal.Render(
		fmt.Sprintf("Similarity: %.1f%%", v.result.SimilarityScore*100)))
	if v.result.SemanticNote != "" {
		lines = append(lines, v.styles.Warning.Render(v.result.SemanticNote))
	}
	lines = append(lines, "")

	if len(v.result.Differences) > 0 {
		lines = append(lines, v.styles.Subtitle.Render("Differences"))
		for i := range v.result.Differences {
			lines = append(lines, v.renderDifference(&v.result.Differences[i])...)
		}
		lines = append(lines, "")
	}

	if len(v.result.Semantic) > 0 {
		lines = append(lines, v.styles.Subtitle.Render("Semantic Findings"))
		for _, f := range v.result.Semantic {
			lines = append(lines, v.styles.Normal.Render(fmt.Sprintf("  %s", f.OriginalSentence)))
			lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("  ~ %s (%.0f%%)", f.MatchedSentence, f.Similarity*100)))
		}
		lines = append(lines, "")
	}

	if v.result.UnifiedDiff != "" {
		lines = append(lines, v.styles.Subtitle.Render("Unified Diff"))
		for _, l := range strings.Split(strings.TrimRight(v.result.UnifiedDiff, "\n"), "\n") {
			lines = append(lines, v.renderDiffLine(l))
		}
	}

	v.lines = lines
}

// renderDifference renders one classified difference as styled lines.
func (v *View) renderDifference(d *domain.Difference) []string {
	imp := ""
	impStyle := v.styles.Muted
	switch d.Importance {
	case domain.ImportanceHigh:
		imp = " [high]"
		impStyle = v.styles.Error
	case domain.ImportanceMedium:
		imp = " [medium]"
		impStyle = v.styles.Warning
	case domain.ImportanceLow:
		imp = " [low]"
	}

	header := v.styles.Normal.Render(fmt.Sprintf("  %s", d.Type)) + impStyle.Render(imp)
	out := []string{header}

	if d.OriginalContent != "" {
		out = append(out, v.styles.DiffRemoved.Render("    - "+d.OriginalContent))
	}
	if d.ModifiedContent != "" {
		out = append(out, v.styles.DiffAdded.Render("    + "+d.ModifiedContent))
	}
	return out
}

// renderDiffLine colours a unified diff line.
func (v *View) renderDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return v.styles.Subtitle.Render(line)
	case strings.HasPrefix(line, "+"):
		return v.styles.DiffAdded.Render(line)
	case strings.HasPrefix(line, "-"):
		return v.styles.DiffRemoved.Render(line)
	case strings.HasPrefix(line, "@@"):
		return v.styles.Muted.Render(line)
	default:
		return v.styles.Normal.Render(line)
	}
}

// visibleLines returns the number of content lines that fit on screen.
func (v *View) visibleLines() int {
	reserved := 6
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	max := len(v.lines) - v.visibleLines()
	if max < 0 {
		max = 0
	}
	return max
}

// View renders the result view.
func (v *View) View() string {
	var b strings.Builder

	id := ""
	if v.comparison != nil {
		id = v.comparison.ID
	}
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Comparison Result - %s", id)))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading result..."))
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

	if v.result == nil {
		b.WriteString(v.styles.Muted.Render("No result available."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.lines[i])
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visible, len(v.lines)),
			len(v.lines))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [g/G] top/bottom  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Result returns the loaded result.
func (v *View) Result() *domain.Result {
	return v.result
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
