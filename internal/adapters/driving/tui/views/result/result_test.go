package result

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clauseworks/pactdiff/internal/adapters/driving/tui/messages"
	"github.com/clauseworks/pactdiff/internal/adapters/driving/tui/styles"
	"github.com/clauseworks/pactdiff/internal/core/domain"
)

func completedResult() *domain.Result {
	return &domain.Result{
		Differences: []domain.Difference{
			{
				Type:            domain.DifferenceModification,
				OriginalContent: "within 30 days",
				ModifiedContent: "within 60 days",
				Importance:      domain.ImportanceHigh,
			},
		},
		UnifiedDiff:     "--- Document 1\n+++ Document 2\n-within 30 days\n+within 60 days\n",
		SimilarityScore: 0.87,
		Summary: &domain.Summary{
			Text:  "Found 1 differences.",
			Total: 1, Modifications: 1, High: 1,
		},
	}
}

func newTestView() *View {
	v := NewView(styles.DefaultStyles(), nil)
	v.SetDimensions(80, 24)
	return v
}

func TestView_RendersResult(t *testing.T) {
	v := newTestView()
	v.comparison = &domain.Comparison{ID: "cmp-1"}

	v, _ = v.Update(messages.ResultLoaded{ComparisonID: "cmp-1", Result: completedResult()})

	out := v.View()
	assert.Contains(t, out, "cmp-1")
	assert.Contains(t, out, "Found 1 differences.")
	assert.Contains(t, out, "87.0%")
	assert.Contains(t, out, "within 60 days")
}

func TestView_RendersError(t *testing.T) {
	v := newTestView()

	v, _ = v.Update(messages.ResultLoaded{Err: domain.ErrComparisonIncomplete})

	assert.Contains(t, v.View(), "Error:")
	assert.ErrorIs(t, v.Err(), domain.ErrComparisonIncomplete)
}

func TestView_ScrollBounds(t *testing.T) {
	v := newTestView()
	v.comparison = &domain.Comparison{ID: "cmp-1"}
	v, _ = v.Update(messages.ResultLoaded{ComparisonID: "cmp-1", Result: completedResult()})

	// Scrolling up at the top stays put
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, 0, v.scrollOffset)

	// Jump to bottom then back
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	assert.Equal(t, v.maxScrollOffset(), v.scrollOffset)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.Equal(t, 0, v.scrollOffset)
}

func TestView_EscReturnsToComparisons(t *testing.T) {
	v := newTestView()

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewComparisons, changed.View)
}
