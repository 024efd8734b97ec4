package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clauseworks/pactdiff/internal/adapters/driving/tui/messages"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_Navigation(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	assert.Equal(t, 0, v.Selected())

	v, _ = v.Update(keyMsg("j"))
	assert.Equal(t, 1, v.Selected())

	v, _ = v.Update(keyMsg("k"))
	assert.Equal(t, 0, v.Selected())

	// Up at the top stays put
	v, _ = v.Update(keyMsg("k"))
	assert.Equal(t, 0, v.Selected())
}

func TestView_EnterEmitsViewChanged(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	changed, ok := msg.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewDocuments, changed.View)
}

func TestView_QuitItem(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	// Navigate to the last item (Quit)
	for i := 0; i < 10; i++ {
		v, _ = v.Update(keyMsg("j"))
	}

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_Render(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	out := v.View()
	assert.Contains(t, out, "pactdiff")
	assert.Contains(t, out, "Documents")
	assert.Contains(t, out, "Comparisons")
}
