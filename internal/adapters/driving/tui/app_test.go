package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clauseworks/pactdiff/internal/adapters/driving/tui/messages"
	"github.com/clauseworks/pactdiff/internal/core/domain"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(NewPorts(&mockDocumentService{}, &mockComparisonService{}))
	require.NoError(t, err)
	app.SetDimensions(80, 24)
	return app
}

func TestNewApp_MissingPorts(t *testing.T) {
	_, err := NewApp(&Ports{Comparison: &mockComparisonService{}})
	assert.ErrorIs(t, err, ErrMissingDocumentService)

	_, err = NewApp(&Ports{Document: &mockDocumentService{}})
	assert.ErrorIs(t, err, ErrMissingComparisonService)
}

func TestApp_StartsOnMenu(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.Contains(t, app.View(), "pactdiff")
}

func TestApp_WindowSizeMakesReady(t *testing.T) {
	app, err := NewApp(NewPorts(&mockDocumentService{}, &mockComparisonService{}))
	require.NoError(t, err)

	assert.False(t, app.Ready())
	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = model.(*App)
	assert.True(t, app.Ready())
}

func TestApp_NavigatesToDocuments(t *testing.T) {
	app := newTestApp(t)

	model, cmd := app.Update(messages.ViewChanged{View: messages.ViewDocuments})
	app = model.(*App)

	assert.Equal(t, messages.ViewDocuments, app.CurrentView())
	// Init returns the load command
	require.NotNil(t, cmd)
}

func TestApp_DocumentsLoadedForwarded(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(messages.ViewChanged{View: messages.ViewDocuments})
	app = model.(*App)

	model, _ = app.Update(messages.DocumentsLoaded{
		Documents: []domain.Document{{ID: "doc-1", Filename: "contract.pdf"}},
	})
	app = model.(*App)

	assert.Contains(t, app.View(), "contract.pdf")
}

func TestApp_ComparisonSelectedOpensResult(t *testing.T) {
	app := newTestApp(t)

	model, cmd := app.Update(messages.ComparisonSelected{
		Comparison: domain.Comparison{ID: "cmp-1", State: domain.StateCompleted},
	})
	app = model.(*App)

	assert.Equal(t, messages.ViewResult, app.CurrentView())
	require.NotNil(t, cmd)
}

func TestApp_WithComparisonOpensResult(t *testing.T) {
	app, err := NewApp(NewPorts(&mockDocumentService{}, &mockComparisonService{}))
	require.NoError(t, err)

	app = app.WithComparison(domain.Comparison{ID: "cmp-1", State: domain.StateCompleted})
	cmd := app.Init()
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ViewResult, app.CurrentView())
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_EscFromHelpReturnsToMenu(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(messages.ViewChanged{View: messages.ViewHelp})
	app = model.(*App)
	require.Equal(t, messages.ViewHelp, app.CurrentView())

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_ErrorOccurredStored(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.ErrorOccurred{Err: assert.AnError})
	app = model.(*App)

	assert.ErrorIs(t, app.Err(), assert.AnError)
}
