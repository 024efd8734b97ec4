package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clauseworks/pactdiff/internal/adapters/driving/tui/messages"
	"github.com/clauseworks/pactdiff/internal/adapters/driving/tui/styles"
	"github.com/clauseworks/pactdiff/internal/adapters/driving/tui/views/comparisons"
	"github.com/clauseworks/pactdiff/internal/adapters/driving/tui/views/documents"
	"github.com/clauseworks/pactdiff/internal/adapters/driving/tui/views/menu"
	"github.com/clauseworks/pactdiff/internal/adapters/driving/tui/views/result"
	"github.com/clauseworks/pactdiff/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// documentsView is the stored documents list.
	documentsView *documents.View

	// comparisonsView is the comparison list.
	comparisonsView *comparisons.View

	// resultView shows a completed comparison.
	resultView *result.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool

	// initialComparison, when set, opens the result view on start.
	initialComparison *domain.Comparison
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		menuView:        menu.NewView(s),
		documentsView:   documents.NewView(s, ports.Document, ports.Comparison),
		comparisonsView: comparisons.NewView(s, ports.Comparison),
		resultView:      result.NewView(s, ports.Comparison),
		currentView:     messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithComparison opens the result view for the given comparison on start.
func (a *App) WithComparison(cmp domain.Comparison) *App {
	a.initialComparison = &cmp
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("pactdiff - Contract Comparison"),
	}
	if a.initialComparison != nil {
		a.currentView = messages.ViewResult
		cmds = append(cmds, a.resultView.SetComparison(*a.initialComparison))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.documentsView.SetDimensions(msg.Width, msg.Height)
		a.comparisonsView.SetDimensions(msg.Width, msg.Height)
		a.resultView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
			a.err = a.documentsView.Err()
			return a, cmd

		case messages.ViewComparisons:
			a.comparisonsView, cmd = a.comparisonsView.Update(msg)
			a.err = a.comparisonsView.Err()
			return a, cmd

		case messages.ViewResult:
			a.resultView, cmd = a.resultView.Update(msg)
			a.err = a.resultView.Err()
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewDocuments:
			a.documentsView.Reset()
			return a, a.documentsView.Init()
		case messages.ViewComparisons:
			return a, a.comparisonsView.Init()
		case messages.ViewMenu, messages.ViewResult, messages.ViewHelp:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.ComparisonSelected:
		a.currentView = messages.ViewResult
		return a, a.resultView.SetComparison(msg.Comparison)

	case messages.DocumentsLoaded, messages.ComparisonQueued:
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.ComparisonsLoaded:
		a.comparisonsView, cmd = a.comparisonsView.Update(msg)
		return a, cmd

	case messages.ResultLoaded:
		a.resultView, cmd = a.resultView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		// Forward to current view
		switch a.currentView {
		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
		case messages.ViewComparisons:
			a.comparisonsView, cmd = a.comparisonsView.Update(msg)
		case messages.ViewResult:
			a.resultView, cmd = a.resultView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
			// Other views don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewComparisons:
		a.comparisonsView, cmd = a.comparisonsView.Update(msg)
	case messages.ViewResult:
		a.resultView, cmd = a.resultView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewComparisons:
		return a.comparisonsView.View()
	case messages.ViewResult:
		return a.resultView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Documents:
  j/k, ↑/↓    Navigate documents
  c           Mark original, then modified, to queue a comparison
  r           Reload list

Comparisons:
  j/k, ↑/↓    Navigate comparisons
  enter       View result
  r           Reload list

Result:
  j/k, ↑/↓    Scroll
  g/G         Jump to top/bottom
  r           Reload result

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.documentsView.SetDimensions(width, height)
	a.comparisonsView.SetDimensions(width, height)
	a.resultView.SetDimensions(width, height)
}
