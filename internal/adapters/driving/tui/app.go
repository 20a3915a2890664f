package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/views/workspace"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// Which of the documents list and the workspace is shown follows the
// navigation location: after every message the app compares the location
// with the one it last rendered and switches or reloads views to match.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// notifier delivers core notices to the event loop. May be nil.
	notifier *Notifier

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView      *menu.View
	documentsView *documents.View
	workspaceView *workspace.View
	settingsView  *settings.View
	statusBar     *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// lastLoc is the navigation location the views were last synced to.
	lastLoc domain.Location

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports. Notices
// raised by the core are shown in the status bar when notifier is set.
func NewApp(ports *Ports, notifier *Notifier) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:         ports,
		notifier:      notifier,
		ctx:           context.Background(),
		styles:        s,
		menuView:      menu.NewView(s),
		documentsView: documents.NewView(s, ports.Documents),
		workspaceView: workspace.NewView(s, ports.Workspace, ports.Navigation),
		settingsView:  settings.NewView(s, ports.Settings),
		statusBar:     status.NewBar(s, keymap.DefaultKeyMap()),
		currentView:   messages.ViewMenu,
		lastLoc:       ports.Navigation.Location(),
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.documentsView.WithContext(ctx)
	a.workspaceView.WithContext(ctx)
	return a
}

// WithMarkdownStyle sets the glamour style used for answers.
func (a *App) WithMarkdownStyle(style string) *App {
	a.workspaceView.WithMarkdownStyle(style)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("docchat")}
	if a.notifier != nil {
		cmds = append(cmds, a.notifier.Wait())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	return a, tea.Batch(cmd, a.syncLocation())
}

//nolint:gocyclo // central message handler requires complexity
func (a *App) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		if a.statusBar.State() == status.StateNotice {
			a.statusBar.Clear()
		}
		return a.updateCurrent(msg)

	case messages.NoticeRaised:
		a.statusBar, cmd = a.statusBar.Update(msg)
		if a.notifier != nil {
			return tea.Batch(cmd, a.notifier.Wait())
		}
		return cmd

	case messages.ViewChanged:
		return a.switchTo(msg.View)

	case messages.DocumentsLoaded, messages.DocumentDeleted,
		messages.DocumentUploaded, messages.DocumentImported, messages.DocumentOpened:
		a.documentsView, cmd = a.documentsView.Update(msg)
		return cmd

	case messages.SessionsLoaded, messages.HistoryLoaded, messages.AnswerCompleted,
		messages.SessionCreated, messages.SessionDeleted:
		a.workspaceView, cmd = a.workspaceView.Update(msg)
		return cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewDocuments {
			a.documentsView, cmd = a.documentsView.Update(msg)
		}
		return cmd

	case messages.Quit:
		return tea.Quit
	}

	// Forward other messages (spinner ticks, cursor blinks) to the active view.
	return a.updateCurrent(msg)
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewWorkspace:
		a.workspaceView, cmd = a.workspaceView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if key, ok := msg.(tea.KeyMsg); ok && (key.Type == tea.KeyEsc || key.String() == "q") {
			return a.switchTo(messages.ViewMenu)
		}
	}
	return cmd
}

// switchTo activates a view and runs its initialisation.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	a.statusBar.SetBindings(nil)

	switch view {
	case messages.ViewDocuments:
		a.documentsView.Reset()
		return a.documentsView.Init()
	case messages.ViewWorkspace:
		return a.workspaceView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewHelp:
		a.statusBar.SetState(status.StateHelp)
	case messages.ViewMenu:
		// The menu needs no initialisation.
	}
	return nil
}

// syncLocation switches or reloads views after the navigation location
// changed. Opening a document shows its workspace; returning to the root
// from the workspace shows the documents list; a different session
// reloads the workspace.
func (a *App) syncLocation() tea.Cmd {
	loc := a.ports.Navigation.Location()
	prev := a.lastLoc
	a.lastLoc = loc
	a.syncStatus()

	if loc == prev {
		return nil
	}

	switch {
	case loc.IsRoot():
		if a.currentView == messages.ViewWorkspace {
			return a.switchTo(messages.ViewDocuments)
		}
		return nil

	case loc.DocumentID != prev.DocumentID:
		a.workspaceView.SetDocumentName(a.documentName(loc.DocumentID))
		return a.switchTo(messages.ViewWorkspace)

	default:
		if a.currentView != messages.ViewWorkspace {
			return nil
		}
		return a.workspaceView.Reload()
	}
}

// syncStatus mirrors the workspace state into the status bar.
func (a *App) syncStatus() {
	if a.currentView == messages.ViewWorkspace {
		a.statusBar.SetBindings(a.workspaceView.Bindings())
	}

	switch a.statusBar.State() {
	case status.StateNotice:
		return
	case status.StateHelp:
		if a.currentView == messages.ViewHelp {
			return
		}
	case status.StateReady, status.StateAsking:
	}

	if a.currentView == messages.ViewWorkspace && a.ports.Workspace.Status() == domain.SubmissionPending {
		a.statusBar.SetState(status.StateAsking)
		return
	}
	a.statusBar.SetState(status.StateReady)
}

// documentName finds the display name of a listed document.
func (a *App) documentName(documentID string) string {
	for _, doc := range a.documentsView.Documents() {
		if doc.ID == documentID {
			return doc.DisplayName
		}
	}
	return documentID
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewDocuments:
		body = a.documentsView.View()
	case messages.ViewWorkspace:
		body = a.workspaceView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}
	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Documents:
  enter       Open or delete the selected document
  u           Upload a local file
  i           Import from a download link
  r           Reload

Workspace:
  enter       Ask the question
  alt+enter   New line
  esc         Cancel the pending question, or leave the document
  ctrl+n      New session
  tab         Focus the session list
  d           Delete the selected session (session list)
  pgup/pgdown Scroll the transcript

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions. One line is kept for the status bar.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	body := max(height-1, 1)
	a.menuView.SetDimensions(width, body)
	a.documentsView.SetDimensions(width, body)
	a.workspaceView.SetDimensions(width, body)
	a.settingsView.SetDimensions(width, body)
	a.statusBar.SetWidth(width)
}
