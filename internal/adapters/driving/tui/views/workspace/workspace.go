// Package workspace provides the question and answer view of an open document.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Layout constants.
const (
	sidebarWidth = 30
	chromeLines  = 4
	minViewport  = 3

	// DefaultMarkdownStyle is the glamour style used for answers.
	DefaultMarkdownStyle = "dark"
)

// Placeholder texts.
const (
	noSessionText = "Create or select a session to start asking questions. Press ctrl+n for a new session."
	noEntriesText = "No questions yet. Type one below and press enter."
	pendingText   = "Thinking..."
	failedText    = "No answer could be produced."
)

var errServiceUnavailable = errors.New("workspace service not available")

// focus is the pane receiving key presses.
type focus int

const (
	focusInput focus = iota
	focusSidebar
)

// View is the workspace of one document: sessions on the left, the
// transcript and the question box on the right.
type View struct {
	ctx       context.Context
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	workspace driving.WorkspaceService
	nav       driving.NavigationService

	sessions *list.SessionList
	input    *input.QuestionInput
	viewport viewport.Model
	spinner  spinner.Model

	markdownStyle string
	renderer      *glamour.TermRenderer
	rendered      map[string]string

	documentName  string
	focus         focus
	confirmDelete bool
	ticking       bool
	err           error
	width         int
	height        int
	ready         bool
}

// NewView creates a new workspace view.
func NewView(s *styles.Styles, ws driving.WorkspaceService, nav driving.NavigationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = s.Subtitle

	v := &View{
		ctx:           context.Background(),
		styles:        s,
		keymap:        keymap.DefaultKeyMap(),
		workspace:     ws,
		nav:           nav,
		sessions:      list.NewSessionList(s),
		input:         input.NewQuestionInput(s),
		viewport:      viewport.New(80, 10),
		spinner:       sp,
		markdownStyle: DefaultMarkdownStyle,
		rendered:      make(map[string]string),
		width:         80,
		height:        24,
	}
	v.layout()
	return v
}

// WithContext sets the context used by service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithMarkdownStyle selects the glamour style used for answers.
func (v *View) WithMarkdownStyle(style string) *View {
	v.markdownStyle = style
	v.renderer = nil
	v.rendered = make(map[string]string)
	return v
}

// Init loads the sessions and the active session's history.
func (v *View) Init() tea.Cmd {
	v.focus = focusInput
	v.confirmDelete = false
	v.sessions.SetFocused(false)
	v.err = nil
	v.refresh()
	return tea.Batch(v.input.Focus(), v.input.Init(), v.Reload())
}

// Reload re-reads the session list and the active session's history.
// The app calls it whenever the location changes.
func (v *View) Reload() tea.Cmd {
	v.refresh()
	return tea.Batch(v.loadSessions(), v.loadHistory())
}

// SetDocumentName sets the title shown above the transcript.
func (v *View) SetDocumentName(name string) {
	v.documentName = name
}

// loadSessions returns a command that lists the open document's sessions.
func (v *View) loadSessions() tea.Cmd {
	ws := v.workspace
	ctx := v.ctx
	return func() tea.Msg {
		if ws == nil {
			return messages.SessionsLoaded{Err: errServiceUnavailable}
		}
		sessions, err := ws.Sessions(ctx)
		return messages.SessionsLoaded{Sessions: sessions, Err: err}
	}
}

// loadHistory returns a command that reads the active session's persisted pairs.
func (v *View) loadHistory() tea.Cmd {
	ws := v.workspace
	ctx := v.ctx
	sessionID := v.activeSessionID()
	return func() tea.Msg {
		if ws == nil {
			return messages.HistoryLoaded{SessionID: sessionID, Err: errServiceUnavailable}
		}
		return messages.HistoryLoaded{SessionID: sessionID, Err: ws.EnterSession(ctx)}
	}
}

// Update handles messages for the workspace view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.focus == focusSidebar {
			return v.handleSidebarKeyMsg(msg)
		}
		return v.handleInputKeyMsg(msg)

	case spinner.TickMsg:
		if !v.pending() {
			v.ticking = false
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		v.refresh()
		return v, cmd

	case messages.SessionsLoaded:
		if msg.Err != nil {
			if !errors.Is(msg.Err, domain.ErrNoActiveDocument) {
				v.err = msg.Err
			}
			return v, nil
		}
		v.sessions.SetSessions(msg.Sessions)
		return v, nil

	case messages.HistoryLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		}
		v.refresh()
		return v, nil

	case messages.AnswerCompleted:
		return v.handleCompletion(msg.Completion)

	case messages.SessionCreated:
		if msg.Err != nil {
			return v, nil
		}
		v.setFocus(focusInput)
		return v, v.loadSessions()

	case messages.SessionDeleted:
		if msg.Err != nil {
			return v, nil
		}
		v.refresh()
		return v, v.loadSessions()
	}

	if v.focus == focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleInputKeyMsg handles key presses while the question box has focus.
func (v *View) handleInputKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Submit):
		return v.submit()
	case keymap.Matches(k, v.keymap.Cancel):
		if v.workspace != nil && v.workspace.Cancel() {
			v.refresh()
			return v, nil
		}
		if v.nav != nil {
			v.nav.GoRoot()
		}
		return v, nil
	case keymap.Matches(k, v.keymap.NewSession):
		return v, v.createSession()
	case keymap.Matches(k, v.keymap.FocusSidebar):
		v.setFocus(focusSidebar)
		return v, nil
	case k == "pgup", k == "pgdown":
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleSidebarKeyMsg handles key presses while the session list has focus.
func (v *View) handleSidebarKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	if v.confirmDelete {
		switch {
		case keymap.Matches(k, v.keymap.Confirm):
			v.confirmDelete = false
			if entry := v.sessions.SelectedSession(); entry != nil {
				return v, v.deleteSession(entry.ID)
			}
		case keymap.Matches(k, v.keymap.Deny):
			v.confirmDelete = false
		}
		return v, nil
	}

	switch {
	case keymap.Matches(k, v.keymap.Up), keymap.Matches(k, v.keymap.Down):
		v.sessions, _ = v.sessions.Update(msg)
	case keymap.Matches(k, v.keymap.Select):
		entry := v.sessions.SelectedSession()
		if entry == nil || v.workspace == nil {
			return v, nil
		}
		if err := v.workspace.SwitchSession(entry.ID); err != nil {
			v.err = err
			return v, nil
		}
		v.setFocus(focusInput)
	case keymap.Matches(k, v.keymap.Delete):
		if v.sessions.SelectedSession() != nil {
			v.confirmDelete = true
		}
	case keymap.Matches(k, v.keymap.NewSession):
		return v, v.createSession()
	case keymap.Matches(k, v.keymap.FocusSidebar), keymap.Matches(k, v.keymap.Back):
		v.setFocus(focusInput)
	}
	return v, nil
}

// submit hands the typed question to the workspace and awaits the answer off the loop.
func (v *View) submit() (*View, tea.Cmd) {
	if v.workspace == nil {
		v.err = errServiceUnavailable
		return v, nil
	}

	flight, err := v.workspace.Submit(v.ctx, v.input.Value())
	if err != nil {
		logger.Debug("Submit rejected: %v", err)
		return v, nil
	}

	v.refresh()
	if flight == nil {
		v.input.Reset()
		return v, nil
	}

	await := func() tea.Msg {
		return messages.AnswerCompleted{Completion: flight.Await()}
	}
	if v.ticking {
		return v, await
	}
	v.ticking = true
	return v, tea.Batch(await, v.spinner.Tick)
}

// handleCompletion applies an awaited answer.
func (v *View) handleCompletion(completion domain.Completion) (*View, tea.Cmd) {
	if v.workspace == nil {
		return v, nil
	}
	outcome := v.workspace.Complete(completion)
	if outcome.ClearInput {
		v.input.Reset()
	}
	v.refresh()
	return v, nil
}

// createSession returns a command that creates and activates a session.
func (v *View) createSession() tea.Cmd {
	ws := v.workspace
	ctx := v.ctx
	return func() tea.Msg {
		if ws == nil {
			return messages.SessionCreated{Err: errServiceUnavailable}
		}
		session, err := ws.CreateSession(ctx)
		return messages.SessionCreated{Session: session, Err: err}
	}
}

// deleteSession returns a command that deletes a session.
func (v *View) deleteSession(sessionID string) tea.Cmd {
	ws := v.workspace
	ctx := v.ctx
	return func() tea.Msg {
		if ws == nil {
			return messages.SessionDeleted{SessionID: sessionID, Err: errServiceUnavailable}
		}
		wasActive, err := ws.DeleteSession(ctx, sessionID)
		return messages.SessionDeleted{SessionID: sessionID, WasActive: wasActive, Err: err}
	}
}

func (v *View) setFocus(f focus) {
	v.focus = f
	v.confirmDelete = false
	v.sessions.SetFocused(f == focusSidebar)
	if f == focusSidebar {
		v.input.Blur()
		return
	}
	v.input.Focus()
}

func (v *View) pending() bool {
	return v.workspace != nil && v.workspace.Status() == domain.SubmissionPending
}

func (v *View) activeSessionID() string {
	if v.nav == nil {
		return ""
	}
	return v.nav.ActiveSessionID()
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (v *View) refresh() {
	v.viewport.SetContent(v.renderTranscript())
	v.viewport.GotoBottom()
}

// renderTranscript renders the merged history of the active session.
func (v *View) renderTranscript() string {
	if v.activeSessionID() == "" {
		return v.styles.Muted.Render(noSessionText)
	}
	if v.workspace == nil {
		return ""
	}

	entries := v.workspace.Entries()
	if len(entries) == 0 {
		return v.styles.Muted.Render(noEntriesText)
	}

	blocks := make([]string, 0, len(entries))
	for i := range entries {
		blocks = append(blocks, v.renderEntry(&entries[i]))
	}
	return strings.Join(blocks, "\n\n")
}

// renderEntry renders one question and its answer.
func (v *View) renderEntry(entry *domain.DisplayEntry) string {
	question := v.styles.Question.Render("You: " + entry.Question)

	var answer string
	switch entry.Status {
	case domain.ExchangePending:
		answer = v.styles.Answer.Render(v.spinner.View() + " " + pendingText)
	case domain.ExchangeFailed:
		text := entry.Answer
		if text == "" {
			text = failedText
		}
		answer = v.styles.Failed.Render(text)
	case domain.ExchangeAnswered:
		answer = v.renderMarkdown(entry.Answer)
	}
	return question + "\n" + answer
}

// renderMarkdown renders an answer with glamour, falling back to plain
// text when the renderer fails or panics on malformed input.
func (v *View) renderMarkdown(md string) (out string) {
	if cached, ok := v.rendered[md]; ok {
		return cached
	}

	plain := v.styles.Answer.Render(md)
	r := v.markdownRenderer()
	if r == nil {
		return plain
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn("Markdown render panicked: %v", rec)
			out = plain
		}
	}()

	rendered, err := r.Render(md)
	if err != nil {
		logger.Debug("Markdown render failed: %v", err)
		return plain
	}
	out = strings.Trim(rendered, "\n")
	v.rendered[md] = out
	return out
}

// markdownRenderer lazily builds a renderer wrapped to the transcript width.
func (v *View) markdownRenderer() *glamour.TermRenderer {
	if v.renderer != nil {
		return v.renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(v.markdownStyle),
		glamour.WithWordWrap(v.viewport.Width-4),
	)
	if err != nil {
		logger.Warn("Markdown renderer unavailable: %v", err)
		return nil
	}
	v.renderer = r
	return r
}

// layout sizes the panes from the view dimensions.
func (v *View) layout() {
	mainWidth := v.width - sidebarWidth - 2
	if mainWidth < 20 {
		mainWidth = 20
	}
	vpHeight := v.height - v.input.Height() - chromeLines
	if vpHeight < minViewport {
		vpHeight = minViewport
	}

	if v.viewport.Width != mainWidth {
		v.renderer = nil
		v.rendered = make(map[string]string)
	}
	v.viewport.Width = mainWidth
	v.viewport.Height = vpHeight
	v.input.SetWidth(mainWidth)
	v.sessions.SetDimensions(sidebarWidth, v.height-2)
}

// View renders the workspace.
func (v *View) View() string {
	sidebar := v.styles.Sidebar.
		Width(sidebarWidth).
		Height(v.height - 2).
		Render(v.sessions.View())

	var main strings.Builder
	title := "Workspace"
	if v.documentName != "" {
		title = v.documentName
	}
	main.WriteString(v.styles.Title.Render(title))
	if id := v.activeSessionID(); id != "" {
		main.WriteString(v.styles.Muted.Render("  session " + id))
	}
	main.WriteString("\n\n")
	main.WriteString(v.viewport.View())
	main.WriteString("\n")
	main.WriteString(v.input.View())
	main.WriteString("\n")
	main.WriteString(v.renderFooter())

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main.String())
}

// renderFooter shows the delete confirmation, the last error or the help line.
func (v *View) renderFooter() string {
	switch {
	case v.confirmDelete:
		name := ""
		if entry := v.sessions.SelectedSession(); entry != nil {
			name = entry.Title()
		}
		return v.styles.Warning.Render(fmt.Sprintf("Delete session %s? [y] yes  [n] no", name))
	case v.err != nil:
		return v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error()))
	case v.focus == focusSidebar:
		return v.styles.Help.Render("[↑/↓] navigate  [enter] switch  [d] delete  [ctrl+n] new  [tab] back")
	}
	return v.styles.Help.Render("[enter] ask  [alt+enter] newline  [esc] cancel/back  [ctrl+n] new session  [tab] sessions")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.layout()
	v.refresh()
}

// Bindings returns the keybinding hints for the focused pane.
func (v *View) Bindings() []key.Binding {
	if v.focus == focusSidebar {
		return v.keymap.SidebarHelp()
	}
	return v.keymap.WorkspaceHelp()
}

// Sessions returns the listed sessions.
func (v *View) Sessions() []domain.SessionEntry {
	return v.sessions.Sessions()
}

// SidebarFocused reports whether the session list has focus.
func (v *View) SidebarFocused() bool {
	return v.focus == focusSidebar
}

// IsConfirming returns true while a session delete awaits confirmation.
func (v *View) IsConfirming() bool {
	return v.confirmDelete
}

// InputValue returns the typed question.
func (v *View) InputValue() string {
	return v.input.Value()
}

// Transcript returns the rendered transcript.
func (v *View) Transcript() string {
	return v.renderTranscript()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
