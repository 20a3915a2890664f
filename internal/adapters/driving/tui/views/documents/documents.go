// Package documents provides the documents list view component for the TUI.
package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
)

// Prompt texts.
const (
	emptyLinkMessage = "Please enter a download link."
	emptyPathMessage = "Please enter a file path."
)

var errServiceUnavailable = errors.New("document service not available")

// ActionOption represents a document action.
type ActionOption int

const (
	ActionOpen ActionOption = iota
	ActionDelete
	ActionCancel
)

// mode is what the view is currently asking of the user.
type mode int

const (
	modeList mode = iota
	modeActions
	modeConfirmDelete
	modeUpload
	modeImport
)

// View is the documents list view.
type View struct {
	ctx             context.Context
	styles          *styles.Styles
	documentService driving.DocumentService

	documents    []domain.Document
	selected     int
	width        int
	height       int
	ready        bool
	err          error
	info         string
	loading      bool
	busy         string
	mode         mode
	menuSelected ActionOption
	scrollOffset int
	prompt       *input.PromptInput
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:             context.Background(),
		styles:          s,
		documentService: documentService,
		documents:       []domain.Document{},
	}
}

// WithContext sets the context used by service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the document list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadDocuments()
}

// Reset returns the view to the plain list.
func (v *View) Reset() {
	v.mode = modeList
	v.prompt = nil
	v.err = nil
	v.info = ""
	v.busy = ""
}

// loadDocuments returns a command that loads the catalogue.
func (v *View) loadDocuments() tea.Cmd {
	svc := v.documentService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentsLoaded{Err: errServiceUnavailable}
		}
		docs, err := svc.List(ctx)
		return messages.DocumentsLoaded{Documents: docs, Err: err}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case modeActions:
			return v.handleMenuKeyMsg(msg)
		case modeConfirmDelete:
			return v.handleConfirmKeyMsg(msg)
		case modeUpload, modeImport:
			return v.handlePromptKeyMsg(msg)
		case modeList:
		}
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.documents = msg.Documents
		v.err = nil
		if v.selected >= len(v.documents) {
			v.selected = max(len(v.documents)-1, 0)
		}
		v.adjustScroll()
		return v, nil

	case messages.DocumentDeleted:
		v.busy = ""
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.info = "Document deleted."
		return v, v.loadDocuments()

	case messages.DocumentUploaded:
		return v.handleTransfer(msg.Detail, msg.Err)

	case messages.DocumentImported:
		return v.handleTransfer(msg.Detail, msg.Err)

	case messages.DocumentOpened:
		v.busy = ""
		if msg.Err != nil {
			v.err = msg.Err
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	if v.prompt != nil {
		var cmd tea.Cmd
		v.prompt, cmd = v.prompt.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleTransfer applies the result of an upload or import.
func (v *View) handleTransfer(detail string, err error) (*View, tea.Cmd) {
	v.busy = ""
	if err != nil {
		v.err = err
		return v, nil
	}
	v.err = nil
	v.info = detail
	return v, v.loadDocuments()
}

// handleKeyMsg handles key presses in list mode.
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
	case "enter":
		if len(v.documents) > 0 {
			v.mode = modeActions
			v.menuSelected = ActionOpen
		}
	case "d":
		if len(v.documents) > 0 {
			v.mode = modeConfirmDelete
		}
	case "u":
		return v, v.startPrompt(modeUpload, "Upload", "/path/to/document.pdf")
	case "i":
		return v, v.startPrompt(modeImport, "Import", "https://example.com/document.pdf")
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

// handleMenuKeyMsg handles key presses in action menu mode.
func (v *View) handleMenuKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.menuSelected > ActionOpen {
			v.menuSelected--
		}
	case "down", "j":
		if v.menuSelected < ActionCancel {
			v.menuSelected++
		}
	case "enter":
		return v.handleMenuSelect()
	case "esc":
		v.mode = modeList
	}

	return v, nil
}

// handleMenuSelect handles selection of an action.
func (v *View) handleMenuSelect() (*View, tea.Cmd) {
	doc := v.SelectedDocument()
	if doc == nil {
		v.mode = modeList
		return v, nil
	}

	switch v.menuSelected {
	case ActionOpen:
		v.mode = modeList
		return v, v.openDocument(doc.ID)
	case ActionDelete:
		v.mode = modeConfirmDelete
	case ActionCancel:
		v.mode = modeList
	}
	return v, nil
}

// handleConfirmKeyMsg handles the y/n delete confirmation.
func (v *View) handleConfirmKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = modeList
		doc := v.SelectedDocument()
		if doc == nil {
			return v, nil
		}
		return v, v.deleteDocument(doc.ID)
	case "n", "N", "esc":
		v.mode = modeList
	}
	return v, nil
}

// handlePromptKeyMsg handles key presses while a path or link is typed.
func (v *View) handlePromptKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.mode = modeList
		v.prompt = nil
		return v, nil
	case tea.KeyEnter:
		return v.submitPrompt()
	default:
		var cmd tea.Cmd
		v.prompt, cmd = v.prompt.Update(msg)
		return v, cmd
	}
}

// startPrompt switches to a prompt mode.
func (v *View) startPrompt(m mode, label, placeholder string) tea.Cmd {
	v.mode = m
	v.err = nil
	v.info = ""
	v.prompt = input.NewPromptInput(v.styles, label, placeholder)
	v.prompt.SetWidth(v.width)
	return v.prompt.Init()
}

// submitPrompt validates the typed value and starts the transfer.
func (v *View) submitPrompt() (*View, tea.Cmd) {
	value := strings.TrimSpace(v.prompt.Value())
	if v.mode == modeImport && value == "" {
		v.err = errors.New(emptyLinkMessage)
		return v, nil
	}
	if v.mode == modeUpload && value == "" {
		v.err = errors.New(emptyPathMessage)
		return v, nil
	}

	m := v.mode
	v.mode = modeList
	v.prompt = nil
	v.err = nil

	if m == modeUpload {
		return v, v.uploadDocument(value)
	}
	return v, v.importDocument(value)
}

// openDocument returns a command that initialises the document and opens its workspace.
func (v *View) openDocument(docID string) tea.Cmd {
	v.busy = "Initialising document..."
	svc := v.documentService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentOpened{DocumentID: docID, Err: errServiceUnavailable}
		}
		return messages.DocumentOpened{DocumentID: docID, Err: svc.Open(ctx, docID)}
	}
}

// deleteDocument returns a command that deletes the document.
func (v *View) deleteDocument(docID string) tea.Cmd {
	v.busy = "Deleting document..."
	svc := v.documentService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentDeleted{DocumentID: docID, Err: errServiceUnavailable}
		}
		return messages.DocumentDeleted{DocumentID: docID, Err: svc.Delete(ctx, docID)}
	}
}

// uploadDocument returns a command that uploads a local file.
func (v *View) uploadDocument(path string) tea.Cmd {
	v.busy = "Uploading..."
	svc := v.documentService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentUploaded{Path: path, Err: errServiceUnavailable}
		}
		detail, err := svc.Upload(ctx, path)
		return messages.DocumentUploaded{Path: path, Detail: detail, Err: err}
	}
}

// importDocument returns a command that asks the backend to download a link.
func (v *View) importDocument(link string) tea.Cmd {
	v.busy = "Downloading..."
	svc := v.documentService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentImported{Link: link, Err: errServiceUnavailable}
		}
		detail, err := svc.Import(ctx, link)
		return messages.DocumentImported{Link: link, Detail: detail, Err: err}
	}
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
	reserved := 10
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Documents (%d)", len(v.documents))))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	switch v.mode {
	case modeActions:
		b.WriteString(v.renderActionMenu())
		return b.String()
	case modeConfirmDelete:
		b.WriteString(v.renderConfirm())
		return b.String()
	case modeUpload, modeImport:
		b.WriteString(v.prompt.View())
		b.WriteString("\n")
		if v.err != nil {
			b.WriteString("\n")
			b.WriteString(v.styles.Error.Render(v.err.Error()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] submit  [esc] cancel"))
		return b.String()
	case modeList:
	}

	if len(v.documents) == 0 {
		b.WriteString(v.styles.Muted.Render("No documents yet. Press [u] to upload a PDF or [i] to import a link."))
		b.WriteString("\n")
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
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderStatus())
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderStatus renders progress, the last result and the last error.
func (v *View) renderStatus() string {
	switch {
	case v.busy != "":
		return v.styles.Muted.Render(v.busy) + "\n\n"
	case v.err != nil:
		return v.styles.Error.Render(fmt.Sprintf("Error: %s", describe(v.err))) + "\n\n"
	case v.info != "":
		return v.styles.Success.Render(v.info) + "\n\n"
	}
	return ""
}

// renderDocument renders a single document line.
func (v *View) renderDocument(index int, doc *domain.Document) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	name := doc.BaseName()
	if name == "" {
		name = doc.ID
	}

	maxNameLen := v.width - 30
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	ext := doc.Extension()
	created := ""
	if !doc.CreatedAt.IsZero() {
		created = doc.CreatedAt.Format(domain.TimestampLayout)
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %-4s  %s", indicator, maxNameLen, name, ext, created))
	}

	return v.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxNameLen, name)) +
		v.styles.Subtitle.Render(fmt.Sprintf("%-4s", ext)) + "  " +
		v.styles.Muted.Render(created)
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	var b strings.Builder

	if doc := v.SelectedDocument(); doc != nil {
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Actions for: %s", doc.DisplayName)))
		b.WriteString("\n\n")
	}

	options := []struct {
		action ActionOption
		label  string
	}{
		{ActionOpen, "Open"},
		{ActionDelete, "Delete"},
		{ActionCancel, "Cancel"},
	}

	for _, opt := range options {
		if v.menuSelected == opt.action {
			b.WriteString(v.styles.Selected.Render("> " + opt.label))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + opt.label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] select  [esc] cancel"))

	return b.String()
}

// renderConfirm renders the delete confirmation.
func (v *View) renderConfirm() string {
	name := ""
	if doc := v.SelectedDocument(); doc != nil {
		name = doc.DisplayName
	}
	return v.styles.Warning.Render(fmt.Sprintf("Delete %s? This cannot be undone.", name)) +
		"\n\n" + v.styles.Help.Render("[y] yes  [n] no")
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] actions  [u] upload  [i] import  [d] delete  [r] reload  [esc] back")
}

// describe prefers the server's detail over the wrapped error text.
func describe(err error) string {
	if detail := domain.ErrorDetail(err); detail != "" {
		return detail
	}
	return err.Error()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	if v.prompt != nil {
		v.prompt.SetWidth(width)
	}
}

// Documents returns the current list of documents.
func (v *View) Documents() []domain.Document {
	return v.documents
}

// SelectedIndex returns the currently selected document index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedDocument returns the currently selected document.
func (v *View) SelectedDocument() *domain.Document {
	if v.selected >= 0 && v.selected < len(v.documents) {
		return &v.documents[v.selected]
	}
	return nil
}

// IsShowingMenu returns true if the action menu is visible.
func (v *View) IsShowingMenu() bool {
	return v.mode == modeActions
}

// IsConfirming returns true while a delete awaits confirmation.
func (v *View) IsConfirming() bool {
	return v.mode == modeConfirmDelete
}

// IsPrompting returns true while a path or link is being typed.
func (v *View) IsPrompting() bool {
	return v.mode == modeUpload || v.mode == modeImport
}

// Info returns the last success message.
func (v *View) Info() string {
	return v.info
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
