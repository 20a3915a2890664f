package input

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/styles"
)

// questionHeight is the number of visible input lines.
const questionHeight = 3

// QuestionInput is the multi-line question box of the workspace.
// Enter is left to the caller; alt+enter and ctrl+j insert a newline.
type QuestionInput struct {
	textarea textarea.Model
	styles   *styles.Styles
	width    int
}

// NewQuestionInput creates a focused question box.
func NewQuestionInput(s *styles.Styles) *QuestionInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ta := textarea.New()
	ta.Placeholder = "Ask a question about this document..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetHeight(questionHeight)
	ta.SetWidth(60)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	ta.Focus()

	return &QuestionInput{
		textarea: ta,
		styles:   s,
		width:    60,
	}
}

// Init initialises the question box.
func (q *QuestionInput) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles input messages.
func (q *QuestionInput) Update(msg tea.Msg) (*QuestionInput, tea.Cmd) {
	var cmd tea.Cmd
	q.textarea, cmd = q.textarea.Update(msg)
	return q, cmd
}

// View renders the question box.
func (q *QuestionInput) View() string {
	return q.styles.InputField.Render(q.textarea.View())
}

// Value returns the typed question.
func (q *QuestionInput) Value() string {
	return q.textarea.Value()
}

// SetValue replaces the typed question.
func (q *QuestionInput) SetValue(value string) {
	q.textarea.SetValue(value)
}

// Focus sets focus on the question box.
func (q *QuestionInput) Focus() tea.Cmd {
	return q.textarea.Focus()
}

// Blur removes focus from the question box.
func (q *QuestionInput) Blur() {
	q.textarea.Blur()
}

// Focused returns whether the question box is focused.
func (q *QuestionInput) Focused() bool {
	return q.textarea.Focused()
}

// SetWidth sets the outer width, border included.
func (q *QuestionInput) SetWidth(width int) {
	q.width = width
	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	q.textarea.SetWidth(inner)
}

// Width returns the current width.
func (q *QuestionInput) Width() int {
	return q.width
}

// Height returns the rendered height, border included.
func (q *QuestionInput) Height() int {
	return questionHeight + 2
}

// Reset clears the question box.
func (q *QuestionInput) Reset() {
	q.textarea.Reset()
}
