package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// noticeBuffer bounds notices queued while the event loop is busy.
const noticeBuffer = 16

// Ensure Notifier implements the interface.
var _ driven.Notifier = (*Notifier)(nil)

// Notifier delivers core notices to the event loop as messages.NoticeRaised.
// Notify may be called from any goroutine, including tea.Cmd goroutines.
type Notifier struct {
	ch        chan domain.Notice
	done      chan struct{}
	closeOnce sync.Once
}

// NewNotifier creates a notifier with a small buffer.
func NewNotifier() *Notifier {
	return &Notifier{
		ch:   make(chan domain.Notice, noticeBuffer),
		done: make(chan struct{}),
	}
}

// Close releases pending Wait commands. It is safe to call more than once.
func (n *Notifier) Close() {
	n.closeOnce.Do(func() { close(n.done) })
}

// Notify queues a notice. When the buffer is full the notice is logged and dropped.
func (n *Notifier) Notify(notice domain.Notice) {
	select {
	case n.ch <- notice:
	default:
		logger.Warn("Dropping notice %q: buffer full", notice.Message)
	}
}

// Wait returns a command that blocks until the next notice arrives or the
// notifier is closed, in which case it yields no message.
// The app re-issues it after every NoticeRaised.
func (n *Notifier) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case notice := <-n.ch:
			return messages.NoticeRaised{Notice: notice}
		case <-n.done:
			return nil
		}
	}
}
