// Package notify routes core notices to whichever shell is running.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Ensure Dispatcher implements the interface.
var _ driven.Notifier = (*Dispatcher)(nil)

// Dispatcher forwards notices to a replaceable sink. Services are built
// once at startup with the dispatcher; the TUI swaps in its own sink when
// it starts and restores the previous one when it exits.
type Dispatcher struct {
	mu   sync.RWMutex
	sink driven.Notifier
}

// NewDispatcher creates a dispatcher that writes notices to w.
func NewDispatcher(w io.Writer) *Dispatcher {
	return &Dispatcher{sink: WriterSink(w)}
}

// Notify logs the notice and hands it to the current sink.
func (d *Dispatcher) Notify(notice domain.Notice) {
	logger.Debug("Notice (%s): %s", notice.Level, notice.Message)

	d.mu.RLock()
	sink := d.sink
	d.mu.RUnlock()

	if sink != nil {
		sink.Notify(notice)
	}
}

// SetSink replaces the sink and returns the previous one. A nil sink drops notices.
func (d *Dispatcher) SetSink(sink driven.Notifier) driven.Notifier {
	d.mu.Lock()
	defer d.mu.Unlock()
	prev := d.sink
	d.sink = sink
	return prev
}

// WriterSink prints notices as single lines, prefixed with their level
// unless they are informational.
func WriterSink(w io.Writer) driven.Notifier {
	var mu sync.Mutex
	return driven.NotifierFunc(func(notice domain.Notice) {
		mu.Lock()
		defer mu.Unlock()

		if notice.Level == domain.NoticeInfo {
			_, _ = fmt.Fprintln(w, notice.Message)
			return
		}
		_, _ = fmt.Fprintf(w, "%s: %s\n", notice.Level, notice.Message)
	})
}
