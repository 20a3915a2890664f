package driven

import "github.com/custodia-labs/docchat-cli/internal/core/domain"

// Notifier surfaces notices to the user. Implementations must not block.
type Notifier interface {
	Notify(notice domain.Notice)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(notice domain.Notice)

// Notify calls f(notice).
func (f NotifierFunc) Notify(notice domain.Notice) {
	f(notice)
}
