package domain

// NoticeLevel grades a user-visible notification.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarning
	NoticeError
)

// String returns the string representation of the level.
func (l NoticeLevel) String() string {
	switch l {
	case NoticeInfo:
		return "info"
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a message the shell must surface to the user.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// InfoNotice creates an informational notice.
func InfoNotice(message string) Notice {
	return Notice{Level: NoticeInfo, Message: message}
}

// ErrorNotice creates an error notice.
func ErrorNotice(message string) Notice {
	return Notice{Level: NoticeError, Message: message}
}
