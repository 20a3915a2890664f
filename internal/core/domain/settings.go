package domain

import "time"

// Default settings values.
const (
	DefaultBackendURL        = "http://localhost:8000"
	DefaultBackendTimeout    = 180 * time.Second
	DefaultRequestsPerSecond = 0.0
	DefaultLogFile           = "docchat.log"
)

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Backend BackendSettings
	Notices NoticeSettings
	Log     LogSettings
}

// BackendSettings configures the answering backend connection.
type BackendSettings struct {
	// BaseURL is the backend API root.
	BaseURL string

	// Timeout bounds a single request. Answering can take minutes on first use.
	Timeout time.Duration

	// RequestsPerSecond throttles the client. Zero disables throttling.
	RequestsPerSecond float64
}

// NoticeSettings holds fallback texts for inline failures.
// Server-provided detail takes precedence when present.
type NoticeSettings struct {
	Cancelled   string
	RateLimited string
}

// LogSettings configures the rotating log file.
type LogSettings struct {
	// File is the log file name, relative to the config directory unless absolute.
	File string
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: BackendSettings{
			BaseURL:           DefaultBackendURL,
			Timeout:           DefaultBackendTimeout,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		Notices: NoticeSettings{
			Cancelled:   DefaultCancelledNotice,
			RateLimited: DefaultRateLimitedNotice,
		},
		Log: LogSettings{
			File: DefaultLogFile,
		},
	}
}

// CancelledText returns the configured cancellation notice or the default.
func (n NoticeSettings) CancelledText() string {
	if n.Cancelled == "" {
		return DefaultCancelledNotice
	}
	return n.Cancelled
}

// RateLimitedText returns the configured rate-limit notice or the default.
func (n NoticeSettings) RateLimitedText() string {
	if n.RateLimited == "" {
		return DefaultRateLimitedNotice
	}
	return n.RateLimited
}

// Setting is one dotted key of AppSettings with its current value rendered as text.
type Setting struct {
	Key         string
	Value       string
	Description string
}
