package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// flexID accepts identifiers encoded either as JSON strings or numbers.
type flexID string

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier must be a string or number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

// backendTime parses the backend's naive timestamps in local time.
type backendTime time.Time

// UnmarshalJSON implements json.Unmarshaler. Unparseable values become the zero time.
func (b *backendTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*b = backendTime{}
		return nil
	}
	*b = backendTime(parseTimestamp(s))
	return nil
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(domain.TimestampLayout, s, time.Local); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return time.Time{}
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// detailResponse is the body of simple mutations.
type detailResponse struct {
	Detail string `json:"detail"`
}

// fileInfo is one element of GET /.
type fileInfo struct {
	FileID    flexID      `json:"file_id"`
	Source    string      `json:"source"`
	CreatedAt backendTime `json:"created_at"`
}

func (f fileInfo) toDomain() domain.Document {
	return domain.Document{
		ID:          string(f.FileID),
		DisplayName: path.Base(strings.ReplaceAll(f.Source, "\\", "/")),
		CreatedAt:   time.Time(f.CreatedAt),
	}
}

// downloadRequest is the body of POST /download/.
type downloadRequest struct {
	URL string `json:"url"`
}

// newSessionResponse is the body of POST /new_session/{file_id}.
type newSessionResponse struct {
	Detail    string `json:"detail"`
	SessionID flexID `json:"session_id"`
}

// sessionInfo is one element of GET /get_all_sessions/{file_id}.
type sessionInfo struct {
	SessionID flexID      `json:"session_id"`
	CreatedAt backendTime `json:"created_at"`
}

// sessionsResponse is the body of GET /get_all_sessions/{file_id}.
type sessionsResponse struct {
	Detail      string        `json:"detail"`
	SessionData []sessionInfo `json:"session_data"`
}

// exchangeInfo is one element of GET /get_all_question_answer/{session_id}.
type exchangeInfo struct {
	Question  string      `json:"question"`
	Answer    string      `json:"answer"`
	Timestamp backendTime `json:"timestamp"`
}

// exchangesResponse is the body of GET /get_all_question_answer/{session_id}.
type exchangesResponse struct {
	Detail string         `json:"detail"`
	Data   []exchangeInfo `json:"data"`
}

// questionRequest is the body of POST /question/{file_id}.
type questionRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
}

// questionResponse is the body of a successful answer.
type questionResponse struct {
	Detail string `json:"detail"`
	Answer string `json:"answer"`
}
