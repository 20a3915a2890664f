package domain

import (
	"net/url"
	"strings"
)

// Route paths and parameters.
const (
	RootPath         = "/"
	WorkspacePrefix  = "/workspace/"
	SessionParameter = "session_id"
)

// Location is the navigation state the active session is derived from.
type Location struct {
	// Path is the URL path, either RootPath or a workspace path.
	Path string

	// DocumentID is the document of a workspace path, empty at the root.
	DocumentID string

	// SessionID is the session_id query parameter, empty when absent.
	SessionID string
}

// ParseLocation parses a URL such as /workspace/doc-1?session_id=s1.
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, err
	}

	path := u.Path
	if path == "" {
		path = RootPath
	}

	loc := Location{Path: path}
	if strings.HasPrefix(path, WorkspacePrefix) {
		loc.DocumentID = strings.TrimPrefix(path, WorkspacePrefix)
	}
	// A session only exists inside a document workspace.
	if loc.DocumentID != "" {
		loc.SessionID = u.Query().Get(SessionParameter)
	}
	return loc, nil
}

// WorkspaceLocation returns the sessionless workspace of a document.
func WorkspaceLocation(documentID string) Location {
	return Location{Path: WorkspacePrefix + documentID, DocumentID: documentID}
}

// IsRoot reports whether the location is the document list.
func (l Location) IsRoot() bool {
	return l.DocumentID == ""
}

// WithSession returns the location with only the session parameter set.
func (l Location) WithSession(sessionID string) Location {
	l.SessionID = sessionID
	return l
}

// WithoutQuery returns the location with all query state dropped.
func (l Location) WithoutQuery() Location {
	l.SessionID = ""
	return l
}

// String formats the location as a URL.
func (l Location) String() string {
	path := l.Path
	if path == "" {
		path = RootPath
	}
	u := url.URL{Path: path}
	if l.SessionID != "" {
		params := url.Values{}
		params.Set(SessionParameter, l.SessionID)
		u.RawQuery = params.Encode()
	}
	return u.String()
}
