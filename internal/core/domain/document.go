package domain

import (
	"strings"
	"time"
)

// Document represents a file the backend has ingested.
type Document struct {
	// ID is the backend file identifier.
	ID string

	// DisplayName is the original file name, including its extension.
	DisplayName string

	// CreatedAt is when the document was uploaded.
	CreatedAt time.Time
}

// BaseName returns the display name without its final extension.
func (d Document) BaseName() string {
	if i := strings.LastIndex(d.DisplayName, "."); i > 0 {
		return d.DisplayName[:i]
	}
	return d.DisplayName
}

// Extension returns the upper-cased final extension, or an empty string.
func (d Document) Extension() string {
	if i := strings.LastIndex(d.DisplayName, "."); i > 0 && i < len(d.DisplayName)-1 {
		return strings.ToUpper(d.DisplayName[i+1:])
	}
	return ""
}
