package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Location
	}{
		{"root", "/", Location{Path: "/"}},
		{"empty is root", "", Location{Path: "/"}},
		{"workspace", "/workspace/doc-1", Location{Path: "/workspace/doc-1", DocumentID: "doc-1"}},
		{
			"workspace with session",
			"/workspace/doc-1?session_id=s1",
			Location{Path: "/workspace/doc-1", DocumentID: "doc-1", SessionID: "s1"},
		},
		{"session on root dropped", "/?session_id=s1", Location{Path: "/"}},
		{"session on other path dropped", "/other?session_id=x", Location{Path: "/other"}},
		{"session on empty workspace dropped", "/workspace/?session_id=x", Location{Path: "/workspace/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseLocation(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, loc)
		})
	}
}

func TestParseLocation_Invalid(t *testing.T) {
	_, err := ParseLocation("%zz")
	assert.Error(t, err)
}

func TestLocation_String(t *testing.T) {
	assert.Equal(t, "/", Location{}.String())
	assert.Equal(t, "/workspace/doc-1", WorkspaceLocation("doc-1").String())
	assert.Equal(t, "/workspace/doc-1?session_id=s1", WorkspaceLocation("doc-1").WithSession("s1").String())
}

func TestLocation_RoundTrip(t *testing.T) {
	loc := WorkspaceLocation("report 2024.pdf").WithSession("a&b")

	parsed, err := ParseLocation(loc.String())

	require.NoError(t, err)
	assert.Equal(t, loc, parsed)
}

func TestLocation_WithoutQuery(t *testing.T) {
	loc := WorkspaceLocation("doc-1").WithSession("s1").WithoutQuery()

	assert.Empty(t, loc.SessionID)
	assert.Equal(t, "doc-1", loc.DocumentID)
	assert.False(t, loc.IsRoot())
	assert.True(t, Location{Path: RootPath}.IsRoot())
}

func TestFlight_Await(t *testing.T) {
	q := Question{DocumentID: "doc-1", SessionID: "s1", Text: "why?"}

	ok := NewFlight(3, 7, q, func() (string, error) { return "because", nil }).Await()
	assert.Equal(t, Completion{LocalID: 3, Generation: 7, SessionID: "s1", Answer: "because"}, ok)

	boom := errors.New("boom")
	failed := NewFlight(4, 8, q, func() (string, error) { return "", boom }).Await()
	assert.Equal(t, uint64(4), failed.LocalID)
	assert.ErrorIs(t, failed.Err, boom)
}
