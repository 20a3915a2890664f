package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Keys(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"Quit", km.Quit, []string{"q", "ctrl+c"}},
		{"Help", km.Help, []string{"?"}},
		{"Back", km.Back, []string{"esc"}},
		{"Up", km.Up, []string{"up", "k"}},
		{"Down", km.Down, []string{"down", "j"}},
		{"Select", km.Select, []string{"enter"}},
		{"Submit", km.Submit, []string{"enter"}},
		{"Cancel", km.Cancel, []string{"esc"}},
		{"NewSession", km.NewSession, []string{"ctrl+n"}},
		{"FocusSidebar", km.FocusSidebar, []string{"tab"}},
		{"Delete", km.Delete, []string{"d"}},
		{"Confirm", km.Confirm, []string{"y", "Y"}},
		{"Deny", km.Deny, []string{"n", "N", "esc"}},
		{"Upload", km.Upload, []string{"u"}},
		{"Import", km.Import, []string{"i"}},
		{"Reload", km.Reload, []string{"r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Key, "binding should have help key")
			assert.NotEmpty(t, tt.binding.Help().Desc, "binding should have help text")
		})
	}
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	require.Len(t, bindings, 2)
	assert.Equal(t, km.Quit.Keys(), bindings[0].Keys())
	assert.Equal(t, km.Help.Keys(), bindings[1].Keys())
}

func TestWorkspaceHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.WorkspaceHelp()

	require.Len(t, bindings, 4)
	assert.Equal(t, "ask", bindings[0].Help().Desc)
	assert.Equal(t, "cancel", bindings[1].Help().Desc)
}

func TestSidebarHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.SidebarHelp()

	require.Len(t, bindings, 4)
	assert.Equal(t, "delete", bindings[1].Help().Desc)
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 4)
	assert.Len(t, bindings[0], 4)
	assert.Len(t, bindings[1], 4)
	assert.Len(t, bindings[2], 4)
	assert.Len(t, bindings[3], 2)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("ctrl+n", km.NewSession))
	assert.True(t, Matches("tab", km.FocusSidebar))
	assert.True(t, Matches("Y", km.Confirm))

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("down", km.Up))
	assert.False(t, Matches("y", km.Deny))
}
