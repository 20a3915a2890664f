// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// View is the settings configuration view. Each setting is edited as text
// and converted by the settings service.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings []domain.Setting
	err      error
	saved    string

	selected int
	editing  bool
	input    textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	input := textinput.New()
	input.CharLimit = 512
	input.Width = 60

	return &View{
		styles:          s,
		settingsService: settingsService,
		input:           input,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// Reset leaves edit mode and clears messages.
func (v *View) Reset() {
	v.editing = false
	v.input.Blur()
	v.err = nil
	v.saved = ""
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := svc.List()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// saveSetting returns a command that stores one value.
func (v *View) saveSetting(key, value string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Key: key, Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Key: key, Err: svc.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.settings = msg.Settings
		v.err = nil
		if v.selected >= len(v.settings) {
			v.selected = 0
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.saved = ""
			return v, nil
		}
		v.err = nil
		v.saved = fmt.Sprintf("Saved %s.", msg.Key)
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleKey(msg)
	}

	if v.editing {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKey handles key presses while browsing.
func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(v.settings)-1 {
			v.selected++
		}
	case keyEnter:
		setting := v.SelectedSetting()
		if setting == nil {
			return v, nil
		}
		v.editing = true
		v.saved = ""
		v.err = nil
		v.input.SetValue(setting.Value)
		v.input.CursorEnd()
		return v, v.input.Focus()
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

// handleEditKey handles key presses while a value is edited.
func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.editing = false
		v.input.Blur()
		return v, nil
	case keyEnter:
		setting := v.SelectedSetting()
		v.editing = false
		v.input.Blur()
		if setting == nil {
			return v, nil
		}
		return v, v.saveSetting(setting.Key, strings.TrimSpace(v.input.Value()))
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if len(v.settings) == 0 && v.err == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		b.WriteString("\n")
	}

	keyWidth := 0
	for _, s := range v.settings {
		keyWidth = max(keyWidth, len(s.Key))
	}

	for i, s := range v.settings {
		cursor := "  "
		if i == v.selected {
			cursor = "> "
		}
		label := fmt.Sprintf("%s%-*s  ", cursor, keyWidth, s.Key)

		if i == v.selected && v.editing {
			b.WriteString(v.styles.Selected.Render(label))
			b.WriteString(v.input.View())
		} else if i == v.selected {
			b.WriteString(v.styles.Selected.Render(label + s.Value))
		} else {
			b.WriteString(v.styles.Normal.Render(label))
			b.WriteString(v.styles.Muted.Render(s.Value))
		}
		b.WriteString("\n")
	}

	if s := v.SelectedSetting(); s != nil && s.Description != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(s.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	case v.saved != "":
		b.WriteString(v.styles.Success.Render(v.saved + " Backend changes apply on next start."))
		b.WriteString("\n\n")
	}

	if v.editing {
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] edit  [esc] back"))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	if width > 40 {
		v.input.Width = width - 40
	}
}

// Settings returns the loaded settings.
func (v *View) Settings() []domain.Setting {
	return v.settings
}

// SelectedSetting returns the highlighted setting, or nil if none are loaded.
func (v *View) SelectedSetting() *domain.Setting {
	if v.selected < 0 || v.selected >= len(v.settings) {
		return nil
	}
	return &v.settings[v.selected]
}

// IsEditing returns true while a value is being edited.
func (v *View) IsEditing() bool {
	return v.editing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
