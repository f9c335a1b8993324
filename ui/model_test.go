package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoonderkins/claude-confirm/core/types"
)

func strPtr(s string) *string { return &s }

func sampleRequest() *types.PopupRequest {
	return &types.PopupRequest{
		ID:      "req-1",
		Message: "## Done\n- fixed **parser**",
		Sections: []types.Section{
			{Title: "Fix bug", Content: "Null check", Selected: true},
			{Title: "Add tests", Content: "Parser coverage", Selected: false},
			{Title: "Update docs", Content: "README", Selected: true},
		},
		IsMarkdown: true,
		EnvContext: &types.EnvContext{ProjectName: strPtr("widgets"), Cwd: strPtr("/work/widgets")},
	}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestModelConfirmsInitialSelection(t *testing.T) {
	m := NewModel(sampleRequest())

	cmd := press(m, "enter")
	require.NotNil(t, cmd)
	assert.True(t, m.Done())

	resp := m.Response()
	assert.True(t, resp.Confirmed)
	assert.Equal(t, []int{0, 2}, resp.SelectedSections)
	assert.Equal(t, "", resp.UserInput)
	assert.Equal(t, []string{}, resp.Images)
}

func TestModelToggleAndMove(t *testing.T) {
	m := NewModel(sampleRequest())

	press(m, "down", "space", "down", "x", "up", "up", "up", "space")
	press(m, "y")

	assert.Equal(t, []int{1}, m.Response().SelectedSections)
}

func TestModelSelectAllAndNone(t *testing.T) {
	m := NewModel(sampleRequest())
	press(m, "a", "enter")
	assert.Equal(t, []int{0, 1, 2}, m.Response().SelectedSections)

	m = NewModel(sampleRequest())
	press(m, "n", "enter")
	resp := m.Response()
	assert.True(t, resp.Confirmed)
	assert.Equal(t, []int{}, resp.SelectedSections)
}

func TestModelGroupedRunes(t *testing.T) {
	m := NewModel(sampleRequest())
	press(m, "jxy")

	assert.True(t, m.Done())
	assert.Equal(t, []int{0, 1, 2}, m.Response().SelectedSections)
}

func TestModelCancel(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			m := NewModel(sampleRequest())
			cmd := press(m, key)
			require.NotNil(t, cmd)
			assert.True(t, m.Done())
			assert.True(t, m.Response().IsCancelled())
			assert.Equal(t, []int{}, m.Response().SelectedSections)
		})
	}
}

func TestModelUndecidedIsCancelled(t *testing.T) {
	m := NewModel(sampleRequest())
	press(m, "down")
	assert.False(t, m.Done())
	assert.True(t, m.Response().IsCancelled())
}

func TestModelUserInput(t *testing.T) {
	m := NewModel(sampleRequest())

	press(m, "i", "also", "space", "bump", "x", "backspace", "enter")
	// q typed while editing is text, not cancel
	press(m, "i", "space", "q", "enter")
	assert.False(t, m.Done())

	press(m, "enter")
	assert.Equal(t, "also bump q", m.Response().UserInput)
}

func TestModelUserInputDiscard(t *testing.T) {
	m := NewModel(sampleRequest())
	press(m, "i", "draft", "esc", "enter")
	assert.Equal(t, "", m.Response().UserInput)
}

func TestModelAttachImage(t *testing.T) {
	image := filepath.Join(t.TempDir(), "shot.png")
	require.NoError(t, os.WriteFile(image, []byte("png"), 0644))

	m := NewModel(sampleRequest())
	press(m, "p", image, "enter")
	assert.Contains(t, m.View(), "Images: 1 attached")

	press(m, "p", filepath.Join(t.TempDir(), "missing.png"), "enter")
	assert.Contains(t, m.View(), "not an image file")
	press(m, "esc")

	press(m, "enter")
	assert.Equal(t, []string{image}, m.Response().Images)
}

func TestModelView(t *testing.T) {
	m := NewModel(sampleRequest())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	assert.Contains(t, view, "project: widgets")
	assert.Contains(t, view, "cwd: /work/widgets")
	assert.Contains(t, view, "[x] 1.")
	assert.Contains(t, view, "[ ] 2.")
	assert.Contains(t, view, "Fix bug")
	assert.Contains(t, view, "Parser coverage")
	assert.NotContains(t, view, "**", "markdown marks are rendered")

	press(m, "enter")
	assert.Empty(t, m.View())
}

func TestModelNoSections(t *testing.T) {
	m := NewModel(&types.PopupRequest{ID: "x", Message: "plain", Sections: []types.Section{}})
	press(m, "space", "down", "enter")

	resp := m.Response()
	assert.True(t, resp.Confirmed)
	assert.Empty(t, resp.SelectedSections)
}
