package ui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zoonderkins/claude-confirm/core/types"
)

// mode is what keystrokes currently edit
type mode int

const (
	modeSelect mode = iota
	modeInput
	modeImage
)

const helpText = "↑/↓ move • space toggle • a all • n none • i note • p attach image • enter confirm • q cancel"

// Model is the bubbletea model of the confirmation prompt
type Model struct {
	req      *types.PopupRequest
	selected []bool
	cursor   int
	mode     mode
	buffer   []rune

	userInput string
	images    []string

	status string
	width  int

	done     bool
	response types.UserResponse
}

// NewModel creates a prompt for req with the sections' initial selection
func NewModel(req *types.PopupRequest) *Model {
	selected := make([]bool, len(req.Sections))
	for i, section := range req.Sections {
		selected[i] = section.Selected
	}
	return &Model{
		req:      req,
		selected: selected,
		response: types.Cancelled(),
	}
}

// Response returns the user's answer; cancelled until the user confirms
func (m *Model) Response() types.UserResponse {
	return m.response
}

// Done reports whether the user confirmed or cancelled
func (m *Model) Done() bool {
	return m.done
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == modeSelect {
			return m, m.handleSelectKey(msg)
		}
		return m, m.handleEditKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m *Model) handleSelectKey(msg tea.KeyMsg) tea.Cmd {
	// typed-ahead keys can arrive grouped in one message
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		for _, r := range msg.Runes {
			if m.mode != modeSelect || m.done {
				break
			}
			if cmd := m.handleSelectKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}); cmd != nil {
				return cmd
			}
		}
		return nil
	}

	switch msg.String() {
	case "ctrl+c", "ctrl+d", "q", "esc":
		return m.cancel()
	case "enter", "y":
		return m.confirm()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.selected)-1 {
			m.cursor++
		}
	case " ", "x":
		if len(m.selected) > 0 {
			m.selected[m.cursor] = !m.selected[m.cursor]
		}
	case "a":
		m.setAll(true)
	case "n":
		m.setAll(false)
	case "i":
		m.mode = modeInput
		m.buffer = []rune(m.userInput)
		m.status = ""
	case "p":
		m.mode = modeImage
		m.buffer = nil
		m.status = ""
	}
	return nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.cancel()
	case tea.KeyEsc:
		m.mode = modeSelect
		m.buffer = nil
	case tea.KeyEnter:
		m.commitBuffer()
	case tea.KeyBackspace:
		if len(m.buffer) > 0 {
			m.buffer = m.buffer[:len(m.buffer)-1]
		}
	case tea.KeySpace:
		m.buffer = append(m.buffer, ' ')
	case tea.KeyRunes:
		m.buffer = append(m.buffer, msg.Runes...)
	}
	return nil
}

func (m *Model) commitBuffer() {
	value := strings.TrimSpace(string(m.buffer))
	switch m.mode {
	case modeInput:
		m.userInput = value
	case modeImage:
		if value == "" {
			break
		}
		info, err := os.Stat(value)
		if err != nil || info.IsDir() {
			m.status = fmt.Sprintf("not an image file: %s", value)
			return
		}
		m.images = append(m.images, value)
		m.status = fmt.Sprintf("attached %s", value)
	}
	m.mode = modeSelect
	m.buffer = nil
}

func (m *Model) setAll(value bool) {
	for i := range m.selected {
		m.selected[i] = value
	}
}

func (m *Model) cancel() tea.Cmd {
	m.done = true
	m.response = types.Cancelled()
	return tea.Quit
}

func (m *Model) confirm() tea.Cmd {
	indices := []int{}
	for i, selected := range m.selected {
		if selected {
			indices = append(indices, i)
		}
	}
	m.done = true
	m.response = types.Confirmed(indices, m.userInput, m.images)
	return tea.Quit
}

func (m *Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(HeaderStyle().Render("Claude Confirm") + "\n")
	if line := contextLine(m.req.EnvContext); line != "" {
		b.WriteString(ContextStyle().Render(line) + "\n")
	}
	b.WriteString("\n")

	message := m.req.Message
	if m.req.IsMarkdown {
		message = RenderMarkdown(message)
	}
	b.WriteString(MessageStyle(m.width).Render(message) + "\n\n")

	for i, section := range m.req.Sections {
		pointer := "  "
		if i == m.cursor && m.mode == modeSelect {
			pointer = "> "
		}
		box := "[ ]"
		if m.selected[i] {
			box = "[x]"
		}
		title := SectionTitleStyle(m.selected[i], i == m.cursor).Render(section.Title)
		fmt.Fprintf(&b, "%s%s %d. %s\n", pointer, box, i+1, title)
		b.WriteString(SectionContentStyle().Render(section.Content) + "\n")
	}

	if m.userInput != "" {
		b.WriteString("\n" + InputStyle().Render("Note: "+m.userInput) + "\n")
	}
	if len(m.images) > 0 {
		b.WriteString(InputStyle().Render(fmt.Sprintf("Images: %d attached", len(m.images))) + "\n")
	}

	switch m.mode {
	case modeInput:
		b.WriteString("\n" + InputStyle().Render("Note> "+string(m.buffer)+"█") + "\n")
		b.WriteString(StatusStyle(m.width).Render("enter save • esc discard") + "\n")
	case modeImage:
		b.WriteString("\n" + InputStyle().Render("Image path> "+string(m.buffer)+"█") + "\n")
		b.WriteString(StatusStyle(m.width).Render("enter attach • esc discard") + "\n")
	default:
		b.WriteString("\n" + StatusStyle(m.width).Render(helpText) + "\n")
	}

	if m.status != "" {
		b.WriteString(NoticeStyle().Render(m.status) + "\n")
	}

	return b.String()
}

func contextLine(env *types.EnvContext) string {
	if env == nil {
		return ""
	}
	var parts []string
	if env.ProjectName != nil && *env.ProjectName != "" {
		parts = append(parts, "project: "+*env.ProjectName)
	}
	if env.Cwd != nil && *env.Cwd != "" {
		parts = append(parts, "cwd: "+*env.Cwd)
	}
	if env.Terminal != nil && *env.Terminal != "" {
		parts = append(parts, "terminal: "+*env.Terminal)
	}
	if env.PID != nil {
		parts = append(parts, fmt.Sprintf("pid: %d", *env.PID))
	}
	return strings.Join(parts, " • ")
}
