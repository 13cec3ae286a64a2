package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/radius_viewer/pkg/export"
)

// ExportPromptModel asks for the directory an export is written to
type ExportPromptModel struct {
	input   textinput.Model
	formats []export.Format
	width   int
	theme   Theme

	// Result
	submitted bool
	cancelled bool
}

// NewExportPromptModel creates the prompt prefilled with dir
func NewExportPromptModel(dir string, formats []export.Format, theme Theme) ExportPromptModel {
	ti := textinput.New()
	ti.Placeholder = "."
	ti.Prompt = "dir › "
	ti.CharLimit = 512
	ti.Width = 40
	ti.SetValue(dir)
	ti.Focus()

	return ExportPromptModel{
		input:   ti,
		formats: formats,
		theme:   theme,
	}
}

// Init implements tea.Model
func (m ExportPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input
func (m ExportPromptModel) Update(msg tea.Msg) (ExportPromptModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.cancelled = true
			return m, nil
		case "enter":
			m.submitted = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt box
func (m ExportPromptModel) View() string {
	var b strings.Builder

	width := 56
	if m.width > 0 && m.width < 66 {
		width = m.width - 10
	}

	titleStyle := m.theme.Renderer.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary).
		Width(width).
		Align(lipgloss.Center)
	b.WriteString(titleStyle.Render("Export configuration"))
	b.WriteString("\n\n")

	names := make([]string, len(m.formats))
	for i, f := range m.formats {
		names[i] = string(f)
	}
	promptStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)
	b.WriteString(promptStyle.Render("Formats: " + strings.Join(names, ", ")))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	hintStyle := m.theme.Renderer.NewStyle().Faint(true)
	b.WriteString(hintStyle.Render("[Enter] Export  [Esc] Cancel"))

	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2).
		Width(width)

	return boxStyle.Render(b.String())
}

// SetWidth sets the modal width
func (m *ExportPromptModel) SetWidth(width int) {
	m.width = width
	w := width - 24
	if w < 20 {
		w = 20
	}
	if w > 40 {
		w = 40
	}
	m.input.Width = w
}

// IsSubmitted returns true if the user confirmed the export
func (m ExportPromptModel) IsSubmitted() bool {
	return m.submitted
}

// IsCancelled returns true if the user cancelled
func (m ExportPromptModel) IsCancelled() bool {
	return m.cancelled
}

// Dir returns the entered directory, "." when left empty
func (m ExportPromptModel) Dir() string {
	if d := strings.TrimSpace(m.input.Value()); d != "" {
		return d
	}
	return "."
}
