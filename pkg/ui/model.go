// Package ui is the interactive radius viewer: token sliders grouped by
// nesting level, a live terminal rendering of the nested shapes, and
// export, copy and help overlays.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/Dicklesworthstone/radius_viewer/pkg/export"
	"github.com/Dicklesworthstone/radius_viewer/pkg/logging"
	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

// Recorder stores a completed export. *history.DB satisfies it.
type Recorder interface {
	Record(ctx context.Context, s model.Snapshot, paths []string) (int64, error)
}

// Options configures a Model. Zero values are usable.
type Options struct {
	Theme     Theme
	ExportDir string
	Formats   []export.Format
	PNGScale  float64
	Recorder  Recorder
	// Copy writes text to the clipboard; nil means the system clipboard.
	Copy func(string) error
	// Now is the clock used for snapshots; nil means time.Now.
	Now func() time.Time
}

// TokensReloadedMsg replaces the token scales, e.g. after the token file
// changed on disk.
type TokensReloadedMsg struct {
	Set tokens.Set
}

// TokensErrorMsg reports a token file that failed to reload.
type TokensErrorMsg struct {
	Err error
}

type exportDoneMsg struct {
	paths []string
	id    int64
	err   error
}

type copyDoneMsg struct {
	err error
}

// Model is the bubbletea model of the viewer.
type Model struct {
	play  model.Playground
	focus control

	keys     KeyMap
	help     help.Model
	overlay  HelpOverlayModel
	prompt   ExportPromptModel
	prompted bool
	json     viewport.Model

	opts  Options
	theme Theme

	status    string
	statusErr bool
	exporting bool

	width  int
	height int
}

// NewModel creates a viewer starting at p.
func NewModel(p model.Playground, opts Options) Model {
	if opts.Theme.Renderer == nil {
		opts.Theme = DefaultTheme(nil)
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []export.Format{export.FormatJSON}
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	keys := DefaultKeyMap()
	m := Model{
		play:    p,
		focus:   ctrlRadius,
		keys:    keys,
		help:    help.New(),
		overlay: NewHelpOverlayModel(keys, opts.Theme),
		json:    viewport.New(44, 12),
		opts:    opts,
		theme:   opts.Theme,
		width:   100,
		height:  40,
	}
	m.refreshJSON()
	return m
}

// Playground returns the current state.
func (m Model) Playground() model.Playground {
	return m.play
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.overlay.SetSize(msg.Width, msg.Height)
		m.prompt.SetWidth(msg.Width)
		m.json.Width = max(20, min(60, msg.Width/2-4))
		m.json.Height = max(5, msg.Height/3)
		return m, nil

	case TokensReloadedMsg:
		m.play = m.play.WithTokens(msg.Set)
		m.refreshJSON()
		m.setStatus(fmt.Sprintf("Tokens reloaded: %d spacing, %d radius", msg.Set.Spacing.Len(), msg.Set.Radii.Len()), false)
		return m, nil

	case TokensErrorMsg:
		m.setStatus("Token reload failed: "+msg.Err.Error(), true)
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.setStatus("Export failed: "+msg.err.Error(), true)
			return m, nil
		}
		text := fmt.Sprintf("Exported %s", strings.Join(msg.paths, ", "))
		if msg.id > 0 {
			text += fmt.Sprintf(" (history #%d)", msg.id)
		}
		m.setStatus(text, false)
		return m, nil

	case copyDoneMsg:
		if msg.err != nil {
			m.setStatus("Copy failed: "+msg.err.Error(), true)
		} else {
			m.setStatus("Copied JSON to clipboard", false)
		}
		return m, nil
	}

	if m.overlay.IsVisible() {
		var cmd tea.Cmd
		m.overlay, cmd = m.overlay.Update(msg)
		return m, cmd
	}

	if m.prompted {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		switch {
		case m.prompt.IsCancelled():
			m.prompted = false
			m.setStatus("Export cancelled", false)
			return m, nil
		case m.prompt.IsSubmitted():
			m.prompted = false
			m.exporting = true
			m.setStatus("Exporting…", false)
			return m, m.exportCmd(m.prompt.Dir())
		}
		return m, cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(km, m.keys.Help):
		m.overlay.Toggle()
	case key.Matches(km, m.keys.Up):
		m.focus = (m.focus + numControls - 1) % numControls
	case key.Matches(km, m.keys.Down):
		m.focus = (m.focus + 1) % numControls
	case key.Matches(km, m.keys.Left):
		m.play = m.focus.step(m.play, -1)
		m.refreshJSON()
	case key.Matches(km, m.keys.Right):
		m.play = m.focus.step(m.play, 1)
		m.refreshJSON()
	case key.Matches(km, m.keys.ZoomIn):
		m.play = ctrlZoom.step(m.play, 1)
	case key.Matches(km, m.keys.ZoomOut):
		m.play = ctrlZoom.step(m.play, -1)
	case key.Matches(km, m.keys.Tab):
		m.play = m.play.WithTab(m.play.Sel.Tab.Next())
	case key.Matches(km, m.keys.Export):
		if m.exporting {
			return m, nil
		}
		m.prompt = NewExportPromptModel(m.opts.ExportDir, m.opts.Formats, m.theme)
		m.prompt.SetWidth(m.width)
		m.prompted = true
		return m, m.prompt.Init()
	case key.Matches(km, m.keys.Copy):
		return m, m.copyCmd()
	case key.Matches(km, m.keys.PageUp), key.Matches(km, m.keys.PageDown):
		var cmd tea.Cmd
		m.json, cmd = m.json.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
	if isErr {
		logging.Logger().Warn("ui status", "msg", s)
	}
}

func (m Model) snapshot() model.Snapshot {
	return m.play.Snapshot(m.opts.Now())
}

// documentJSON encodes the current export document.
func (m Model) documentJSON() ([]byte, error) {
	s := m.snapshot()
	return export.NewDocument(s, s.Taken).EncodeJSON()
}

func (m *Model) refreshJSON() {
	js, err := m.documentJSON()
	if err != nil {
		m.json.SetContent(err.Error())
		return
	}
	m.json.SetContent(string(js))
}

func (m Model) exportCmd(dir string) tea.Cmd {
	s := m.snapshot()
	opts := export.Options{
		Dir:      dir,
		Formats:  m.opts.Formats,
		Now:      s.Taken,
		PNGScale: m.opts.PNGScale,
	}
	rec := m.opts.Recorder
	return func() tea.Msg {
		ctx := context.Background()
		paths, err := export.Save(ctx, s, opts)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		var id int64
		if rec != nil {
			id, err = rec.Record(ctx, s, paths)
			if err != nil {
				// The files are on disk; a history failure only loses the log entry.
				logging.Logger().Warn("record export", "err", err)
			}
		}
		return exportDoneMsg{paths: paths, id: id}
	}
}

func (m Model) copyCmd() tea.Cmd {
	js, err := m.documentJSON()
	copyFn := m.opts.Copy
	return func() tea.Msg {
		if err != nil {
			return copyDoneMsg{err: err}
		}
		return copyDoneMsg{err: copyFn(string(js))}
	}
}

// View implements tea.Model
func (m Model) View() string {
	if m.overlay.IsVisible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.overlay.View())
	}
	if m.prompted {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.prompt.View())
	}

	header := m.renderHeader()
	controls := m.renderControls()

	controlsWidth := lipgloss.Width(controls)
	previewWidth := m.width - controlsWidth - SpaceLG
	stacked := previewWidth < 40
	if stacked {
		previewWidth = m.width
	}
	preview := m.renderPreview(previewWidth)

	var body string
	if stacked {
		body = lipgloss.JoinVertical(lipgloss.Left, controls, "", preview)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, controls, strings.Repeat(" ", SpaceLG), preview)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		RenderDivider(m.width, m.theme),
		body,
		"",
		m.renderStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) renderHeader() string {
	title := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Primary).Render("Radius Viewer")
	tabs := RenderTab("Primitives", m.play.Sel.Tab == model.TabPrimitives, m.theme) +
		RenderTab("UI preview", m.play.Sel.Tab == model.TabPreview, m.theme)
	return title + strings.Repeat(" ", SpaceMD) + tabs
}

// renderControls draws the slider groups, outermost level first.
func (m Model) renderControls() string {
	s := m.snapshot()
	groupStyle := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Text)
	radiusStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Secondary)

	var b strings.Builder
	group := func(l model.Level) {
		b.WriteString(groupStyle.Render(fmt.Sprintf("Level %d · %s", int(l), l.Title())))
		b.WriteString(radiusStyle.Render("  radius " + tokens.Label(s.RadiusOf(l))))
		b.WriteString("\n")
	}

	var current model.Level = -1
	for c := control(0); c < numControls; c++ {
		if l := c.level(); l != current && l != 0 {
			if current != -1 {
				b.WriteString("\n")
			}
			group(l)
			current = l
		}
		if c == ctrlZoom {
			b.WriteString("\n")
			group(model.Level1)
			b.WriteString("\n")
			b.WriteString(groupStyle.Render("View"))
			b.WriteString("\n")
		}
		b.WriteString(m.renderSlider(c))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderSlider(c control) string {
	focused := c == m.focus
	marker := "  "
	labelStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)
	if focused {
		marker = m.theme.Renderer.NewStyle().Foreground(m.theme.Primary).Render("▸ ")
		labelStyle = labelStyle.Foreground(m.theme.Text).Bold(true)
	}
	pos, n := c.position(m.play)
	value := truncate.StringWithTail(c.value(m.play), valueWidth, "…")
	return marker +
		labelStyle.Render(runewidth.FillRight(c.label(), labelWidth)) +
		RenderTrack(pos, n, trackWidth, focused, m.theme) +
		" " + value
}

func (m Model) renderPreview(width int) string {
	s := m.snapshot()
	if m.play.Sel.Tab == model.TabPreview {
		pane := m.theme.Renderer.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(m.theme.Border).
			Render(m.json.View())
		return lipgloss.JoinVertical(lipgloss.Left,
			RenderMockup(s, m.play.Sel.Zoom, width, m.theme),
			"",
			pane,
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderShapes(s, m.play.Sel.Zoom, width, m.theme),
		"",
		RenderLegend(s, m.theme),
	)
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	fg := m.theme.Success
	if m.statusErr {
		fg = m.theme.Danger
	}
	text := m.status
	if m.width > 0 {
		text = truncate.StringWithTail(text, uint(m.width), "…")
	}
	return m.theme.Renderer.NewStyle().Foreground(fg).Render(text)
}
