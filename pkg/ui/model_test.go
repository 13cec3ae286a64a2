package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/radius_viewer/pkg/export"
	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

// keyMsg creates a tea.KeyMsg for testing
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

var fixedNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	opts.Now = func() time.Time { return fixedNow }
	p := model.NewPlayground(tokens.Default(), model.DefaultSelection())
	return NewModel(p, opts)
}

// send feeds msgs through Update and returns the resulting model and the
// last command.
func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestFocusWraps(t *testing.T) {
	m := newTestModel(t, Options{})
	if m.focus != ctrlRadius {
		t.Fatalf("initial focus = %d, want radius", m.focus)
	}

	m, _ = send(t, m, keyMsg("k"), keyMsg("k"))
	if m.focus != ctrlZoom {
		t.Errorf("focus after two ups = %d, want zoom", m.focus)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.focus != ctrlOuterPadding {
		t.Errorf("focus after down from zoom = %d, want outer padding", m.focus)
	}
}

func TestStepRadiusUpdatesLevels(t *testing.T) {
	m := newTestModel(t, Options{})
	before := m.Playground().Levels()

	m, _ = send(t, m, keyMsg("l"))
	after := m.Playground().Levels()

	if after.Level3 <= before.Level3 {
		t.Errorf("radius did not increase: %v -> %v", before.Level3, after.Level3)
	}
	if after.Level4 <= before.Level4 {
		t.Errorf("outer radius did not follow: %v -> %v", before.Level4, after.Level4)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Playground().Sel != model.DefaultSelection() {
		t.Errorf("step back did not restore the default selection: %+v", m.Playground().Sel)
	}
}

func TestStepClampsAtEnds(t *testing.T) {
	m := newTestModel(t, Options{})
	for i := 0; i < 40; i++ {
		m, _ = send(t, m, keyMsg("h"))
	}
	if got := m.Playground().Sel.Radius; got != 0 {
		t.Errorf("radius index = %d, want 0", got)
	}
	for i := 0; i < 40; i++ {
		m, _ = send(t, m, keyMsg("l"))
	}
	if got, want := m.Playground().Sel.Radius, tokens.Radii().Len()-1; got != want {
		t.Errorf("radius index = %d, want %d", got, want)
	}
	if !strings.Contains(m.View(), "circular") {
		t.Error("view does not mention circular at the top of the radius scale")
	}
}

func TestZoomKeys(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(t, m, keyMsg("+"))
	if got := m.Playground().Sel.Zoom; got != 225 {
		t.Errorf("zoom = %d, want 225", got)
	}
	for i := 0; i < 20; i++ {
		m, _ = send(t, m, keyMsg("-"))
	}
	if got := m.Playground().Sel.Zoom; got != model.MinZoom {
		t.Errorf("zoom = %d, want %d", got, model.MinZoom)
	}
}

func TestTabSwitchesPreview(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Playground().Sel.Tab != model.TabPreview {
		t.Fatalf("tab = %s, want preview", m.Playground().Sel.Tab)
	}
	view := m.View()
	if !strings.Contains(view, "Button") || !strings.Contains(view, "calculatedBorderRadius") {
		t.Errorf("preview tab should show the mockup and JSON pane:\n%s", view)
	}
}

func TestHelpOverlayClosesOnAnyKey(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(t, m, keyMsg("?"))
	if !m.overlay.IsVisible() {
		t.Fatal("help overlay not shown")
	}
	if !strings.Contains(m.View(), "Radius Viewer Help") {
		t.Error("view does not render the overlay")
	}

	// The key that closes the overlay must not also move a slider.
	m, _ = send(t, m, keyMsg("l"))
	if m.overlay.IsVisible() {
		t.Error("help overlay still visible")
	}
	if m.Playground().Sel != model.DefaultSelection() {
		t.Error("closing key leaked to the sliders")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, Options{})
	_, cmd := send(t, m, keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not produce tea.QuitMsg")
	}
}

type fakeRecorder struct {
	paths []string
	err   error
}

func (f *fakeRecorder) Record(_ context.Context, _ model.Snapshot, paths []string) (int64, error) {
	f.paths = paths
	return 7, f.err
}

func TestExportFlow(t *testing.T) {
	dir := t.TempDir()
	rec := &fakeRecorder{}
	m := newTestModel(t, Options{
		ExportDir: dir,
		Formats:   []export.Format{export.FormatJSON, export.FormatSVG},
		Recorder:  rec,
	})

	m, _ = send(t, m, keyMsg("e"))
	if !m.prompted {
		t.Fatal("export prompt not shown")
	}
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.prompted || !m.exporting {
		t.Fatalf("after enter: prompted=%v exporting=%v", m.prompted, m.exporting)
	}
	if cmd == nil {
		t.Fatal("expected export command")
	}

	m, _ = send(t, m, cmd())
	if m.statusErr {
		t.Fatalf("export failed: %s", m.status)
	}
	if !strings.Contains(m.status, "history #7") {
		t.Errorf("status = %q, want history id", m.status)
	}
	if len(rec.paths) != 2 {
		t.Fatalf("recorded %d paths, want 2", len(rec.paths))
	}
	for _, p := range rec.paths {
		if filepath.Dir(p) != dir {
			t.Errorf("export written to %s, want %s", p, dir)
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing export file: %v", err)
		}
	}
}

func TestExportCancel(t *testing.T) {
	m := newTestModel(t, Options{ExportDir: t.TempDir()})
	m, _ = send(t, m, keyMsg("e"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.prompted || m.exporting {
		t.Errorf("prompted=%v exporting=%v after esc", m.prompted, m.exporting)
	}
	if m.status != "Export cancelled" {
		t.Errorf("status = %q", m.status)
	}
}

func TestExportErrorShown(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(t, m, exportDoneMsg{err: errors.New("disk full")})
	if !m.statusErr || !strings.Contains(m.status, "disk full") {
		t.Errorf("status = %q (err=%v)", m.status, m.statusErr)
	}
}

func TestCopyJSON(t *testing.T) {
	var copied string
	m := newTestModel(t, Options{Copy: func(s string) error {
		copied = s
		return nil
	}})

	m, cmd := send(t, m, keyMsg("y"))
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	m, _ = send(t, m, cmd())

	if !strings.Contains(copied, `"calculatedBorderRadius": "32px"`) {
		t.Errorf("copied text missing level 4 radius:\n%s", copied)
	}
	if m.status != "Copied JSON to clipboard" {
		t.Errorf("status = %q", m.status)
	}
}

func TestCopyFailure(t *testing.T) {
	m := newTestModel(t, Options{Copy: func(string) error { return errors.New("no clipboard") }})
	m, cmd := send(t, m, keyMsg("y"))
	m, _ = send(t, m, cmd())
	if !m.statusErr {
		t.Errorf("expected error status, got %q", m.status)
	}
}

func TestTokensReloadClampsIndices(t *testing.T) {
	m := newTestModel(t, Options{})
	small := tokens.Set{
		Spacing: tokens.Scale{Name: "spacing", Tokens: []tokens.Token{{Name: "none", Value: 0}, {Name: "s", Value: 4}}},
		Radii:   tokens.Scale{Name: "radius", Tokens: []tokens.Token{{Name: "none", Value: 0}, {Name: "m", Value: 8}}},
	}
	m, _ = send(t, m, TokensReloadedMsg{Set: small})

	sel := m.Playground().Sel
	if sel.Radius != 1 || sel.Padding != 1 || sel.OuterPadding != 1 || sel.ChildPadding != 1 {
		t.Errorf("indices not clamped: %+v", sel)
	}
	if !strings.Contains(m.status, "Tokens reloaded") {
		t.Errorf("status = %q", m.status)
	}

	m, _ = send(t, m, TokensErrorMsg{Err: errors.New("bad yaml")})
	if !m.statusErr {
		t.Error("token error not shown as error")
	}
}

func TestWindowResizeStacksNarrowLayout(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 50})
	if view := m.View(); !strings.Contains(view, "Level 4") {
		t.Errorf("narrow view missing controls:\n%s", view)
	}
}

func TestControlsZoomUnderViewHeading(t *testing.T) {
	m := newTestModel(t, Options{})
	lines := strings.Split(m.renderControls(), "\n")

	find := func(prefix string) int {
		for i, l := range lines {
			if strings.Contains(l, prefix) {
				return i
			}
		}
		return -1
	}
	level1, view, zoom := find("Level 1"), find("View"), find("Zoom")
	if level1 < 0 || view < 0 || zoom < 0 {
		t.Fatalf("missing rows (level1=%d view=%d zoom=%d):\n%s", level1, view, zoom, strings.Join(lines, "\n"))
	}
	if !(level1 < view && view < zoom) {
		t.Errorf("zoom should follow its own View heading, got level1=%d view=%d zoom=%d", level1, view, zoom)
	}
	for _, l := range lines[level1+1 : view] {
		if strings.TrimSpace(l) != "" {
			t.Errorf("unexpected row under Level 1: %q", l)
		}
	}
}
