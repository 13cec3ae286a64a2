package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/radius_viewer/pkg/export"
	"github.com/Dicklesworthstone/radius_viewer/pkg/history"
	"github.com/Dicklesworthstone/radius_viewer/pkg/logging"
	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
	"github.com/Dicklesworthstone/radius_viewer/pkg/radius"
	"github.com/Dicklesworthstone/radius_viewer/pkg/sweep"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
	"github.com/Dicklesworthstone/radius_viewer/pkg/ui"
	"github.com/Dicklesworthstone/radius_viewer/pkg/watcher"
	"github.com/Dicklesworthstone/radius_viewer/pkg/wizard"
)

func isTTY(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w when it is a terminal, else fallback.
func terminalWidth(w io.Writer, fallback int) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return fallback
}

func cmdDefault(ctx context.Context, o *options, stdout io.Writer) error {
	e, err := load(o)
	if err != nil {
		return err
	}
	if !isTTY(stdout) {
		return printLevels(stdout, e.play.Snapshot(time.Now()))
	}
	return runViewer(ctx, e, o)
}

// printLevels writes the inputs and the four derived radii.
func printLevels(w io.Writer, s model.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "radius\t%s\t%s\n", s.Radius.Name, tokens.Label(s.Radius.Value))
	fmt.Fprintf(tw, "padding\t%s\t%s\n", s.Padding.Name, tokens.Format(s.Padding.Value))
	fmt.Fprintf(tw, "child padding\t%s\t%s\n", s.ChildPadding.Name, tokens.Format(s.ChildPadding.Value))
	fmt.Fprintf(tw, "outer padding\t%s\t%s\n", s.OuterPadding.Name, tokens.Format(s.OuterPadding.Value))
	fmt.Fprintf(tw, "size\t\t%s\n", tokens.Format(s.Config.Size))
	fmt.Fprintln(tw)
	for _, l := range []model.Level{model.Level4, model.Level3, model.Level2, model.Level1} {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Key(), l.Title(), tokens.Label(s.RadiusOf(l)))
	}
	return tw.Flush()
}

// cmdCalc computes levels from raw pixel values when given as arguments
// (radius padding child-padding outer-padding [size]), else from the
// selected tokens.
func cmdCalc(o *options, stdout io.Writer) error {
	if len(o.args) == 0 {
		e, err := load(o)
		if err != nil {
			return err
		}
		return printLevels(stdout, e.play.Snapshot(time.Now()))
	}
	if len(o.args) < 4 || len(o.args) > 5 {
		return fmt.Errorf("calc takes 4 or 5 pixel values (radius padding child-padding outer-padding [size]): %w", errUsage)
	}

	vals := make([]float64, len(o.args))
	for i, a := range o.args {
		v, err := tokens.ParsePx(a)
		if err != nil {
			return err
		}
		vals[i] = v
	}
	cfg := radius.DefaultConfig()
	cfg.Radius, cfg.Padding, cfg.ChildPadding, cfg.OuterPadding = vals[0], vals[1], vals[2], vals[3]
	if len(vals) == 5 {
		cfg.Size = vals[4]
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lv := cfg.Levels()
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", model.Level4.Key(), model.Level4.Title(), tokens.Label(lv.Level4))
	fmt.Fprintf(tw, "%s\t%s\t%s\n", model.Level3.Key(), model.Level3.Title(), tokens.Label(lv.Level3))
	fmt.Fprintf(tw, "%s\t%s\t%s\n", model.Level2.Key(), model.Level2.Title(), tokens.Label(lv.Level2))
	fmt.Fprintf(tw, "%s\t%s\t%s\n", model.Level1.Key(), model.Level1.Title(), tokens.Label(lv.Level1))
	return tw.Flush()
}

// openHistory opens the history database unless disabled. A nil DB with a
// nil error means history is off.
func openHistory(e env, o *options) (*history.DB, error) {
	if o.noHistory || !e.cfg.History.Enabled || e.cfg.History.Path == "" {
		return nil, nil
	}
	return history.Open(e.cfg.History.Path)
}

func cmdExport(ctx context.Context, o *options, stdout io.Writer) error {
	e, err := load(o)
	if err != nil {
		return err
	}

	formats := e.cfg.Formats()
	if o.format != "" {
		formats, err = export.ParseFormats(strings.Split(o.format, ","))
		if err != nil {
			return err
		}
	}
	dir := e.cfg.Export.Dir
	if o.out != "" {
		dir = o.out
	}
	if o.preview {
		// The preview serves index.html, so the bundle always includes it.
		o.bundle = true
		if !containsFormat(formats, export.FormatHTML) {
			formats = append(formats, export.FormatHTML)
		}
	}

	s := e.play.Snapshot(time.Now())
	paths, err := export.Save(ctx, s, export.Options{
		Dir:     dir,
		Formats: formats,
		Now:     s.Taken,
		Bundle:  o.bundle,
	})
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(stdout, p)
	}

	db, err := openHistory(e, o)
	if err != nil {
		logging.Logger().Warn("open history", "err", err)
	} else if db != nil {
		defer db.Close()
		if id, err := db.Record(ctx, s, paths); err != nil {
			logging.Logger().Warn("record export", "err", err)
		} else {
			logging.Logger().Debug("export recorded", "id", id)
		}
	}

	if o.preview {
		return export.StartPreview(ctx, stdout, dir, o.open)
	}
	return nil
}

func containsFormat(fs []export.Format, f export.Format) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}
	return false
}

func cmdReport(o *options, stdout io.Writer) error {
	e, err := load(o)
	if err != nil {
		return err
	}
	s := e.play.Snapshot(time.Now())
	md := export.Markdown(s, export.NewDocument(s, s.Taken))
	if o.raw {
		_, err := io.WriteString(stdout, md)
		return err
	}

	width := o.width
	if width <= 0 {
		width = terminalWidth(stdout, 80)
	}
	out, err := export.RenderReport(md, width, o.style)
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, out)
	return err
}

func cmdTable(o *options, stdout io.Writer) error {
	e, err := load(o)
	if err != nil {
		return err
	}
	g := sweep.Grid(e.set.Radii, e.set.Spacing)
	if err := sweep.Render(stdout, g, e.set.Radii, e.set.Spacing); err != nil {
		return err
	}
	st := sweep.Summarize(g)
	_, err = fmt.Fprintf(stdout, "\n%d combinations, %d clamped to 0px, %d circular, largest inner radius %s\n",
		st.Cells, st.Clamped, st.Circular, tokens.Format(st.MaxFinite))
	return err
}

func cmdHistory(ctx context.Context, o *options, stdout io.Writer) error {
	e, err := load(o)
	if err != nil {
		return err
	}
	if e.cfg.History.Path == "" {
		return errors.New("history path is not configured")
	}
	db, err := history.Open(e.cfg.History.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if o.prune > 0 {
		n, err := db.Prune(ctx, o.prune)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Removed %d entries\n", n)
		return nil
	}

	if o.restore != 0 {
		entry, err := db.Get(ctx, o.restore)
		if err != nil {
			return err
		}
		e.play = model.NewPlayground(e.set, entry.Selection)
		if !isTTY(stdout) {
			return printLevels(stdout, e.play.Snapshot(entry.CreatedAt))
		}
		return runViewer(ctx, e, o)
	}

	entries, err := db.List(ctx, o.limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(stdout, "No exports recorded yet.")
		return nil
	}
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tRADIUS\tL4\tL3\tL2\tL1\tFILES")
	for _, en := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			en.ID,
			en.CreatedAt.Local().Format("2006-01-02 15:04"),
			tokens.Label(en.Config.Radius),
			tokens.Label(en.Levels.Level4),
			tokens.Label(en.Levels.Level3),
			tokens.Label(en.Levels.Level2),
			tokens.Label(en.Levels.Level1),
			len(en.Paths))
	}
	return tw.Flush()
}

// wizardOptions falls back to huh's accessible prompts when the form
// cannot read keystrokes from a terminal.
func wizardOptions(in io.Reader) wizard.Options {
	return wizard.Options{Input: in, Accessible: !isTTY(in)}
}

func cmdWizard(ctx context.Context, o *options, stdout io.Writer) error {
	e, err := load(o)
	if err != nil {
		return err
	}
	p, err := wizard.Run(ctx, e.play, wizardOptions(os.Stdin))
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(stdout, "Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}
	if err := p.Config().Validate(); err != nil {
		return err
	}

	s := p.Snapshot(time.Now())
	if err := printLevels(stdout, s); err != nil {
		return err
	}
	js, err := export.NewDocument(s, s.Taken).EncodeJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "\n%s", js)
	return err
}

// runViewer starts the interactive viewer and, when a token file is in use,
// reloads it live.
func runViewer(ctx context.Context, e env, o *options) error {
	db, err := openHistory(e, o)
	if err != nil {
		logging.Logger().Warn("open history", "err", err)
	}
	opts := ui.Options{
		Theme:     ui.ThemeFor(e.cfg.Theme, nil),
		ExportDir: e.cfg.Export.Dir,
		Formats:   e.cfg.Formats(),
	}
	if o.out != "" {
		opts.ExportDir = o.out
	}
	if db != nil {
		defer db.Close()
		opts.Recorder = db
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(ui.NewModel(e.play, opts), tea.WithAltScreen(), tea.WithContext(ctx))

	if e.tokensPath != "" {
		go func() {
			err := watcher.Watch(ctx, e.tokensPath, 0,
				func(set tokens.Set) { prog.Send(ui.TokensReloadedMsg{Set: set}) },
				func(err error) { prog.Send(ui.TokensErrorMsg{Err: err}) },
			)
			if err != nil {
				logging.Logger().Warn("token watcher stopped", "err", err)
			}
		}()
	}

	final, err := prog.Run()
	if err != nil {
		// Cancelling ctx (Ctrl+C outside raw mode, SIGTERM) is a normal exit.
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run viewer: %w", err)
	}
	if m, ok := final.(ui.Model); ok {
		if err := ui.SaveSession(sessionPath(), m.Playground().Sel, time.Now()); err != nil {
			logging.Logger().Warn("save session", "err", err)
		}
	}
	return nil
}
