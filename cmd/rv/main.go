package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Dicklesworthstone/radius_viewer/pkg/config"
	"github.com/Dicklesworthstone/radius_viewer/pkg/export"
	"github.com/Dicklesworthstone/radius_viewer/pkg/logging"
	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
	"github.com/Dicklesworthstone/radius_viewer/pkg/ui"
	"github.com/Dicklesworthstone/radius_viewer/pkg/updater"
	"github.com/Dicklesworthstone/radius_viewer/pkg/version"
)

const usage = `Usage: rv [command] [options]

Explore concentric border radii for nested UI layers.

Commands:
  (none)     interactive viewer when stdout is a terminal, level summary otherwise
  calc       compute the four levels from pixel values or token names
  export     write the configuration in one or more formats
  report     render a markdown report of the current levels
  table      inner radius for every radius x padding token pair
  history    list past exports, or reopen one with --restore ID
  wizard     pick tokens with a short form
  version    print the version

Options:
`

// tokenRefHelp documents how Scale.Find reads a token flag.
const tokenRefHelp = ": name (fuzzy), index (bare number, 12 = 13th token) or pixel value (12px)"

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one rv invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := ""
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet("rv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	o := registerFlags(fs)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	o.args = fs.Args()

	if o.version || cmd == "version" {
		fmt.Fprintf(stdout, "rv version %s\n", version.Version)
		return 0
	}
	if o.checkUpdate {
		return report(stderr, checkUpdate(ctx, stdout))
	}

	if o.debug != "" {
		closer, err := logging.OpenFile(o.debug)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer closer.Close()
	}
	logging.Logger().Debug("rv start", "cmd", cmd, "version", version.Version)

	var err error
	switch cmd {
	case "":
		err = cmdDefault(ctx, o, stdout)
	case "calc":
		err = cmdCalc(o, stdout)
	case "export":
		err = cmdExport(ctx, o, stdout)
	case "report":
		err = cmdReport(o, stdout)
	case "table":
		err = cmdTable(o, stdout)
	case "history":
		err = cmdHistory(ctx, o, stdout)
	case "wizard":
		err = cmdWizard(ctx, o, stdout)
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmd)
		fs.Usage()
		return 2
	}
	if errors.Is(err, errUsage) {
		fs.Usage()
		return 2
	}
	return report(stderr, err)
}

func report(stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func checkUpdate(ctx context.Context, stdout io.Writer) error {
	tag, url, err := updater.CheckForUpdates(ctx, "")
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	if tag == "" {
		fmt.Fprintf(stdout, "rv %s is up to date\n", version.Version)
		return nil
	}
	fmt.Fprintf(stdout, "rv %s is available (you have %s): %s\n", tag, version.Version, url)
	return nil
}

// options holds every flag; each command reads the ones it needs.
type options struct {
	configPath   string
	tokensPath   string
	radius       string
	padding      string
	childPadding string
	outerPadding string
	size         int
	zoom         int
	format       string
	out          string
	debug        string

	resume    bool
	preview   bool
	open      bool
	bundle    bool
	noHistory bool
	raw       bool
	style     string
	width     int
	restore   int64
	limit     int
	prune     int

	version     bool
	checkUpdate bool

	args []string
}

func registerFlags(fs *flag.FlagSet) *options {
	o := &options{}
	fs.StringVar(&o.configPath, "config", "", "Config file (default ~/.config/rv/config.yaml)")
	fs.StringVar(&o.tokensPath, "tokens", "", "Custom token file (YAML); reloaded live in the viewer")
	fs.StringVar(&o.radius, "radius", "", "Border radius token"+tokenRefHelp)
	fs.StringVar(&o.padding, "padding", "", "Level 3 padding token"+tokenRefHelp)
	fs.StringVar(&o.childPadding, "child-padding", "", "Level 2 padding token"+tokenRefHelp)
	fs.StringVar(&o.outerPadding, "outer-padding", "", "Level 4 padding token"+tokenRefHelp)
	fs.IntVar(&o.size, "size", 0, fmt.Sprintf("Level 3 size in px (%d-%d)", model.MinSize, model.MaxSize))
	fs.IntVar(&o.zoom, "zoom", 0, fmt.Sprintf("Viewer zoom in percent (%d-%d)", model.MinZoom, model.MaxZoom))
	fs.StringVar(&o.format, "format", "", "Export formats, comma separated: "+formatList())
	fs.StringVar(&o.out, "out", "", "Export directory")
	fs.StringVar(&o.debug, "debug", "", "Write debug logs to this file")

	fs.BoolVar(&o.resume, "resume", false, "Start from the slider position saved when the viewer last quit")
	fs.BoolVar(&o.preview, "preview", false, "export: serve the exported bundle on a local port until interrupted")
	fs.BoolVar(&o.open, "open", false, "export --preview: open the browser")
	fs.BoolVar(&o.bundle, "bundle", false, "export: use stable file names (index.html, config.json, ...)")
	fs.BoolVar(&o.noHistory, "no-history", false, "Do not record exports in the history database")
	fs.BoolVar(&o.raw, "raw", false, "report: print markdown without rendering")
	fs.StringVar(&o.style, "style", "auto", "report: glamour style (auto, dark, light, notty)")
	fs.IntVar(&o.width, "width", 0, "report: wrap width (default terminal width or 80)")
	fs.Int64Var(&o.restore, "restore", 0, "history: reopen the export with this ID")
	fs.IntVar(&o.limit, "limit", 20, "history: number of entries to list")
	fs.IntVar(&o.prune, "prune", 0, "history: keep only the newest N entries")

	fs.BoolVar(&o.version, "version", false, "Show version")
	fs.BoolVar(&o.checkUpdate, "check-update", false, "Check GitHub for a newer release")
	return o
}

func formatList() string {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// sessionPath is where the viewer saves its slider position on quit.
func sessionPath() string {
	if dir := config.Dir(); dir != "" {
		return filepath.Join(dir, "session.json")
	}
	return ""
}

// env is everything a command needs after flags and config are merged.
type env struct {
	cfg        config.Config
	tokensPath string
	set        tokens.Set
	play       model.Playground
}

// load merges the config file, the token file and the flags.
func load(o *options) (env, error) {
	path := o.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return env{}, err
	}
	if o.tokensPath != "" {
		cfg.Tokens = o.tokensPath
	}
	set, err := cfg.TokenSet()
	if err != nil {
		return env{}, err
	}

	sel, err := cfg.Selection(set)
	if err != nil {
		return env{}, err
	}
	if o.resume {
		saved, ok, err := ui.LoadSession(sessionPath())
		if err != nil {
			return env{}, err
		}
		if ok {
			sel = saved.Selection
		}
	}
	refs := []struct {
		flag  string
		ref   string
		scale tokens.Scale
		dst   *int
	}{
		{"radius", o.radius, set.Radii, &sel.Radius},
		{"padding", o.padding, set.Spacing, &sel.Padding},
		{"child-padding", o.childPadding, set.Spacing, &sel.ChildPadding},
		{"outer-padding", o.outerPadding, set.Spacing, &sel.OuterPadding},
	}
	for _, r := range refs {
		if r.ref == "" {
			continue
		}
		i, err := r.scale.Find(r.ref)
		if err != nil {
			return env{}, fmt.Errorf("--%s: %w", r.flag, err)
		}
		*r.dst = i
	}
	if o.size != 0 {
		sel.Size = o.size
	}
	if o.zoom != 0 {
		sel.Zoom = o.zoom
	}
	if err := sel.Validate(); err != nil {
		return env{}, err
	}

	// WithSize runs the auto-fit against the chosen paddings.
	play := model.NewPlayground(set, sel).WithSize(sel.Size)
	if err := play.Config().Validate(); err != nil {
		return env{}, err
	}
	return env{cfg: cfg, tokensPath: cfg.Tokens, set: set, play: play}, nil
}
