package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dicklesworthstone/radius_viewer/pkg/logging"
	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
)

// Format is an export file format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "md"
	FormatSVG      Format = "svg"
	FormatPNG      Format = "png"
	FormatHTML     Format = "html"
)

// Formats lists every supported format in output order.
var Formats = []Format{FormatJSON, FormatYAML, FormatMarkdown, FormatSVG, FormatPNG, FormatHTML}

// ParseFormat accepts a format name or a common alias ("yml", "markdown").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want one of json, yaml, md, svg, png, html)", s)
}

// ParseFormats parses a list of names, dropping duplicates.
func ParseFormats(names []string) ([]Format, error) {
	seen := make(map[Format]bool)
	var out []Format
	for _, n := range names {
		f, err := ParseFormat(n)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// Options controls Save.
type Options struct {
	Dir     string
	Formats []Format
	// Now stamps the document and the file names; zero means time.Now().
	Now time.Time
	// PNGScale is the raster scale factor; zero means 2.
	PNGScale float64
	// Bundle names the files index.html, config.json, ... instead of the
	// timestamped names, so the directory can be served as a preview.
	Bundle bool
}

// Encode renders one format into memory.
func Encode(f Format, s model.Snapshot, d Document, pngScale float64) ([]byte, error) {
	var buf bytes.Buffer
	switch f {
	case FormatJSON:
		return d.EncodeJSON()
	case FormatYAML:
		return d.EncodeYAML()
	case FormatMarkdown:
		return []byte(Markdown(s, d)), nil
	case FormatSVG:
		if err := WriteSVG(&buf, s); err != nil {
			return nil, err
		}
	case FormatPNG:
		if err := WritePNG(&buf, s, pngScale); err != nil {
			return nil, err
		}
	case FormatHTML:
		if err := WriteHTML(&buf, s, d); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported export format %q", f)
	}
	return buf.Bytes(), nil
}

func bundleName(f Format) string {
	switch f {
	case FormatHTML:
		return "index.html"
	case FormatSVG, FormatPNG:
		return "shape." + string(f)
	}
	return "config." + string(f)
}

// Save writes every requested format of s into opts.Dir concurrently and
// returns the written paths in the order of opts.Formats. On error, files
// already written are left in place.
func Save(ctx context.Context, s model.Snapshot, opts Options) ([]string, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = []Format{FormatJSON}
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.PNGScale == 0 {
		opts.PNGScale = 2
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	doc := NewDocument(s, opts.Now)
	paths := make([]string, len(opts.Formats))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range opts.Formats {
		name := FileName(opts.Now, string(f))
		if opts.Bundle {
			name = bundleName(f)
		}
		path := filepath.Join(opts.Dir, name)
		paths[i] = path

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := Encode(f, s, doc, opts.PNGScale)
			if err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			logging.Logger().Debug("export written", "format", string(f), "path", path, "bytes", len(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
