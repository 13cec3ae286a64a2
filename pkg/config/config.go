// Package config loads the rv configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/radius_viewer/pkg/export"
	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

// Config is the on-disk configuration. Every field is optional.
type Config struct {
	Defaults Defaults `yaml:"defaults"`
	Export   Export   `yaml:"export"`
	History  History  `yaml:"history"`
	// Tokens is the path of a custom token file (see tokens.Load).
	Tokens string `yaml:"tokens"`
	// Theme is "dark", "light" or "auto".
	Theme string `yaml:"theme"`
}

// Defaults is the initial slider position. Token fields take anything
// tokens.Scale.Find accepts: a name, an index, a pixel value.
type Defaults struct {
	Radius       string `yaml:"radius"`
	Padding      string `yaml:"padding"`
	ChildPadding string `yaml:"child_padding"`
	OuterPadding string `yaml:"outer_padding"`
	Size         int    `yaml:"size"`
	Zoom         int    `yaml:"zoom"`
	Tab          string `yaml:"tab"`
}

// Export configures where and how exports are written.
type Export struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"`
}

// History configures the export history database.
type History struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Dir returns ~/.config/rv, or "" if the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rv")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	d := Dir()
	if d == "" {
		return ""
	}
	return filepath.Join(d, "config.yaml")
}

// Default returns the configuration used when no file exists.
func Default() Config {
	histPath := ""
	if d := Dir(); d != "" {
		histPath = filepath.Join(d, "history.db")
	}
	return Config{
		Export:  Export{Dir: ".", Formats: []string{"json"}},
		History: History{Enabled: true, Path: histPath},
		Theme:   "auto",
	}
}

// Load reads path over Default(). A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Tokens = expandHome(cfg.Tokens)
	cfg.Export.Dir = expandHome(cfg.Export.Dir)
	cfg.History.Path = expandHome(cfg.History.Path)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that do not depend on the token set.
func (c Config) Validate() error {
	if _, err := export.ParseFormats(c.Export.Formats); err != nil {
		return err
	}
	d := c.Defaults
	if d.Size != 0 && (d.Size < model.MinSize || d.Size > model.MaxSize) {
		return fmt.Errorf("defaults.size %d out of range [%d,%d]", d.Size, model.MinSize, model.MaxSize)
	}
	if d.Zoom != 0 && (d.Zoom < model.MinZoom || d.Zoom > model.MaxZoom) {
		return fmt.Errorf("defaults.zoom %d out of range [%d,%d]", d.Zoom, model.MinZoom, model.MaxZoom)
	}
	if d.Tab != "" && !model.Tab(d.Tab).IsValid() {
		return fmt.Errorf("defaults.tab: invalid tab %q", d.Tab)
	}
	switch c.Theme {
	case "", "auto", "dark", "light":
	default:
		return fmt.Errorf("theme: want dark, light or auto, got %q", c.Theme)
	}
	return nil
}

// Formats returns the parsed export formats.
func (c Config) Formats() []export.Format {
	f, _ := export.ParseFormats(c.Export.Formats)
	return f
}

// Selection resolves the defaults against a token set. Unset fields keep
// model.DefaultSelection values.
func (c Config) Selection(set tokens.Set) (model.Selection, error) {
	sel := model.DefaultSelection()
	refs := []struct {
		field string
		ref   string
		scale tokens.Scale
		dst   *int
	}{
		{"radius", c.Defaults.Radius, set.Radii, &sel.Radius},
		{"padding", c.Defaults.Padding, set.Spacing, &sel.Padding},
		{"child_padding", c.Defaults.ChildPadding, set.Spacing, &sel.ChildPadding},
		{"outer_padding", c.Defaults.OuterPadding, set.Spacing, &sel.OuterPadding},
	}
	for _, r := range refs {
		if r.ref == "" {
			continue
		}
		i, err := r.scale.Find(r.ref)
		if err != nil {
			return sel, fmt.Errorf("defaults.%s: %w", r.field, err)
		}
		*r.dst = i
	}
	if c.Defaults.Size != 0 {
		sel.Size = c.Defaults.Size
	}
	if c.Defaults.Zoom != 0 {
		sel.Zoom = c.Defaults.Zoom
	}
	if c.Defaults.Tab != "" {
		sel.Tab = model.Tab(c.Defaults.Tab)
	}
	return sel, nil
}

// TokenSet loads the configured token file, or the built-in set when none
// is configured.
func (c Config) TokenSet() (tokens.Set, error) {
	if c.Tokens == "" {
		return tokens.Default(), nil
	}
	return tokens.Load(c.Tokens)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
