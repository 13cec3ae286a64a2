package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/radius_viewer/pkg/export"
	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults, got %v", err)
	}
	if cfg.Theme != "auto" || len(cfg.Export.Formats) != 1 || cfg.Export.Formats[0] != "json" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.History.Enabled {
		t.Error("history should be enabled by default")
	}
}

func TestLoad_Values(t *testing.T) {
	tokPath := filepath.Join(t.TempDir(), "tokens.yaml")
	path := writeConfig(t, `
defaults:
  radius: 16px
  padding: spacingS
  outer_padding: "0"
  size: 64
  tab: preview
export:
  dir: /tmp/rv-exports
  formats: [json, svg, png]
tokens: `+tokPath+`
theme: dark
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Export.Dir != "/tmp/rv-exports" || cfg.Theme != "dark" || cfg.Tokens != tokPath {
		t.Errorf("unexpected config: %+v", cfg)
	}
	want := []export.Format{export.FormatJSON, export.FormatSVG, export.FormatPNG}
	got := cfg.Formats()
	if len(got) != len(want) {
		t.Fatalf("Formats() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("format %d = %s, want %s", i, got[i], want[i])
		}
	}
	// unset keys keep their defaults
	if !cfg.History.Enabled {
		t.Error("history.enabled lost its default")
	}

	sel, err := cfg.Selection(tokens.Default())
	if err != nil {
		t.Fatalf("Selection: %v", err)
	}
	if sel.Radius != 7 || sel.Padding != 4 || sel.OuterPadding != 0 || sel.ChildPadding != 1 {
		t.Errorf("selection indices = %+v", sel)
	}
	if sel.Size != 64 || sel.Zoom != 200 || sel.Tab != model.TabPreview {
		t.Errorf("selection controls = %+v", sel)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad yaml":   "defaults: [",
		"bad format": "export:\n  formats: [gif]\n",
		"bad size":   "defaults:\n  size: 500\n",
		"bad zoom":   "defaults:\n  zoom: 50\n",
		"bad tab":    "defaults:\n  tab: settings\n",
		"bad theme":  "theme: neon\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, content)); err == nil {
				t.Errorf("expected error for %q", content)
			}
		})
	}
}

func TestSelection_UnknownToken(t *testing.T) {
	cfg := Default()
	cfg.Defaults.Padding = "zzzz"
	_, err := cfg.Selection(tokens.Default())
	if err == nil || !strings.Contains(err.Error(), "defaults.padding") {
		t.Errorf("expected defaults.padding error, got %v", err)
	}
}

func TestTokenSet(t *testing.T) {
	set, err := Default().TokenSet()
	if err != nil {
		t.Fatal(err)
	}
	if set.Radii.Len() != tokens.Radii().Len() {
		t.Error("expected built-in radius scale")
	}

	path := filepath.Join(t.TempDir(), "tokens.yaml")
	os.WriteFile(path, []byte("radius:\n  - {name: r, value: 3}\n"), 0644)
	cfg := Default()
	cfg.Tokens = path
	set, err = cfg.TokenSet()
	if err != nil {
		t.Fatal(err)
	}
	if set.Radii.Len() != 1 {
		t.Errorf("expected custom radius scale, got %d tokens", set.Radii.Len())
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/exports"); got != filepath.Join(home, "exports") {
		t.Errorf("expandHome = %s", got)
	}
	if got := expandHome("/abs"); got != "/abs" {
		t.Errorf("expandHome changed absolute path: %s", got)
	}
}
