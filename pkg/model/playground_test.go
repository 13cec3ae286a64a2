package model

import (
	"testing"
	"time"

	"github.com/Dicklesworthstone/radius_viewer/pkg/radius"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

func newDefault() Playground {
	return NewPlayground(tokens.Default(), DefaultSelection())
}

func TestDefaultPlaygroundLevels(t *testing.T) {
	p := newDefault()
	cfg := p.Config()
	if cfg != radius.DefaultConfig() {
		t.Errorf("Config() = %+v, want %+v", cfg, radius.DefaultConfig())
	}
	lv := p.Levels()
	if lv.Level4 != 32 || lv.Level3 != 12 || lv.Level2 != 8 || lv.Level1 != 6 {
		t.Errorf("Levels() = %+v", lv)
	}
}

func TestNewPlaygroundClamps(t *testing.T) {
	p := NewPlayground(tokens.Default(), Selection{Radius: 99, Padding: -1, Size: 5, Zoom: 1000, Tab: "bogus"})
	if p.Sel.Radius != 14 {
		t.Errorf("Radius = %d, want 14", p.Sel.Radius)
	}
	if p.Sel.Padding != 0 {
		t.Errorf("Padding = %d, want 0", p.Sel.Padding)
	}
	if p.Sel.Size != MinSize || p.Sel.Zoom != MaxZoom {
		t.Errorf("Size/Zoom = %d/%d", p.Sel.Size, p.Sel.Zoom)
	}
	if p.Sel.Tab != TabPrimitives {
		t.Errorf("Tab = %q", p.Sel.Tab)
	}
}

func TestWithSetters(t *testing.T) {
	p := newDefault().WithRadius(14).WithPadding(10).WithOuterPadding(0).WithZoom(50).WithTab(TabPreview)
	if !radius.IsCircular(p.Config().Radius) {
		t.Errorf("expected circular radius")
	}
	if p.Config().Padding != 32 || p.Config().OuterPadding != 0 {
		t.Errorf("Config = %+v", p.Config())
	}
	if p.Sel.Zoom != MinZoom {
		t.Errorf("Zoom = %d", p.Sel.Zoom)
	}
	if p.WithTab("nope").Sel.Tab != TabPreview {
		t.Errorf("invalid tab should be ignored")
	}
	// the receiver is untouched
	if newDefault().Sel.Radius != 6 {
		t.Errorf("setters mutated the receiver")
	}
}

func TestWithSizeAutoFit(t *testing.T) {
	tests := []struct {
		name      string
		padding   int
		child     int
		size      int
		wantChild int
	}{
		// 2*4 + 2*2 + 8 = 20 fits in 48
		{"fits", 2, 1, 48, 1},
		// padding 8, child 12: needs 48, size 30 leaves floor((30-16-8)/2)=3 -> spacingXXS
		{"shrinks child", 4, 6, 30, 1},
		// padding 12: floor((20-24-8)/2) < 0 -> spacingNone
		{"collapses child", 6, 3, 20, 0},
		// 2*4 + 0 + 8 = 16 fits in the minimum size
		{"fits at minimum", 2, 0, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newDefault().WithPadding(tt.padding).WithChildPadding(tt.child).WithSize(tt.size)
			if p.Sel.ChildPadding != tt.wantChild {
				t.Errorf("ChildPadding = %d, want %d", p.Sel.ChildPadding, tt.wantChild)
			}
			if p.Sel.Size != tt.size {
				t.Errorf("Size = %d, want %d", p.Sel.Size, tt.size)
			}
		})
	}
}

func TestWithSizeAutoFitCustomSpacing(t *testing.T) {
	set, err := tokens.Parse([]byte("spacing:\n  - {name: a, value: 0}\n  - {name: b, value: 2px}\n  - {name: c, value: 4px}\n  - {name: d, value: 6px}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// 2*2 + 2*6 + 8 = 24 does not fit in 20; floor((20-4-8)/2) = 4 -> c
	p := NewPlayground(set, DefaultSelection()).WithPadding(1).WithChildPadding(3).WithSize(20)
	if got := p.Spacing.At(p.Sel.ChildPadding); got.Name != "c" {
		t.Errorf("child padding = %s %s, want c 4px", got.Name, got.Px())
	}

	if _, err := tokens.Parse([]byte("spacing:\n  - {name: a, value: 0}\n  - {name: b, value: 4px}\n  - {name: c, value: 2px}\n")); err == nil {
		t.Error("unsorted spacing scale accepted")
	}
}

func TestWithTokensKeepsIndicesInRange(t *testing.T) {
	small := tokens.Set{
		Spacing: tokens.Scale{Name: "spacing", Tokens: []tokens.Token{{"a", 0}, {"b", 4}}},
		Radii:   tokens.Scale{Name: "radius", Tokens: []tokens.Token{{"r", 8}}},
	}
	p := newDefault().WithTokens(small)
	if p.Sel.Radius != 0 || p.Sel.OuterPadding != 1 || p.Sel.Padding != 1 {
		t.Errorf("Sel = %+v", p.Sel)
	}
	if got := p.Levels().Level2; got != 4 {
		t.Errorf("Level2 = %v, want 4", got)
	}
}

func TestSnapshot(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newDefault().Snapshot(now)
	if !s.Taken.Equal(now) {
		t.Errorf("Taken = %v", s.Taken)
	}
	if s.Radius.Value != 12 || s.Padding.Name != "spacingXS" || s.ChildPadding.Name != "spacingXXS" || s.OuterPadding.Name != "spacingXL" {
		t.Errorf("tokens = %+v %+v %+v %+v", s.Radius, s.Padding, s.ChildPadding, s.OuterPadding)
	}
	for l, want := range map[Level]float64{Level1: 6, Level2: 8, Level3: 12, Level4: 32} {
		if got := s.RadiusOf(l); got != want {
			t.Errorf("RadiusOf(%d) = %v, want %v", l, got, want)
		}
	}
	if s.PaddingOf(Level4) != 20 || s.PaddingOf(Level1) != 0 {
		t.Errorf("PaddingOf mismatch")
	}
}

func TestSelectionValidate(t *testing.T) {
	if err := DefaultSelection().Validate(); err != nil {
		t.Fatalf("default selection invalid: %v", err)
	}
	bad := []Selection{
		{Size: 10, Zoom: 100},
		{Size: 48, Zoom: 400},
		{Size: 48, Zoom: 100, Tab: "other"},
	}
	for _, s := range bad {
		if err := s.Validate(); err == nil {
			t.Errorf("expected error for %+v", s)
		}
	}
}

func TestLevelNames(t *testing.T) {
	if Level4.Key() != "level4" || Level1.Title() != "Atomic element" {
		t.Errorf("unexpected level naming")
	}
	if TabPrimitives.Next() != TabPreview || TabPreview.Next() != TabPrimitives {
		t.Errorf("tab cycling broken")
	}
}
