// Package model holds the playground state behind the sliders.
package model

import (
	"math"
	"time"

	"github.com/Dicklesworthstone/radius_viewer/pkg/radius"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

// Playground binds a Selection to the token scales it indexes. It is a
// value type; every With* method returns an updated copy.
type Playground struct {
	Spacing tokens.Scale
	Radii   tokens.Scale
	Sel     Selection
}

// NewPlayground returns a playground over the given token set with sel
// clamped into range.
func NewPlayground(set tokens.Set, sel Selection) Playground {
	p := Playground{Spacing: set.Spacing, Radii: set.Radii, Sel: sel}
	return p.normalize()
}

func (p Playground) normalize() Playground {
	p.Sel.Radius = p.Radii.Clamp(p.Sel.Radius)
	p.Sel.Padding = p.Spacing.Clamp(p.Sel.Padding)
	p.Sel.ChildPadding = p.Spacing.Clamp(p.Sel.ChildPadding)
	p.Sel.OuterPadding = p.Spacing.Clamp(p.Sel.OuterPadding)
	p.Sel.Size = clampInt(p.Sel.Size, MinSize, MaxSize)
	p.Sel.Zoom = clampInt(p.Sel.Zoom, MinZoom, MaxZoom)
	if !p.Sel.Tab.IsValid() {
		p.Sel.Tab = TabPrimitives
	}
	return p
}

// WithTokens swaps the token scales, keeping the indices clamped.
func (p Playground) WithTokens(set tokens.Set) Playground {
	p.Spacing, p.Radii = set.Spacing, set.Radii
	return p.normalize()
}

// WithRadius selects the level 3 radius token.
func (p Playground) WithRadius(i int) Playground {
	p.Sel.Radius = p.Radii.Clamp(i)
	return p
}

// WithPadding selects the level 3 padding token.
func (p Playground) WithPadding(i int) Playground {
	p.Sel.Padding = p.Spacing.Clamp(i)
	return p
}

// WithChildPadding selects the level 2 padding token.
func (p Playground) WithChildPadding(i int) Playground {
	p.Sel.ChildPadding = p.Spacing.Clamp(i)
	return p
}

// WithOuterPadding selects the level 4 padding token.
func (p Playground) WithOuterPadding(i int) Playground {
	p.Sel.OuterPadding = p.Spacing.Clamp(i)
	return p
}

// WithZoom sets the preview zoom percentage.
func (p Playground) WithZoom(z int) Playground {
	p.Sel.Zoom = clampInt(z, MinZoom, MaxZoom)
	return p
}

// WithTab switches the preview tab.
func (p Playground) WithTab(t Tab) Playground {
	if t.IsValid() {
		p.Sel.Tab = t
	}
	return p
}

// WithSize sets the level 3 height. When the new height cannot hold both
// paddings on top and bottom plus MinContent, the level 2 padding drops to
// the largest spacing token that fits. It is never raised.
func (p Playground) WithSize(size int) Playground {
	size = clampInt(size, MinSize, MaxSize)
	p.Sel.Size = size

	pad := p.Spacing.At(p.Sel.Padding).Value
	child := p.Spacing.At(p.Sel.ChildPadding).Value
	if float64(size) >= 2*pad+2*child+MinContent {
		return p
	}

	available := float64(size) - 2*pad - MinContent
	maxChild := math.Floor(available / 2)
	idx := p.Spacing.Nearest(maxChild)
	if idx < p.Sel.ChildPadding {
		p.Sel.ChildPadding = idx
	}
	return p
}

// Config builds the calculator input from the selected tokens.
func (p Playground) Config() radius.Config {
	return radius.Config{
		Radius:       p.Radii.At(p.Sel.Radius).Value,
		Padding:      p.Spacing.At(p.Sel.Padding).Value,
		ChildPadding: p.Spacing.At(p.Sel.ChildPadding).Value,
		OuterPadding: p.Spacing.At(p.Sel.OuterPadding).Value,
		Size:         float64(p.Sel.Size),
	}
}

// Levels derives the radius of every layer.
func (p Playground) Levels() radius.Levels {
	return p.Config().Levels()
}

// Snapshot captures the current state at time now.
func (p Playground) Snapshot(now time.Time) Snapshot {
	cfg := p.Config()
	return Snapshot{
		Taken:        now,
		Selection:    p.Sel,
		Radius:       p.Radii.At(p.Sel.Radius),
		Padding:      p.Spacing.At(p.Sel.Padding),
		ChildPadding: p.Spacing.At(p.Sel.ChildPadding),
		OuterPadding: p.Spacing.At(p.Sel.OuterPadding),
		Config:       cfg,
		Levels:       cfg.Levels(),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
