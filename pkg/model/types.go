package model

import (
	"fmt"
	"time"

	"github.com/Dicklesworthstone/radius_viewer/pkg/radius"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

// Slider ranges for the non-token controls.
const (
	MinSize = 20
	MaxSize = 120
	MinZoom = 100
	MaxZoom = 300

	// MinContent is the smallest level 1 height the size auto-fit keeps.
	MinContent = 8
)

// Tab selects which preview the viewer shows
type Tab string

const (
	TabPrimitives Tab = "primitives"
	TabPreview    Tab = "preview"
)

// IsValid returns true if the tab is a recognized value
func (t Tab) IsValid() bool {
	switch t {
	case TabPrimitives, TabPreview:
		return true
	}
	return false
}

// Next returns the other tab
func (t Tab) Next() Tab {
	if t == TabPreview {
		return TabPrimitives
	}
	return TabPreview
}

// Level identifies one nested layer, 4 being the outermost
type Level int

const (
	Level1 Level = 1 + iota
	Level2
	Level3
	Level4
)

// Title returns the display name of the level
func (l Level) Title() string {
	switch l {
	case Level1:
		return "Atomic element"
	case Level2:
		return "Small interactive primitive"
	case Level3:
		return "Primary interactive control"
	case Level4:
		return "Molecular container"
	}
	return fmt.Sprintf("Level %d", int(l))
}

// Key returns the export document key for the level ("level1".."level4")
func (l Level) Key() string {
	return fmt.Sprintf("level%d", int(l))
}

// Selection is the slider state: token indices plus the free-form controls
type Selection struct {
	Radius       int `json:"radius" yaml:"radius"`
	Padding      int `json:"padding" yaml:"padding"`
	ChildPadding int `json:"child_padding" yaml:"child_padding"`
	OuterPadding int `json:"outer_padding" yaml:"outer_padding"`
	Size         int `json:"size" yaml:"size"`
	Zoom         int `json:"zoom" yaml:"zoom"`
	Tab          Tab `json:"tab" yaml:"tab"`
}

// DefaultSelection is the playground's starting position: radius 12px,
// padding spacingXS, child padding spacingXXS, outer padding spacingXL.
func DefaultSelection() Selection {
	return Selection{
		Radius:       6,
		Padding:      2,
		ChildPadding: 1,
		OuterPadding: 8,
		Size:         48,
		Zoom:         200,
		Tab:          TabPrimitives,
	}
}

// Validate checks ranges that cannot be fixed by clamping against a scale
func (s Selection) Validate() error {
	if s.Size < MinSize || s.Size > MaxSize {
		return fmt.Errorf("size %d out of range [%d,%d]", s.Size, MinSize, MaxSize)
	}
	if s.Zoom < MinZoom || s.Zoom > MaxZoom {
		return fmt.Errorf("zoom %d out of range [%d,%d]", s.Zoom, MinZoom, MaxZoom)
	}
	if s.Tab != "" && !s.Tab.IsValid() {
		return fmt.Errorf("invalid tab: %s", s.Tab)
	}
	return nil
}

// Snapshot freezes one playground state together with its derived radii
type Snapshot struct {
	Taken        time.Time
	Selection    Selection
	Radius       tokens.Token
	Padding      tokens.Token
	ChildPadding tokens.Token
	OuterPadding tokens.Token
	Config       radius.Config
	Levels       radius.Levels
}

// RadiusOf returns the derived radius of the given level
func (s Snapshot) RadiusOf(l Level) float64 {
	switch l {
	case Level1:
		return s.Levels.Level1
	case Level2:
		return s.Levels.Level2
	case Level3:
		return s.Levels.Level3
	case Level4:
		return s.Levels.Level4
	}
	return 0
}

// PaddingOf returns the padding a level applies to its child. Level 1 has
// no child.
func (s Snapshot) PaddingOf(l Level) float64 {
	switch l {
	case Level2:
		return s.Config.ChildPadding
	case Level3:
		return s.Config.Padding
	case Level4:
		return s.Config.OuterPadding
	}
	return 0
}
