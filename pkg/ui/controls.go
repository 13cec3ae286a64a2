package ui

import (
	"fmt"

	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

// control is one focusable slider, in display order.
type control int

const (
	ctrlOuterPadding control = iota
	ctrlRadius
	ctrlPadding
	ctrlSize
	ctrlChildPadding
	ctrlZoom
	numControls
)

const (
	sizeStep = 4
	zoomStep = 25
)

// level returns the nesting level a slider belongs to, 0 for zoom.
func (c control) level() model.Level {
	switch c {
	case ctrlOuterPadding:
		return model.Level4
	case ctrlRadius, ctrlPadding, ctrlSize:
		return model.Level3
	case ctrlChildPadding:
		return model.Level2
	}
	return 0
}

func (c control) label() string {
	switch c {
	case ctrlOuterPadding:
		return "Outer padding"
	case ctrlRadius:
		return "Border radius"
	case ctrlPadding:
		return "Padding"
	case ctrlSize:
		return "Size"
	case ctrlChildPadding:
		return "Child padding"
	case ctrlZoom:
		return "Zoom"
	}
	return "?"
}

// position returns the slider thumb position and the number of stops.
func (c control) position(p model.Playground) (pos, n int) {
	switch c {
	case ctrlOuterPadding:
		return p.Sel.OuterPadding, p.Spacing.Len()
	case ctrlRadius:
		return p.Sel.Radius, p.Radii.Len()
	case ctrlPadding:
		return p.Sel.Padding, p.Spacing.Len()
	case ctrlSize:
		return (p.Sel.Size - model.MinSize) / sizeStep, (model.MaxSize-model.MinSize)/sizeStep + 1
	case ctrlChildPadding:
		return p.Sel.ChildPadding, p.Spacing.Len()
	case ctrlZoom:
		return (p.Sel.Zoom - model.MinZoom) / zoomStep, (model.MaxZoom-model.MinZoom)/zoomStep + 1
	}
	return 0, 0
}

// value describes the current setting, e.g. "spacingXS 4px".
func (c control) value(p model.Playground) string {
	tokenText := func(t tokens.Token) string {
		return t.Name + " " + tokens.Label(t.Value)
	}
	switch c {
	case ctrlOuterPadding:
		return tokenText(p.Spacing.At(p.Sel.OuterPadding))
	case ctrlRadius:
		return tokenText(p.Radii.At(p.Sel.Radius))
	case ctrlPadding:
		return tokenText(p.Spacing.At(p.Sel.Padding))
	case ctrlSize:
		return fmt.Sprintf("%dpx", p.Sel.Size)
	case ctrlChildPadding:
		return tokenText(p.Spacing.At(p.Sel.ChildPadding))
	case ctrlZoom:
		return fmt.Sprintf("%d%%", p.Sel.Zoom)
	}
	return ""
}

// step moves the slider by delta stops.
func (c control) step(p model.Playground, delta int) model.Playground {
	switch c {
	case ctrlOuterPadding:
		return p.WithOuterPadding(p.Sel.OuterPadding + delta)
	case ctrlRadius:
		return p.WithRadius(p.Sel.Radius + delta)
	case ctrlPadding:
		return p.WithPadding(p.Sel.Padding + delta)
	case ctrlSize:
		return p.WithSize(p.Sel.Size + delta*sizeStep)
	case ctrlChildPadding:
		return p.WithChildPadding(p.Sel.ChildPadding + delta)
	case ctrlZoom:
		return p.WithZoom(p.Sel.Zoom + delta*zoomStep)
	}
	return p
}
