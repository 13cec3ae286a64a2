package ui

import "strings"

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceMD = 3
	SpaceLG = 4
)

// Layout of a slider row.
const (
	labelWidth = 16
	trackWidth = 24
	valueWidth = 22
)

// RenderTrack renders a slider track of the given width with a thumb at
// position pos of n stops.
func RenderTrack(pos, n, width int, focused bool, t Theme) string {
	if width <= 0 {
		return ""
	}
	thumb := 0
	if n > 1 {
		if pos < 0 {
			pos = 0
		}
		if pos > n-1 {
			pos = n - 1
		}
		thumb = pos * (width - 1) / (n - 1)
	}

	filled := strings.Repeat("━", thumb)
	rest := strings.Repeat("─", width-thumb-1)

	fill := t.Secondary
	if focused {
		fill = t.Primary
	}
	return t.Renderer.NewStyle().Foreground(fill).Render(filled) +
		t.Renderer.NewStyle().Foreground(fill).Bold(true).Render("●") +
		t.Renderer.NewStyle().Foreground(t.Border).Render(rest)
}

// RenderDivider renders a horizontal divider line
func RenderDivider(width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(t.Border).
		Render(strings.Repeat("─", width))
}

// RenderTab renders one tab header.
func RenderTab(label string, active bool, t Theme) string {
	s := t.Renderer.NewStyle().Padding(0, SpaceXS)
	if active {
		return s.Bold(true).Foreground(t.Primary).Underline(true).Render(label)
	}
	return s.Foreground(t.Subtext).Render(label)
}
