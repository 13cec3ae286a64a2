package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/Dicklesworthstone/radius_viewer/pkg/export"
	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

// A terminal column is 8 px wide at 100% zoom; rows are twice as tall.
const (
	pxPerCol = 8.0
	pxPerRow = 16.0
)

// cellsX converts a horizontal pixel length to columns at zoom percent.
func cellsX(px float64, zoom int) int {
	return int(math.Round(px * float64(zoom) / 100 / pxPerCol))
}

// cellsY converts a vertical pixel length to rows at zoom percent.
func cellsY(px float64, zoom int) int {
	return int(math.Round(px * float64(zoom) / 100 / pxPerRow))
}

// borderFor picks the terminal border matching a corner radius: square
// for 0, rounded otherwise.
func borderFor(r float64) lipgloss.Border {
	if r <= 0 {
		return lipgloss.NormalBorder()
	}
	return lipgloss.RoundedBorder()
}

// levelIndex maps a level to its slot in Theme.Levels (level 4 first).
func levelIndex(l model.Level) int {
	return int(model.Level4 - l)
}

// boxDims is the outer size of each level in cells, level 4 first.
type boxDims struct {
	w, h       [4]int
	padX, padY [4]int
}

// measure lays the four levels out in cells. The level 4 width is the
// export container width, capped at maxWidth; the level 3 height is the
// selected size. Inner sizes shrink by each parent's padding and border and
// never drop below one cell of content.
func measure(s model.Snapshot, zoom, maxWidth int) boxDims {
	var d boxDims
	levels := []model.Level{model.Level4, model.Level3, model.Level2, model.Level1}
	for i, l := range levels {
		d.padX[i] = cellsX(s.PaddingOf(l), zoom)
		d.padY[i] = cellsY(s.PaddingOf(l), zoom)
	}

	w := cellsX(export.ContainerWidth, zoom)
	if maxWidth > 0 && w > maxWidth {
		w = maxWidth
	}
	h3 := cellsY(s.Config.Size, zoom)
	if h3 < 3 {
		h3 = 3
	}

	d.w[0] = w
	d.h[1] = h3
	for i := 1; i < 4; i++ {
		d.w[i] = max(3, d.w[i-1]-2-2*d.padX[i-1])
	}
	for i := 2; i < 4; i++ {
		d.h[i] = max(3, d.h[i-1]-2-2*d.padY[i-1])
	}
	d.h[0] = d.h[1] + 2 + 2*d.padY[0]
	return d
}

// levelStyle is the bordered style of one level.
func levelStyle(s model.Snapshot, l model.Level, t Theme) lipgloss.Style {
	return t.Renderer.NewStyle().
		Border(borderFor(s.RadiusOf(l))).
		BorderForeground(t.Levels[levelIndex(l)])
}

// RenderShapes draws the four nested levels as terminal boxes.
func RenderShapes(s model.Snapshot, zoom, maxWidth int, t Theme) string {
	d := measure(s, zoom, maxWidth)

	inner := levelIndex(model.Level1)
	label := fmt.Sprintf("L1 %s", tokens.Label(s.Levels.Level1))
	content := truncate.StringWithTail(label, uint(d.w[inner]-2), "…")
	box := levelStyle(s, model.Level1, t).
		Width(d.w[inner]-2).
		Height(d.h[inner]-2).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(t.Subtext).
		Render(content)

	for _, l := range []model.Level{model.Level2, model.Level3, model.Level4} {
		i := levelIndex(l)
		box = levelStyle(s, l, t).
			Padding(d.padY[i], d.padX[i]).
			Render(box)
	}
	return box
}

// RenderMockup draws the same nesting dressed as a small UI: a card holding
// a button, holding a chip, holding an icon.
func RenderMockup(s model.Snapshot, zoom, maxWidth int, t Theme) string {
	d := measure(s, zoom, maxWidth)
	text := t.Renderer.NewStyle().Foreground(t.Text)
	muted := t.Renderer.NewStyle().Foreground(t.Subtext)

	icon := levelStyle(s, model.Level1, t).
		Foreground(t.Primary).
		Render("●")
	chip := levelStyle(s, model.Level2, t).
		Padding(d.padY[levelIndex(model.Level2)], d.padX[levelIndex(model.Level2)]).
		Render(lipgloss.JoinHorizontal(lipgloss.Center, icon, " "+text.Render("Chip")))
	button := levelStyle(s, model.Level3, t).
		Padding(d.padY[levelIndex(model.Level3)], d.padX[levelIndex(model.Level3)]).
		Render(lipgloss.JoinHorizontal(lipgloss.Center, chip, " "+text.Bold(true).Render("Button")))

	title := text.Bold(true).Render("Card title")
	body := muted.Render("Nested radii stay concentric.")
	card := levelStyle(s, model.Level4, t).
		Padding(d.padY[levelIndex(model.Level4)], d.padX[levelIndex(model.Level4)]).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body, "", button))
	return card
}

// RenderLegend lists each level with its computed radius and padding.
func RenderLegend(s model.Snapshot, t Theme) string {
	name := t.Renderer.NewStyle().Foreground(t.Subtext)
	var b strings.Builder
	for _, l := range []model.Level{model.Level4, model.Level3, model.Level2, model.Level1} {
		swatch := t.Renderer.NewStyle().Foreground(t.Levels[levelIndex(l)]).Render("■")
		r := s.RadiusOf(l)
		val := tokens.Label(r)
		if l < model.Level3 && r == 0 && s.Config.Radius > 0 {
			val += " (clamped)"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s\n",
			swatch,
			runewidth.FillRight(l.Key(), 7),
			runewidth.FillRight(val, 14),
			name.Render(l.Title())))
	}
	return strings.TrimRight(b.String(), "\n")
}
