package export

import (
	"math"

	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

// ContainerWidth is the fixed width of the level 4 container, in pixels.
const ContainerWidth = 360.0

// Box is one nested level laid out in pixel space.
type Box struct {
	Level model.Level
	X, Y  float64
	W, H  float64
	// Radius is the derived radius; Corner is what a renderer can draw,
	// i.e. Radius limited to half the shorter side.
	Radius float64
	Corner float64
	Fill   string
}

// Layout places the four levels of a snapshot, outermost first. Each level
// is inset by its parent's padding. Boxes never go below zero size.
func Layout(s model.Snapshot) []Box {
	outer := s.Config.OuterPadding
	h4 := s.Config.Size + 2*outer

	boxes := make([]Box, 0, 4)
	x, y, w, h := 0.0, 0.0, ContainerWidth, h4
	for i, l := range []model.Level{model.Level4, model.Level3, model.Level2, model.Level1} {
		if i > 0 {
			inset := s.PaddingOf(l + 1)
			x, y = x+inset, y+inset
			w, h = math.Max(0, w-2*inset), math.Max(0, h-2*inset)
		}
		r := s.RadiusOf(l)
		boxes = append(boxes, Box{
			Level:  l,
			X:      x,
			Y:      y,
			W:      w,
			H:      h,
			Radius: r,
			Corner: math.Min(r, math.Min(w, h)/2),
			Fill:   tokens.BrandHex(tokens.LevelFill[i]),
		})
	}
	return boxes
}
