package export

import (
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
)

// WritePNG rasterizes the nested shapes of s at the given scale (1 = one
// pixel per CSS pixel). Scales below 1 are raised to 1.
func WritePNG(w io.Writer, s model.Snapshot, scale float64) error {
	if scale < 1 {
		scale = 1
	}
	boxes := Layout(s)
	cw, ch := canvasSize(boxes)

	dc := gg.NewContext(int(math.Ceil(float64(cw)*scale)), int(math.Ceil(float64(ch)*scale)))
	dc.Scale(scale, scale)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	for _, b := range boxes {
		dc.DrawRoundedRectangle(canvasMargin+b.X, canvasMargin+b.Y, b.W, b.H, b.Corner)
		dc.SetHexColor(b.Fill)
		dc.FillPreserve()
		dc.SetHexColor("#6333e3")
		dc.SetLineWidth(0.5)
		dc.Stroke()
	}

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetHexColor("#25006b")
	top := float64(canvasMargin*2) + math.Ceil(boxes[0].H)
	for i, line := range legend(boxes) {
		dc.DrawString(line, canvasMargin, top+float64(i*legendLine))
	}
	return dc.EncodePNG(w)
}
