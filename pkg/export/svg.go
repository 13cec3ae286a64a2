package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

const (
	canvasMargin = 24
	legendLine   = 18
)

// canvasSize returns the drawing size for a layout including the legend.
func canvasSize(boxes []Box) (w, h int) {
	w = int(math.Ceil(ContainerWidth)) + 2*canvasMargin
	h = int(math.Ceil(boxes[0].H)) + 2*canvasMargin + len(boxes)*legendLine
	return w, h
}

// legend returns one line per level, outermost first.
func legend(boxes []Box) []string {
	lines := make([]string, len(boxes))
	for i, b := range boxes {
		lines[i] = fmt.Sprintf("Level %d  %-28s radius %s", int(b.Level), b.Level.Title(), tokens.Label(b.Radius))
	}
	return lines
}

// WriteSVG draws the nested shapes of s as an SVG document.
func WriteSVG(w io.Writer, s model.Snapshot) error {
	boxes := Layout(s)
	cw, ch := canvasSize(boxes)

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(cw, ch)
	canvas.Title("Concentric radii")
	canvas.Rect(0, 0, cw, ch, "fill:#ffffff")

	canvas.Gid("levels")
	for _, b := range boxes {
		r := int(math.Round(b.Corner))
		canvas.Roundrect(
			canvasMargin+int(math.Round(b.X)), canvasMargin+int(math.Round(b.Y)),
			int(math.Round(b.W)), int(math.Round(b.H)),
			r, r,
			fmt.Sprintf("fill:%s;stroke:#6333e3;stroke-width:0.5", b.Fill),
			fmt.Sprintf(`data-level="%d"`, int(b.Level)),
		)
	}
	canvas.Gend()

	top := canvasMargin*2 + int(math.Ceil(boxes[0].H))
	for i, line := range legend(boxes) {
		canvas.Text(canvasMargin, top+i*legendLine, line, "font-family:monospace;font-size:12px;fill:#25006b")
	}
	canvas.End()
	return ew.err
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
