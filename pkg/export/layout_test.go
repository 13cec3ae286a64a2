package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

func TestLayoutInsets(t *testing.T) {
	boxes := Layout(defaultSnapshot())
	if len(boxes) != 4 {
		t.Fatalf("got %d boxes", len(boxes))
	}

	want := []Box{
		{Level: model.Level4, X: 0, Y: 0, W: 360, H: 88, Radius: 32, Corner: 32},
		{Level: model.Level3, X: 20, Y: 20, W: 320, H: 48, Radius: 12, Corner: 12},
		{Level: model.Level2, X: 24, Y: 24, W: 312, H: 40, Radius: 8, Corner: 8},
		{Level: model.Level1, X: 26, Y: 26, W: 308, H: 36, Radius: 6, Corner: 6},
	}
	for i, w := range want {
		b := boxes[i]
		b.Fill = ""
		if b != w {
			t.Errorf("box %d = %+v, want %+v", i, b, w)
		}
		if boxes[i].Fill == "" {
			t.Errorf("box %d has no fill", i)
		}
	}
}

func TestLayoutCircularCornerLimited(t *testing.T) {
	p := model.NewPlayground(tokens.Default(), model.DefaultSelection()).WithRadius(14)
	for _, b := range Layout(p.Snapshot(testNow)) {
		if b.Corner != b.H/2 && b.Corner != b.W/2 {
			t.Errorf("level %d corner %v not limited to half side (%vx%v)", b.Level, b.Corner, b.W, b.H)
		}
	}
}

func TestLayoutNeverNegative(t *testing.T) {
	p := model.NewPlayground(tokens.Default(), model.DefaultSelection()).
		WithPadding(10).WithChildPadding(10).WithOuterPadding(0)
	for _, b := range Layout(p.Snapshot(testNow)) {
		if b.W < 0 || b.H < 0 || b.Corner < 0 {
			t.Errorf("level %d has negative geometry: %+v", b.Level, b)
		}
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, defaultSnapshot()); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Fatalf("not an svg document:\n%s", out)
	}
	if n := strings.Count(out, "<rect"); n != 5 { // background + 4 levels
		t.Errorf("got %d rects, want 5", n)
	}
	for _, s := range []string{`data-level="4"`, `rx="32"`, "radius 6px"} {
		if !strings.Contains(out, s) {
			t.Errorf("svg missing %q", s)
		}
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, defaultSnapshot(), 2); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	w, h := canvasSize(Layout(defaultSnapshot()))
	if b := img.Bounds(); b.Dx() != 2*w || b.Dy() != 2*h {
		t.Errorf("png size %dx%d, want %dx%d", b.Dx(), b.Dy(), 2*w, 2*h)
	}
}
