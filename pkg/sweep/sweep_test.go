package sweep

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/radius_viewer/pkg/radius"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

func TestGridMatchesInnerRadius(t *testing.T) {
	radii, spacing := tokens.Radii(), tokens.Spacing()
	g := Grid(radii, spacing)

	r, c := g.Dims()
	if r != radii.Len() || c != spacing.Len() {
		t.Fatalf("Dims() = %dx%d, want %dx%d", r, c, radii.Len(), spacing.Len())
	}
	for i, rt := range radii.Tokens {
		for j, st := range spacing.Tokens {
			want := radius.InnerRadius(rt.Value, st.Value)
			if got := g.At(i, j); got != want {
				t.Errorf("At(%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestGridEmptyScale(t *testing.T) {
	if g := Grid(tokens.Scale{}, tokens.Spacing()); g != nil {
		t.Errorf("expected nil grid for empty scale")
	}
}

func TestSummarize(t *testing.T) {
	radii := tokens.Scale{Name: "radius", Tokens: []tokens.Token{
		{Name: "a", Value: 4},
		{Name: "round", Value: radius.Circular},
	}}
	spacing := tokens.Scale{Name: "spacing", Tokens: []tokens.Token{
		{Name: "x", Value: 2},
		{Name: "y", Value: 8},
	}}
	st := Summarize(Grid(radii, spacing))

	if st.Cells != 4 {
		t.Errorf("Cells = %d, want 4", st.Cells)
	}
	if st.Circular != 2 {
		t.Errorf("Circular = %d, want 2", st.Circular)
	}
	if st.Clamped != 1 {
		t.Errorf("Clamped = %d, want 1", st.Clamped)
	}
	if st.MaxFinite != 2 {
		t.Errorf("MaxFinite = %v, want 2", st.MaxFinite)
	}
}

func TestRender(t *testing.T) {
	radii := tokens.Scale{Name: "radius", Tokens: []tokens.Token{
		{Name: "radiusLarge", Value: 12},
		{Name: "radiusCircular", Value: radius.Circular},
	}}
	spacing := tokens.Scale{Name: "spacing", Tokens: []tokens.Token{
		{Name: "spacingXS", Value: 4},
		{Name: "spacingL", Value: 16},
	}}
	var buf bytes.Buffer
	if err := Render(&buf, Grid(radii, spacing), radii, spacing); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	for _, want := range []string{"4px", "16px"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("header missing %q: %s", want, lines[0])
		}
	}
	if !strings.Contains(lines[1], "8px") || !strings.Contains(lines[1], "0px") {
		t.Errorf("radiusLarge row = %q, want 8px and 0px", lines[1])
	}
	if strings.Count(lines[2], "○") != 2 {
		t.Errorf("circular row = %q, want two circular cells", lines[2])
	}
}

func TestRenderShapeMismatch(t *testing.T) {
	g := Grid(tokens.Radii(), tokens.Spacing())
	var buf bytes.Buffer
	if err := Render(&buf, g, tokens.Radii(), tokens.Scale{Name: "x", Tokens: []tokens.Token{{Name: "a"}}}); err == nil {
		t.Fatal("expected shape mismatch error")
	}
}
