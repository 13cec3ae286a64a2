// Package sweep tabulates the inner radius over every radius and padding
// token pair.
package sweep

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/Dicklesworthstone/radius_viewer/pkg/radius"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

// Grid returns a radii.Len() × spacing.Len() matrix whose (i, j) entry is
// InnerRadius(radii[i], spacing[j]).
func Grid(radii, spacing tokens.Scale) *mat.Dense {
	r, c := radii.Len(), spacing.Len()
	if r == 0 || c == 0 {
		return nil
	}
	g := mat.NewDense(r, c, nil)
	for i, rt := range radii.Tokens {
		for j, st := range spacing.Tokens {
			g.Set(i, j, radius.InnerRadius(rt.Value, st.Value))
		}
	}
	return g
}

// Stats summarises a grid: the share of cells clamped to zero and the
// largest non-circular inner radius.
type Stats struct {
	Cells     int
	Clamped   int
	Circular  int
	MaxFinite float64
}

// Summarize computes Stats over g.
func Summarize(g *mat.Dense) Stats {
	if g == nil {
		return Stats{}
	}
	r, c := g.Dims()
	st := Stats{Cells: r * c}
	finite := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for _, v := range g.RawRowView(i) {
			switch {
			case radius.IsCircular(v):
				st.Circular++
			case v == 0:
				st.Clamped++
				finite = append(finite, v)
			default:
				finite = append(finite, v)
			}
		}
	}
	if len(finite) > 0 {
		st.MaxFinite = floats.Max(finite)
	}
	return st
}

// Render writes g as an aligned table: one row per radius token, one column
// per spacing token. Circular cells print as "○".
func Render(w io.Writer, g *mat.Dense, radii, spacing tokens.Scale) error {
	if g == nil {
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	}
	r, c := g.Dims()
	if r != radii.Len() || c != spacing.Len() {
		return fmt.Errorf("grid is %dx%d but scales are %dx%d", r, c, radii.Len(), spacing.Len())
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	head := make([]string, 0, c+1)
	head = append(head, "radius \\ padding")
	for _, t := range spacing.Tokens {
		head = append(head, tokens.Format(t.Value))
	}
	fmt.Fprintln(tw, strings.Join(head, "\t")+"\t")

	for i, t := range radii.Tokens {
		row := make([]string, 0, c+1)
		row = append(row, fmt.Sprintf("%s %s", t.Name, tokens.Label(t.Value)))
		for _, v := range g.RawRowView(i) {
			if radius.IsCircular(v) {
				row = append(row, "○")
				continue
			}
			row = append(row, tokens.Format(v))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	return tw.Flush()
}
