// Package wizard walks the user through picking a token combination with a
// short huh form, as an alternative to the full viewer.
package wizard

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

// Options configures Run.
type Options struct {
	Input      io.Reader
	Output     io.Writer
	Accessible bool
}

// TokenOptions lists a scale as huh options keyed "name (12px)" with the
// token index as value.
func TokenOptions(sc tokens.Scale) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, sc.Len())
	for i, t := range sc.Tokens {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", t.Name, tokens.Label(t.Value)), i))
	}
	return opts
}

// ValidateSize checks the size field of the form.
func ValidateSize(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("size must be a whole number of pixels")
	}
	if n < model.MinSize || n > model.MaxSize {
		return fmt.Errorf("size must be between %d and %d", model.MinSize, model.MaxSize)
	}
	return nil
}

// state holds the values the form fields write into.
type state struct {
	radius, padding, childPadding, outerPadding int
	size                                        string
}

func newState(p model.Playground) *state {
	return &state{
		radius:       p.Sel.Radius,
		padding:      p.Sel.Padding,
		childPadding: p.Sel.ChildPadding,
		outerPadding: p.Sel.OuterPadding,
		size:         strconv.Itoa(p.Sel.Size),
	}
}

// apply folds the answers into p. Size goes last so the auto-fit sees the
// chosen paddings.
func (s *state) apply(p model.Playground) model.Playground {
	p = p.WithRadius(s.radius).
		WithPadding(s.padding).
		WithChildPadding(s.childPadding).
		WithOuterPadding(s.outerPadding)
	if n, err := strconv.Atoi(s.size); err == nil {
		p = p.WithSize(n)
	}
	return p
}

func (s *state) form(p model.Playground) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Border radius").
				Description("Level 3, the primary interactive control").
				Options(TokenOptions(p.Radii)...).
				Value(&s.radius),
			huh.NewSelect[int]().
				Title("Padding").
				Description("Between level 3 and level 2").
				Options(TokenOptions(p.Spacing)...).
				Value(&s.padding),
			huh.NewInput().
				Title("Size (px)").
				Value(&s.size).
				Validate(ValidateSize),
		).Title(model.Level3.Title()),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Child padding").
				Description("Between level 2 and level 1").
				Options(TokenOptions(p.Spacing)...).
				Value(&s.childPadding),
			huh.NewSelect[int]().
				Title("Outer padding").
				Description("Between level 4 and level 3").
				Options(TokenOptions(p.Spacing)...).
				Value(&s.outerPadding),
		).Title("Surrounding levels"),
	).WithTheme(huh.ThemeCharm())
}

// Run asks for the four tokens and the size, starting from p, and returns
// the updated playground. A cancelled form returns huh.ErrUserAborted.
func Run(ctx context.Context, p model.Playground, opts Options) (model.Playground, error) {
	s := newState(p)
	f := s.form(p).WithAccessible(opts.Accessible)
	if opts.Input != nil {
		f = f.WithInput(opts.Input)
	}
	if opts.Output != nil {
		f = f.WithOutput(opts.Output)
	}
	if err := f.RunWithContext(ctx); err != nil {
		return p, err
	}
	return s.apply(p), nil
}
