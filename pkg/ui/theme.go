package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

// Theme bundles the renderer and the semantic colours every view uses.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor

	// Levels holds the border colour of each nested level, level 4 first.
	Levels [4]lipgloss.AdaptiveColor
}

// DefaultTheme builds the brand theme on r. A nil renderer uses the
// lipgloss default.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	t := Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: tokens.BrandHex("brand600"), Dark: tokens.BrandHex("brand1100")},
		Secondary: lipgloss.AdaptiveColor{Light: tokens.BrandHex("brand900"), Dark: tokens.BrandHex("brand1300")},
		Text:      lipgloss.AdaptiveColor{Light: "#242424", Dark: "#F5F5F5"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#616161", Dark: "#ADADAD"},
		Border:    lipgloss.AdaptiveColor{Light: "#D1D1D1", Dark: "#525252"},
		Success:   lipgloss.AdaptiveColor{Light: "#107C10", Dark: "#54B054"},
		Warning:   lipgloss.AdaptiveColor{Light: "#BC4B09", Dark: "#F98845"},
		Danger:    lipgloss.AdaptiveColor{Light: "#C50F1F", Dark: "#DC626D"},
	}
	// Light terminals get the darker end of the ramp so borders stay
	// visible against the background.
	light := [4]string{"brand500", "brand700", "brand900", "brand1100"}
	for i, name := range tokens.LevelFill {
		t.Levels[i] = lipgloss.AdaptiveColor{Light: tokens.BrandHex(light[i]), Dark: tokens.BrandHex(name)}
	}
	return t
}

// ThemeFor returns DefaultTheme with the background forced for "dark" and
// "light". Any other name keeps terminal detection.
func ThemeFor(name string, r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	switch name {
	case "dark":
		r.SetHasDarkBackground(true)
	case "light":
		r.SetHasDarkBackground(false)
	}
	return DefaultTheme(r)
}
