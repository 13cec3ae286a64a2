// Package tokens holds the design-system token scales the sliders step
// through: spacing, corner radius and the brand colour ramp.
package tokens

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Dicklesworthstone/radius_viewer/pkg/radius"
)

// Token pairs a human-readable name with a pixel value.
type Token struct {
	Name  string  `yaml:"name" json:"name"`
	Value float64 `yaml:"value" json:"value"`
}

// Px returns the token value formatted as a CSS pixel length.
func (t Token) Px() string { return Format(t.Value) }

// Scale is an ordered, immutable list of tokens addressed by slider index.
type Scale struct {
	Name   string
	Tokens []Token
}

// Len returns the number of tokens in the scale.
func (s Scale) Len() int { return len(s.Tokens) }

// Clamp forces i into the valid index range. An empty scale clamps to 0.
func (s Scale) Clamp(i int) int {
	if i < 0 || len(s.Tokens) == 0 {
		return 0
	}
	if i >= len(s.Tokens) {
		return len(s.Tokens) - 1
	}
	return i
}

// At returns the token at index i, clamped into range.
func (s Scale) At(i int) Token {
	if len(s.Tokens) == 0 {
		return Token{}
	}
	return s.Tokens[s.Clamp(i)]
}

// IndexOf returns the index of the first token named name, or -1.
func (s Scale) IndexOf(name string) int {
	for i, t := range s.Tokens {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// Nearest returns the index of the largest token whose value does not
// exceed v. Tokens are assumed to be sorted ascending; 0 is returned when
// every token is larger than v.
func (s Scale) Nearest(v float64) int {
	for i := len(s.Tokens) - 1; i >= 0; i-- {
		if s.Tokens[i].Value <= v {
			return i
		}
	}
	return 0
}

// Validate checks that the scale is non-empty with finite, non-negative
// values in non-decreasing order. Nearest and the sliders rely on the
// ordering.
func (s Scale) Validate() error {
	if len(s.Tokens) == 0 {
		return fmt.Errorf("%s scale: no tokens", s.Name)
	}
	for i, t := range s.Tokens {
		if math.IsNaN(t.Value) || math.IsInf(t.Value, 0) || t.Value < 0 {
			return fmt.Errorf("%s scale: token %d (%s) has invalid value %v", s.Name, i, t.Name, t.Value)
		}
		if i > 0 && t.Value < s.Tokens[i-1].Value {
			prev := s.Tokens[i-1]
			return fmt.Errorf("%s scale: token %d (%s, %s) is smaller than %s (%s); list tokens in ascending order",
				s.Name, i, t.Name, Format(t.Value), prev.Name, Format(prev.Value))
		}
	}
	return nil
}

// Format renders a pixel value as "12px", dropping a zero fraction.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// Label is Format with the circular sentinel spelled out.
func Label(v float64) string {
	if radius.IsCircular(v) {
		return "circular"
	}
	return Format(v)
}

// ParsePx parses "12px", "12" or "12.5px" into a pixel value.
func ParsePx(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parse pixel value %q: %w", s, err)
	}
	return v, nil
}

// Spacing returns the built-in spacing scale.
func Spacing() Scale {
	return Scale{Name: "spacing", Tokens: []Token{
		{"spacingNone", 0},
		{"spacingXXS", 2},
		{"spacingXS", 4},
		{"spacingSNudge", 6},
		{"spacingS", 8},
		{"spacingMNudge", 10},
		{"spacingM", 12},
		{"spacingL", 16},
		{"spacingXL", 20},
		{"spacingXXL", 24},
		{"spacingXXXL", 32},
	}}
}

// Radii returns the built-in border radius scale, ending with the circular
// sentinel.
func Radii() Scale {
	return Scale{Name: "radius", Tokens: []Token{
		{"radiusNone", 0},
		{"radiusSmall", 2},
		{"radiusMedium", 4},
		{"radiusLarge", 6},
		{"radiusXLarge", 8},
		{"custom", 10},
		{"custom", 12},
		{"custom", 16},
		{"custom", 20},
		{"custom", 24},
		{"custom", 28},
		{"custom", 32},
		{"custom", 36},
		{"custom", 40},
		{"radiusCircular", radius.Circular},
	}}
}

// ColorToken is a named hex colour from the brand ramp.
type ColorToken struct {
	Name string
	Hex  string
}

// Brand returns the purple brand ramp, darkest first.
func Brand() []ColorToken {
	return []ColorToken{
		{"brand100", "#0e0035"},
		{"brand200", "#190050"},
		{"brand300", "#25006b"},
		{"brand400", "#320088"},
		{"brand500", "#3f00a6"},
		{"brand600", "#4b00c0"},
		{"brand700", "#571bd1"},
		{"brand800", "#6333e3"},
		{"brand900", "#7149f7"},
		{"brand1000", "#805dff"},
		{"brand1100", "#8f79ff"},
		{"brand1200", "#9f92ff"},
		{"brand1300", "#b1a9ff"},
		{"brand1400", "#c4c0ff"},
		{"brand1500", "#d7d5ff"},
		{"brand1600", "#ebebff"},
	}
}

// BrandHex returns the hex value of the named brand colour, or "" if the
// name is unknown.
func BrandHex(name string) string {
	for _, c := range Brand() {
		if c.Name == name {
			return c.Hex
		}
	}
	return ""
}

// LevelFill is the brand colour each nested level is painted with,
// outermost (level 4) first.
var LevelFill = [4]string{"brand1600", "brand1500", "brand1300", "brand1100"}
