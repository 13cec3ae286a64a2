package tokens

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileToken accepts either "12px" or a bare number for the value.
type fileToken struct {
	Name  string    `yaml:"name"`
	Value yaml.Node `yaml:"value"`
}

type tokenFile struct {
	Spacing []fileToken `yaml:"spacing"`
	Radius  []fileToken `yaml:"radius"`
}

// Set is a spacing and radius scale loaded together.
type Set struct {
	Spacing Scale
	Radii   Scale
}

// Default returns the built-in token set.
func Default() Set {
	return Set{Spacing: Spacing(), Radii: Radii()}
}

// Load reads a YAML token file. A scale missing from the file falls back to
// the built-in one.
//
//	spacing:
//	  - {name: spacingS, value: 8px}
//	radius:
//	  - {name: pill, value: 9999}
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("read token file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML token document.
func Parse(data []byte) (Set, error) {
	var f tokenFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Set{}, fmt.Errorf("decode token file: %w", err)
	}

	set := Default()
	if len(f.Spacing) > 0 {
		sc, err := convert("spacing", f.Spacing)
		if err != nil {
			return Set{}, err
		}
		set.Spacing = sc
	}
	if len(f.Radius) > 0 {
		sc, err := convert("radius", f.Radius)
		if err != nil {
			return Set{}, err
		}
		set.Radii = sc
	}
	return set, nil
}

func convert(name string, in []fileToken) (Scale, error) {
	sc := Scale{Name: name, Tokens: make([]Token, 0, len(in))}
	for i, ft := range in {
		if ft.Value.Kind != yaml.ScalarNode {
			return Scale{}, fmt.Errorf("%s token %d (%s): value must be a scalar", name, i, ft.Name)
		}
		v, err := ParsePx(ft.Value.Value)
		if err != nil {
			return Scale{}, fmt.Errorf("%s token %d (%s): %w", name, i, ft.Name, err)
		}
		if ft.Name == "" {
			ft.Name = Format(v)
		}
		sc.Tokens = append(sc.Tokens, Token{Name: ft.Name, Value: v})
	}
	if err := sc.Validate(); err != nil {
		return Scale{}, err
	}
	return sc, nil
}
