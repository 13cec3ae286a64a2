package radius

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNegative is returned by Validate for a negative field.
	ErrNegative = errors.New("value must not be negative")
	// ErrNonFinite is returned by Validate for NaN or infinite fields.
	ErrNonFinite = errors.New("value must be finite")
)

// InvalidValueError names the Config field that failed validation.
type InvalidValueError struct {
	Field string
	Value float64
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *InvalidValueError) Unwrap() error { return e.Err }

// Config is a snapshot of the inputs for one nested shape stack, in pixels.
// It is a value type: callers build a new one whenever an input changes.
type Config struct {
	Radius       float64 // level 3 (interactive control) radius
	Padding      float64 // level 3 padding, between level 3 and level 2
	ChildPadding float64 // level 2 padding, between level 2 and level 1
	OuterPadding float64 // level 4 padding, between level 4 and level 3
	Size         float64 // level 3 height
}

// DefaultConfig mirrors the playground's initial slider positions.
func DefaultConfig() Config {
	return Config{
		Radius:       12,
		Padding:      4,
		ChildPadding: 2,
		OuterPadding: 20,
		Size:         48,
	}
}

// Validate rejects negative and non-finite fields. The derivation functions
// never validate; callers building a Config from outside input do.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"radius", c.Radius},
		{"padding", c.Padding},
		{"child padding", c.ChildPadding},
		{"outer padding", c.OuterPadding},
		{"size", c.Size},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &InvalidValueError{Field: f.name, Value: f.value, Err: ErrNonFinite}
		}
		if f.value < 0 {
			return &InvalidValueError{Field: f.name, Value: f.value, Err: ErrNegative}
		}
	}
	return nil
}

// Levels holds the derived radius of every nested layer.
type Levels struct {
	Level4 float64 // molecular container
	Level3 float64 // primary interactive control
	Level2 float64 // small interactive primitive
	Level1 float64 // atomic element
}

// Levels derives the radius of each layer from the config.
func (c Config) Levels() Levels {
	return Levels{
		Level4: OuterRadius(c.Radius, c.OuterPadding),
		Level3: c.Radius,
		Level2: InnerRadius(c.Radius, c.Padding),
		Level1: InnerContainerRadius(c.Radius, c.Padding, c.ChildPadding),
	}
}

// Slice returns the levels outermost first.
func (l Levels) Slice() []float64 {
	return []float64{l.Level4, l.Level3, l.Level2, l.Level1}
}
