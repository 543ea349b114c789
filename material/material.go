// Package material defines the closed set of particle materials and their
// static physical properties.
package material

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Type tags the material occupying a grid cell.
type Type uint8

const (
	Empty Type = iota
	Border
	Stone
	Sand
	Gravel
	Water
	Oil

	numTypes
)

// Behavior selects the movement rule applied to a material.
type Behavior uint8

const (
	Static   Behavior = iota // never moves
	Granular                 // falls, then slides diagonally
	Fluid                    // falls, slides diagonally, then spreads sideways
)

// Properties holds the static per-material table entry.
type Properties struct {
	Name     string
	Color    color.RGBA
	Weight   float64 // +Inf for static materials
	Movable  bool
	Fluid    bool
	Behavior Behavior
}

var table = [numTypes]Properties{
	Empty: {
		Name:   "empty",
		Color:  color.RGBA{R: 12, G: 12, B: 18, A: 255},
		Weight: 0.1,
	},
	Border: {
		Name:   "border",
		Color:  color.RGBA{R: 70, G: 70, B: 78, A: 255},
		Weight: math.Inf(1),
	},
	Stone: {
		Name:   "stone",
		Color:  color.RGBA{R: 128, G: 128, B: 136, A: 255},
		Weight: math.Inf(1),
	},
	Sand: {
		Name:     "sand",
		Color:    color.RGBA{R: 214, G: 174, B: 128, A: 255},
		Weight:   1.5,
		Movable:  true,
		Behavior: Granular,
	},
	Gravel: {
		Name:     "gravel",
		Color:    color.RGBA{R: 120, G: 104, B: 90, A: 255},
		Weight:   2.5,
		Movable:  true,
		Behavior: Granular,
	},
	Water: {
		Name:     "water",
		Color:    color.RGBA{R: 40, G: 110, B: 220, A: 255},
		Weight:   1.0,
		Movable:  true,
		Fluid:    true,
		Behavior: Fluid,
	},
	Oil: {
		Name:     "oil",
		Color:    color.RGBA{R: 90, G: 60, B: 30, A: 255},
		Weight:   0.8,
		Movable:  true,
		Fluid:    true,
		Behavior: Fluid,
	},
}

// Props returns the property table entry for t.
func (t Type) Props() *Properties {
	return &table[t]
}

// String returns the material name.
func (t Type) String() string {
	if t >= numTypes {
		return fmt.Sprintf("material(%d)", uint8(t))
	}
	return table[t].Name
}

// Weight is shorthand for t.Props().Weight.
func (t Type) Weight() float64 { return table[t].Weight }

// Movable reports whether particles of this type carry movement state.
func (t Type) Movable() bool { return table[t].Movable }

// Fluid reports whether particles of this type carry a flow bias.
func (t Type) Fluid() bool { return table[t].Fluid }

// Color is shorthand for t.Props().Color.
func (t Type) Color() color.RGBA { return table[t].Color }

// All returns every material type in declaration order.
func All() []Type {
	types := make([]Type, numTypes)
	for i := range types {
		types[i] = Type(i)
	}
	return types
}

// Placeable returns the materials a user may paint with. Border is reserved
// for the world edge.
func Placeable() []Type {
	var types []Type
	for _, t := range All() {
		if t != Border {
			types = append(types, t)
		}
	}
	return types
}

// ParseType resolves a material name (case-insensitive).
func ParseType(name string) (Type, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i := range table {
		if table[i].Name == n {
			return Type(i), nil
		}
	}
	return Empty, fmt.Errorf("unknown material %q", name)
}

// MarshalText implements encoding.TextMarshaler so materials read as names in
// YAML and CSV output.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
