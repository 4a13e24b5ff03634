// Package shapes generates the per-particle target positions of every morph shape.
//
// All targets are computed once at startup. Each shape is a function from particle
// index (and particle count) to a 3D point, optionally consuming random numbers from
// a stream dedicated to that shape.
package shapes

import (
	"errors"
	"fmt"
	"strings"
)

// Shape identifies a morph target.
type Shape uint8

const (
	Random Shape = iota // The unmorphed initial cloud
	Logo
	Sphere
	DNA
	Grid
	DataGrid
	Torus
	Galaxy
	Cube

	NumShapes
)

var shapeNames = [NumShapes]string{
	Random:   "random",
	Logo:     "logo",
	Sphere:   "sphere",
	DNA:      "dna",
	Grid:     "grid",
	DataGrid: "datagrid",
	Torus:    "torus",
	Galaxy:   "galaxy",
	Cube:     "cube",
}

// ErrUnknownShape is returned when a shape name does not match any target.
var ErrUnknownShape = errors.New("unknown shape")

// String returns the shape's stable name.
func (s Shape) String() string {
	if s < NumShapes {
		return shapeNames[s]
	}
	return fmt.Sprintf("shape(%d)", uint8(s))
}

// Parse maps a name to a shape. Matching is case-insensitive.
func Parse(name string) (Shape, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range shapeNames {
		if candidate == n {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// ParseList maps a list of names, failing on the first unknown one.
func ParseList(names []string) ([]Shape, error) {
	out := make([]Shape, 0, len(names))
	for _, name := range names {
		s, err := Parse(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// All returns every shape including Random, in declaration order.
func All() []Shape {
	out := make([]Shape, NumShapes)
	for i := range out {
		out[i] = Shape(i)
	}
	return out
}

// Targets returns every shape a particle can be pulled toward (all but Random).
func Targets() []Shape {
	return All()[1:]
}
