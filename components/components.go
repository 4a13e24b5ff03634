// Package components defines ECS components for the particle cloud.
//
// Every particle is one entity. All components are written once at spawn
// and only read by the frame passes afterwards.
package components

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/morph/shapes"
)

// Particle identifies a particle by its index in the generated set.
type Particle struct {
	Index int32
}

// Base is the particle's position in the unmorphed random cloud.
type Base struct {
	Pos r3.Vec
}

// Targets holds the particle's position in every shape, indexed by shapes.Shape.
type Targets struct {
	Pos [shapes.NumShapes]r3.Vec
}

// Appearance holds the per-particle base color and size.
type Appearance struct {
	R, G, B float32 // sRGB channels in [0, 1]
	Size    float32 // World size before perspective scaling
}

// Velocity is stored per particle but not integrated.
type Velocity struct {
	V r3.Vec
}
