package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// smoothstep is the GLSL Hermite step: 0 below edge0, 1 above edge1.
func smoothstep(edge0, edge1, x float64) float64 {
	if edge1 == edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// lerp mixes a toward b by w.
func lerp(a, b r3.Vec, w float64) r3.Vec {
	return r3.Add(a, r3.Scale(w, r3.Sub(b, a)))
}

// rotateY rotates p about the Y axis by angle radians.
func rotateY(p r3.Vec, angle float64) r3.Vec {
	s, c := math.Sincos(angle)
	return r3.Vec{
		X: c*p.X - s*p.Z,
		Y: p.Y,
		Z: s*p.X + c*p.Z,
	}
}
