package systems

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Pointer is the smoothed pointer influence in normalized device coordinates.
type Pointer struct {
	Raw    r2.Vec // Last reported position, x right and y up, both in [-1, 1]
	Offset r2.Vec // Exponentially smoothed Raw
}

// Smooth moves Offset toward Raw by factor k.
func (p *Pointer) Smooth(k float64) {
	p.Offset = r2.Add(p.Offset, r2.Scale(k, r2.Sub(p.Raw, p.Offset)))
}

// NormalizePointer converts window pixel coordinates to NDC with y pointing up.
// A degenerate window yields the origin.
func NormalizePointer(x, y, width, height float64) r2.Vec {
	if width <= 0 || height <= 0 {
		return r2.Vec{}
	}
	return r2.Vec{
		X: x/width*2 - 1,
		Y: -(y/height)*2 + 1,
	}
}
