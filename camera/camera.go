// Package camera provides the perspective camera for the particle scene.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/morph/config"
)

var worldUp = r3.Vec{Y: 1}

// Camera is a look-at perspective camera with a vertical field of view.
type Camera struct {
	// Position is the eye in world coordinates
	Position r3.Vec

	// Target is the point the camera looks at
	Target r3.Vec

	// FovY is the vertical field of view in radians
	FovY float64

	// Clip range along the view direction
	Near, Far float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	aspect float64
	sway   config.CameraConfig

	// View basis, recomputed by Update
	right, up, forward r3.Vec
	focal              float64 // 1 / tan(FovY/2)
}

// New creates a camera on the +Z axis looking at the origin, sized to the
// configured screen.
func New(cfg *config.Config) *Camera {
	c := &Camera{
		Position:  r3.Vec{Z: cfg.Camera.Distance},
		FovY:      cfg.Derived.FovYRad,
		Near:      cfg.Camera.Near,
		Far:       cfg.Camera.Far,
		ViewportW: float64(cfg.Screen.Width),
		ViewportH: float64(cfg.Screen.Height),
		aspect:    cfg.Derived.Aspect,
		sway:      cfg.Camera,
	}
	c.updateBasis()
	return c
}

// Aspect returns the viewport width over height.
func (c *Camera) Aspect() float64 {
	return c.aspect
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	if viewportH > 0 {
		c.aspect = viewportW / viewportH
	}
}

// Update moves the eye along the sway path when sway is enabled and re-aims at Target.
func (c *Camera) Update(t float64) {
	if c.sway.Sway {
		c.Position.X = math.Sin(t*c.sway.SwayFreqX) * c.sway.SwayX
		c.Position.Y = math.Cos(t*c.sway.SwayFreqY) * c.sway.SwayY
	}
	c.updateBasis()
}

func (c *Camera) updateBasis() {
	c.forward = r3.Unit(r3.Sub(c.Target, c.Position))
	c.right = r3.Unit(r3.Cross(c.forward, worldUp))
	c.up = r3.Cross(c.right, c.forward)
	c.focal = 1 / math.Tan(c.FovY/2)
}

// Depth returns the distance of p in front of the eye along the view direction.
func (c *Camera) Depth(p r3.Vec) float64 {
	return r3.Dot(r3.Sub(p, c.Position), c.forward)
}

// WorldToScreen projects p to pixel coordinates with y pointing down.
// ok is false when p lies outside the near/far range.
func (c *Camera) WorldToScreen(p r3.Vec) (sx, sy, depth float64, ok bool) {
	d := r3.Sub(p, c.Position)
	depth = r3.Dot(d, c.forward)
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}
	ndcX := r3.Dot(d, c.right) * c.focal / (depth * c.Aspect())
	ndcY := r3.Dot(d, c.up) * c.focal / depth

	sx = (ndcX + 1) / 2 * c.ViewportW
	sy = (1 - ndcY) / 2 * c.ViewportH
	return sx, sy, depth, true
}

// ScreenToWorld returns the point at the given depth under a pixel.
func (c *Camera) ScreenToWorld(sx, sy, depth float64) r3.Vec {
	ndcX := sx/c.ViewportW*2 - 1
	ndcY := 1 - sy/c.ViewportH*2

	x := ndcX * depth * c.Aspect() / c.focal
	y := ndcY * depth / c.focal
	p := r3.Add(c.Position, r3.Scale(depth, c.forward))
	p = r3.Add(p, r3.Scale(x, c.right))
	return r3.Add(p, r3.Scale(y, c.up))
}

// IsVisible returns true if a sprite of the given pixel radius centered at
// (sx, sy) overlaps the viewport.
func (c *Camera) IsVisible(sx, sy, radius float64) bool {
	return sx+radius >= 0 && sx-radius <= c.ViewportW &&
		sy+radius >= 0 && sy-radius <= c.ViewportH
}
