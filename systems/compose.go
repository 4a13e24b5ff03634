package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/shapes"
)

// FoldOrder is the fixed priority in which shape targets are folded into a
// particle position. Later shapes win when several weights are non-zero.
var FoldOrder = []shapes.Shape{
	shapes.Logo,
	shapes.Sphere,
	shapes.DNA,
	shapes.Torus,
	shapes.Cube,
	shapes.Grid,
	shapes.DataGrid,
	shapes.Galaxy,
}

// Deform animates a target before it is mixed in.
type Deform func(p r3.Vec, u *Uniforms) r3.Vec

// FoldStep is one entry of the fold table.
type FoldStep struct {
	Shape  shapes.Shape
	Deform Deform // nil leaves the target unchanged
}

// Uniforms are the per-frame values shared by every particle.
type Uniforms struct {
	Time        float64
	Weights     [shapes.NumShapes]float64
	ShapeFactor float64
	Pointer     r2.Vec
	PixelRatio  float64
	Spin        bool    // Rotate the whole cloud this frame
	SpinAngle   float64 // Radians about Y
	GalaxyAngle float64 // Radians about Y applied to the galaxy target
}

// Composer computes the per-particle vertex stage: the shape fold, target
// deformations, pointer shift, spin, point size and alpha.
type Composer struct {
	render     config.RenderConfig
	pointer    config.PointerConfig
	folds      []FoldStep
	spinShapes []shapes.Shape
}

// NewComposer builds the fold table from FoldOrder.
func NewComposer(cfg *config.Config) (*Composer, error) {
	spin, err := shapes.ParseList(cfg.Render.SpinShapes)
	if err != nil {
		return nil, err
	}
	c := &Composer{
		render:     cfg.Render,
		pointer:    cfg.Pointer,
		spinShapes: spin,
	}
	deforms := map[shapes.Shape]Deform{
		shapes.Grid:     c.gridWave,
		shapes.DataGrid: c.ripple,
		shapes.Galaxy:   c.galaxySpin,
	}
	for _, s := range FoldOrder {
		c.folds = append(c.folds, FoldStep{Shape: s, Deform: deforms[s]})
	}
	return c, nil
}

// Folds returns the fold table in application order.
func (c *Composer) Folds() []FoldStep {
	return c.folds
}

// Frame derives the uniforms for state s.
func (c *Composer) Frame(s *FrameState, pixelRatio float64) Uniforms {
	u := Uniforms{
		Time:        s.Time,
		Weights:     s.Blend.Values(),
		ShapeFactor: s.ShapeFactor,
		Pointer:     s.Pointer.Offset,
		PixelRatio:  pixelRatio,
		GalaxyAngle: s.Time * c.render.GalaxySpin,
	}
	for _, shape := range c.spinShapes {
		if u.Weights[shape] > c.render.SpinThreshold {
			u.Spin = true
			u.SpinAngle = s.Time * c.render.SpinSpeed
			break
		}
	}
	return u
}

// gridWave replaces the flat grid height with a radial wave.
func (c *Composer) gridWave(p r3.Vec, u *Uniforms) r3.Vec {
	r := c.render
	dist := math.Hypot(p.X, p.Z)
	p.Y = math.Sin(dist*r.GridWaveFrequency-u.Time*r.GridWaveSpeed) * r.GridWaveAmplitude
	return p
}

// ripple adds a travelling wave to the data grid depth.
func (c *Composer) ripple(p r3.Vec, u *Uniforms) r3.Vec {
	r := c.render
	wave := math.Sin(p.X*r.RippleFrequency+u.Time) * math.Cos(p.Y*r.RippleFrequency+u.Time*r.RippleSpeedY)
	p.Z += wave * r.RippleAmplitude
	return p
}

func (c *Composer) galaxySpin(p r3.Vec, u *Uniforms) r3.Vec {
	return rotateY(p, u.GalaxyAngle)
}

// Position composes the world position of one particle.
func (c *Composer) Position(u *Uniforms, base r3.Vec, targets *[shapes.NumShapes]r3.Vec) r3.Vec {
	pos := base
	for _, f := range c.folds {
		w := u.Weights[f.Shape]
		if w <= 0 {
			continue
		}
		t := targets[f.Shape]
		if f.Deform != nil {
			t = f.Deform(t, u)
		}
		pos = lerp(pos, t, w)
	}

	if amp := c.render.IdleWave; amp > 0 {
		freq := c.render.IdleWaveFrequency
		wave := math.Sin(pos.X*freq+u.Time) * math.Cos(pos.Y*freq+u.Time) * amp
		pos.Z += wave * (1 - u.ShapeFactor)
	}

	influence := 1 - u.ShapeFactor*c.pointer.Damping
	pos.X += u.Pointer.X * c.pointer.Strength * influence
	pos.Y += u.Pointer.Y * c.pointer.Strength * influence

	if u.Spin {
		pos = rotateY(pos, u.SpinAngle)
	}
	return pos
}

// Appearance returns the point size in pixels and the alpha for a particle at
// view depth. Particles at or behind the eye are invisible.
func (c *Composer) Appearance(u *Uniforms, depth, size float64) (pointSize, alpha float64) {
	if depth <= 0 {
		return 0, 0
	}
	r := c.render
	pointSize = size * r.SizeReference / depth * u.PixelRatio
	alpha = (1 - smoothstep(r.FadeNear, r.FadeFar, depth)) * (r.AlphaBase + r.AlphaShape*u.ShapeFactor)
	return pointSize, alpha
}
