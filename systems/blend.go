package systems

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/shapes"
)

// Law selects how blend weights approach their targets.
type Law uint8

const (
	// LawTime moves value by (target-value)*min(1, rate*dt) each frame.
	LawTime Law = iota
	// LawStep moves value by (target-value)*step each tick regardless of dt.
	LawStep
)

// String returns the config name of the law.
func (l Law) String() string {
	switch l {
	case LawStep:
		return "step"
	default:
		return "time"
	}
}

// ParseLaw maps a config name to a Law. Empty selects LawTime.
func ParseLaw(name string) (Law, error) {
	switch strings.ToLower(name) {
	case "", "time":
		return LawTime, nil
	case "step":
		return LawStep, nil
	default:
		return 0, fmt.Errorf("unknown blend law %q", name)
	}
}

// Weight is the current and target blend weight of one shape, both in [0, 1].
type Weight struct {
	Value  float64
	Target float64
}

// Blend holds one weight per shape. It is a value type so frame states can be
// copied without aliasing.
type Blend struct {
	Weights [shapes.NumShapes]Weight

	law  Law
	rate float64
	step float64
}

// NewBlend returns the startup blend: the random cloud fully shown and the
// configured initial shape targeted.
func NewBlend(cfg config.BlendConfig) (Blend, error) {
	law, err := ParseLaw(cfg.Law)
	if err != nil {
		return Blend{}, err
	}
	b := Blend{law: law, rate: cfg.Rate, step: cfg.Step}
	b.Weights[shapes.Random].Value = 1

	initial := shapes.Logo
	if cfg.Initial != "" {
		initial, err = shapes.Parse(cfg.Initial)
		if err != nil {
			return Blend{}, fmt.Errorf("blend.initial: %w", err)
		}
	}
	b.SetTarget(initial)
	return b, nil
}

// Law returns the smoothing law in use.
func (b *Blend) Law() Law {
	return b.law
}

// SetTarget targets s fully and releases every other shape.
func (b *Blend) SetTarget(s shapes.Shape) {
	b.SetTargetValue(s, 1)
}

// SetTargetValue targets s at v (clamped to [0, 1]) and releases every other shape.
func (b *Blend) SetTargetValue(s shapes.Shape, v float64) {
	for i := range b.Weights {
		b.Weights[i].Target = 0
	}
	if s < shapes.NumShapes {
		b.Weights[s].Target = clamp01(v)
	}
}

// SetTargetByName is SetTarget for a shape name.
func (b *Blend) SetTargetByName(name string) error {
	s, err := shapes.Parse(name)
	if err != nil {
		return err
	}
	b.SetTarget(s)
	return nil
}

// factor returns the fraction of the remaining distance covered this frame.
func (b *Blend) factor(dt float64) float64 {
	if b.law == LawStep {
		return clamp01(b.step)
	}
	if dt <= 0 {
		return 0
	}
	return min(1, b.rate*dt)
}

// Advance moves every weight toward its target. Values never overshoot.
func (b *Blend) Advance(dt float64) {
	f := b.factor(dt)
	for i := range b.Weights {
		w := &b.Weights[i]
		w.Value += (w.Target - w.Value) * f
	}
}

// Value returns the current weight of s.
func (b *Blend) Value(s shapes.Shape) float64 {
	return b.Weights[s].Value
}

// Target returns the target weight of s.
func (b *Blend) Target(s shapes.Shape) float64 {
	return b.Weights[s].Target
}

// Values returns the current weight of every shape indexed by shape.
func (b *Blend) Values() [shapes.NumShapes]float64 {
	var out [shapes.NumShapes]float64
	for i, w := range b.Weights {
		out[i] = w.Value
	}
	return out
}

// ShapeFactor is the largest current weight among non-random shapes.
func (b *Blend) ShapeFactor() float64 {
	v := b.Values()
	return floats.Max(v[shapes.Random+1:])
}

// Active returns the shape with the highest target; ties go to the earlier shape.
func (b *Blend) Active() shapes.Shape {
	best := shapes.Random
	for i, w := range b.Weights {
		if w.Target > b.Weights[best].Target {
			best = shapes.Shape(i)
		}
	}
	return best
}

// Dominant returns the shape with the highest current value.
func (b *Blend) Dominant() shapes.Shape {
	v := b.Values()
	return shapes.Shape(floats.MaxIdx(v[:]))
}
