package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/shapes"
)

// Input is everything the host reports for one frame.
type Input struct {
	DT float64 // Seconds since the previous frame, unclamped

	Pointer      r2.Vec // Pointer position in NDC
	PointerMoved bool   // Pointer is only updated when set

	Select      shapes.Shape // Explicitly selected shape
	Selected    bool         // Select is only applied when set
	ToggleCycle bool
	ScrollDelta float64 // Change in scroll fraction, e.g. from the wheel
}

// Params are the immutable inputs of Step.
type Params struct {
	MaxDT            float64
	PointerSmoothing float64
	ScrollEnabled    bool
	Scroll           config.ScrollConfig
	ScrollShape      shapes.Shape
}

// NewParams extracts the step parameters from cfg.
func NewParams(cfg *config.Config) (Params, error) {
	p := Params{
		MaxDT:            cfg.Physics.MaxDT,
		PointerSmoothing: cfg.Pointer.Smoothing,
		ScrollEnabled:    cfg.Scroll.Enabled,
		Scroll:           cfg.Scroll,
		ScrollShape:      shapes.Logo,
	}
	if cfg.Scroll.Shape != "" {
		s, err := shapes.Parse(cfg.Scroll.Shape)
		if err != nil {
			return Params{}, err
		}
		p.ScrollShape = s
	}
	return p, nil
}

// FrameState is the complete animation state between frames.
type FrameState struct {
	Tick        uint64
	Time        float64 // Elapsed frame time in seconds
	DT          float64 // Clamped delta of the last step
	Blend       Blend
	Cycle       Cycle
	Policy      Policy
	Scroll      float64 // Scroll fraction in [0, 1]
	Pointer     Pointer
	ShapeFactor float64
}

// NewFrameState returns the state before the first frame.
func NewFrameState(cfg *config.Config) (FrameState, error) {
	blend, err := NewBlend(cfg.Blend)
	if err != nil {
		return FrameState{}, err
	}
	cycle, err := NewCycle(cfg.Cycle)
	if err != nil {
		return FrameState{}, err
	}
	s := FrameState{
		Blend:  blend,
		Cycle:  cycle,
		Policy: PolicyManual,
	}
	if cfg.Cycle.Enabled {
		s.ResumeCycle()
	}
	s.ShapeFactor = s.Blend.ShapeFactor()
	return s, nil
}

// ResumeCycle switches to the cycle policy. The cycle continues from the
// active shape when it is in the order, otherwise from the head of the order,
// and that shape becomes the only full target.
func (s *FrameState) ResumeCycle() {
	s.Policy = PolicyCycle
	s.Cycle.Reset(s.Blend.Active())
	s.Blend.SetTarget(s.Cycle.Current())
}

// Step computes the next state from the current one. It does not mutate s.
//
// Order: advance time, apply selection and the active policy, advance blend
// weights, smooth the pointer, recompute the shape factor.
func Step(s FrameState, in Input, p Params) FrameState {
	// Cycle.Order is shared with s; it is never written after construction.
	next := s

	dt := in.DT
	if dt < 0 {
		dt = 0
	}
	if p.MaxDT > 0 && dt > p.MaxDT {
		dt = p.MaxDT
	}
	next.Tick++
	next.DT = dt
	next.Time += dt

	if in.ToggleCycle {
		if next.Policy == PolicyCycle {
			next.Policy = PolicyManual
		} else {
			next.ResumeCycle()
		}
	}

	if in.Selected {
		next.Blend.SetTarget(in.Select)
		switch next.Policy {
		case PolicyCycle:
			next.Cycle.Reset(in.Select)
		case PolicyScroll:
			next.Policy = PolicyManual
		}
	}

	if p.ScrollEnabled && in.ScrollDelta != 0 {
		next.Scroll = clamp01(next.Scroll + in.ScrollDelta)
		next.Policy = PolicyScroll
	}

	switch next.Policy {
	case PolicyCycle:
		if shape, switched := next.Cycle.Advance(dt); switched {
			next.Blend.SetTarget(shape)
		}
	case PolicyScroll:
		shape, v := ScrollMap(next.Scroll, p.Scroll, p.ScrollShape)
		next.Blend.SetTargetValue(shape, v)
	}

	next.Blend.Advance(dt)

	if in.PointerMoved {
		next.Pointer.Raw = in.Pointer
	}
	next.Pointer.Smooth(p.PointerSmoothing)

	next.ShapeFactor = next.Blend.ShapeFactor()
	return next
}
