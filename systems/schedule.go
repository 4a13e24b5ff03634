package systems

import (
	"fmt"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/shapes"
)

// Policy names which input owns the blend targets.
type Policy uint8

const (
	PolicyManual Policy = iota // Targets change only on explicit selection
	PolicyCycle                // Targets follow the auto-cycle
	PolicyScroll               // Targets follow the scroll fraction
)

func (p Policy) String() string {
	switch p {
	case PolicyCycle:
		return "cycle"
	case PolicyScroll:
		return "scroll"
	default:
		return "manual"
	}
}

// Cycle steps through an ordered list of shapes on a fixed interval of frame time.
type Cycle struct {
	Order    []shapes.Shape
	Interval float64
	Index    int     // Position of the currently targeted shape in Order
	Elapsed  float64 // Time since the last switch
}

// NewCycle parses the configured order. The first entry is assumed to be
// targeted already when the cycle starts.
func NewCycle(cfg config.CycleConfig) (Cycle, error) {
	order, err := shapes.ParseList(cfg.Order)
	if err != nil {
		return Cycle{}, fmt.Errorf("cycle.order: %w", err)
	}
	if len(order) == 0 {
		return Cycle{}, fmt.Errorf("cycle.order must not be empty")
	}
	return Cycle{Order: order, Interval: cfg.Interval}, nil
}

// Current returns the shape the cycle is on.
func (c *Cycle) Current() shapes.Shape {
	return c.Order[c.Index]
}

// Advance accumulates dt and reports the new shape if one or more intervals elapsed.
// A non-positive interval never switches.
func (c *Cycle) Advance(dt float64) (shapes.Shape, bool) {
	if len(c.Order) == 0 || c.Interval <= 0 {
		return 0, false
	}
	c.Elapsed += dt
	switched := false
	for c.Elapsed >= c.Interval {
		c.Elapsed -= c.Interval
		c.Index = (c.Index + 1) % len(c.Order)
		switched = true
	}
	return c.Order[c.Index], switched
}

// Reset restarts the interval and continues from s, or from the head of the
// order when s is not part of it.
func (c *Cycle) Reset(s shapes.Shape) {
	c.Elapsed = 0
	c.Index = 0
	for i, o := range c.Order {
		if o == s {
			c.Index = i
			return
		}
	}
}

// ScrollMap maps a scroll fraction in [0, 1] to a target shape and target weight.
// Below RandomBelow the cloud is released, below ShapeBelow the configured shape
// is fully targeted, and past that it is held at the intermediate weight.
func ScrollMap(fraction float64, cfg config.ScrollConfig, shape shapes.Shape) (shapes.Shape, float64) {
	switch {
	case fraction < cfg.RandomBelow:
		return shapes.Random, 1
	case fraction < cfg.ShapeBelow:
		return shape, 1
	default:
		return shape, cfg.Intermediate
	}
}
