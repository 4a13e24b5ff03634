package telemetry

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/morph/shapes"
	"github.com/pthm-cable/morph/systems"
)

// Collector accumulates per-frame observations within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec float64
	maxDT             float64

	// Current window tracking
	windowStartTick uint64
	windowStartTime float64

	// Per-frame series for the current window
	shapeFactors []float64
	dts          []float64
	sprites      []float64
	culled       []float64

	// Event counters for the current window
	switches      int
	clampedFrames int
	pointerTravel float64

	// Previous frame, for change detection
	observed    bool
	lastActive  shapes.Shape
	lastPointer r2.Vec
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in frame time
// maxDT: the frame delta clamp, used to count clamped frames
func NewCollector(windowDurationSec, maxDT float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{
		windowDurationSec: windowDurationSec,
		maxDT:             maxDT,
	}
}

// Observe records the state after a step. rawDT is the delta before clamping.
// It returns a switch event when the active target changed since the previous
// observation.
func (c *Collector) Observe(s *systems.FrameState, rawDT float64) (SwitchEvent, bool) {
	c.shapeFactors = append(c.shapeFactors, s.ShapeFactor)
	c.dts = append(c.dts, s.DT)
	if c.maxDT > 0 && rawDT > c.maxDT {
		c.clampedFrames++
	}

	active := s.Blend.Active()
	var ev SwitchEvent
	switched := false
	if c.observed {
		c.pointerTravel += r2.Norm(r2.Sub(s.Pointer.Offset, c.lastPointer))
		if active != c.lastActive {
			c.switches++
			ev = SwitchEvent{
				Tick:   s.Tick,
				Time:   s.Time,
				From:   c.lastActive.String(),
				To:     active.String(),
				Policy: s.Policy.String(),
			}
			switched = true
		}
	}
	c.observed = true
	c.lastActive = active
	c.lastPointer = s.Pointer.Offset
	return ev, switched
}

// RecordDraw records how many sprites were drawn and culled in the frame last
// observed. Flush after RecordDraw so both series cover the same frames.
func (c *Collector) RecordDraw(drawn, culled int) {
	c.sprites = append(c.sprites, float64(drawn))
	c.culled = append(c.culled, float64(culled))
}

// ShouldFlush returns true once the window has covered its duration.
func (c *Collector) ShouldFlush(now float64) bool {
	return now-c.windowStartTime >= c.windowDurationSec
}

// Flush produces a WindowStats ending at s and resets for the next window.
func (c *Collector) Flush(s *systems.FrameState) WindowStats {
	sfMean, sfStd, sfP10, sfP50, sfP90 := ComputeDistribution(c.shapeFactors)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   s.Tick,
		TimeSec:         s.Time,
		Frames:          len(c.shapeFactors),
		DrawnFrames:     len(c.sprites),

		Policy:   s.Policy.String(),
		Active:   s.Blend.Active().String(),
		Dominant: s.Blend.Dominant().String(),

		Switches:      c.switches,
		ClampedFrames: c.clampedFrames,

		ShapeFactorMean: sfMean,
		ShapeFactorStd:  sfStd,
		ShapeFactorP10:  sfP10,
		ShapeFactorP50:  sfP50,
		ShapeFactorP90:  sfP90,

		PointerTravel: c.pointerTravel,
	}
	if len(c.dts) > 0 {
		stats.DTMean = floats.Sum(c.dts) / float64(len(c.dts))
		stats.DTMax = floats.Max(c.dts)
	}
	if len(c.sprites) > 0 {
		stats.SpritesMean = floats.Sum(c.sprites) / float64(len(c.sprites))
		stats.CulledMean = floats.Sum(c.culled) / float64(len(c.culled))
	}

	// Reset for next window
	c.windowStartTick = s.Tick
	c.windowStartTime = s.Time
	c.shapeFactors = c.shapeFactors[:0]
	c.dts = c.dts[:0]
	c.sprites = c.sprites[:0]
	c.culled = c.culled[:0]
	c.switches = 0
	c.clampedFrames = 0
	c.pointerTravel = 0

	return stats
}
