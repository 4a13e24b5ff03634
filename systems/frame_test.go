package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/shapes"
)

const frameDT = 1.0 / 60

func newFrame(t *testing.T, mutate func(cfg *config.Config)) (FrameState, Params) {
	t.Helper()
	cfg := testConfig(t)
	if mutate != nil {
		mutate(cfg)
	}
	s, err := NewFrameState(cfg)
	if err != nil {
		t.Fatalf("NewFrameState: %v", err)
	}
	p, err := NewParams(cfg)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	return s, p
}

func targetsAtOne(b *Blend) (count int, others bool) {
	for _, w := range b.Weights {
		switch w.Target {
		case 1:
			count++
		case 0:
		default:
			others = true
		}
	}
	return count, others
}

func TestNewFrameState(t *testing.T) {
	s, _ := newFrame(t, nil)
	if s.Policy != PolicyCycle {
		t.Errorf("expected cycle policy by default, got %v", s.Policy)
	}
	if s.Blend.Active() != shapes.Logo {
		t.Errorf("expected logo targeted, got %v", s.Blend.Active())
	}
	if s.Time != 0 || s.Tick != 0 {
		t.Errorf("expected zero clock, got t=%f tick=%d", s.Time, s.Tick)
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	s, p := newFrame(t, nil)
	before := s.Blend.Weights
	next := Step(s, Input{DT: frameDT, Select: shapes.Cube, Selected: true}, p)

	if s.Blend.Weights != before || s.Time != 0 {
		t.Error("Step mutated its input state")
	}
	if next.Blend.Target(shapes.Cube) != 1 {
		t.Error("expected cube targeted in the next state")
	}
}

func TestStepClampsDT(t *testing.T) {
	s, p := newFrame(t, nil)
	next := Step(s, Input{DT: 5}, p)
	if next.DT != p.MaxDT {
		t.Errorf("expected dt clamped to %f, got %f", p.MaxDT, next.DT)
	}
	next = Step(next, Input{DT: -1}, p)
	if next.DT != 0 {
		t.Errorf("expected negative dt clamped to 0, got %f", next.DT)
	}
}

func TestAutoCycleExactlyOneTarget(t *testing.T) {
	s, p := newFrame(t, nil)

	seen := make(map[shapes.Shape]bool)
	for i := 0; i < 60*30; i++ {
		s = Step(s, Input{DT: frameDT}, p)
		count, others := targetsAtOne(&s.Blend)
		if count != 1 || others {
			t.Fatalf("tick %d: expected exactly one target at 1, got %d (others=%v)", i, count, others)
		}
		seen[s.Blend.Active()] = true
	}

	for _, want := range []shapes.Shape{shapes.Logo, shapes.DNA, shapes.Sphere, shapes.Galaxy} {
		if !seen[want] {
			t.Errorf("expected cycle to visit %v", want)
		}
	}
}

func TestAutoCycleTiming(t *testing.T) {
	s, p := newFrame(t, nil)
	for s.Time < 4.9 {
		s = Step(s, Input{DT: frameDT}, p)
	}
	if s.Blend.Active() != shapes.Logo {
		t.Fatalf("expected logo before 5s, got %v", s.Blend.Active())
	}
	for s.Time < 5.1 {
		s = Step(s, Input{DT: frameDT}, p)
	}
	if s.Blend.Active() != shapes.DNA {
		t.Errorf("expected dna after 5s, got %v", s.Blend.Active())
	}
}

func TestSelectResetsCycle(t *testing.T) {
	s, p := newFrame(t, nil)
	for s.Time < 4 {
		s = Step(s, Input{DT: frameDT}, p)
	}
	s = Step(s, Input{DT: frameDT, Select: shapes.Sphere, Selected: true}, p)
	start := s.Time

	for s.Time-start < 4.9 {
		s = Step(s, Input{DT: frameDT}, p)
	}
	if s.Blend.Active() != shapes.Sphere {
		t.Fatalf("expected sphere held for a full interval, got %v", s.Blend.Active())
	}
	for s.Time-start < 5.1 {
		s = Step(s, Input{DT: frameDT}, p)
	}
	if s.Blend.Active() != shapes.Galaxy {
		t.Errorf("expected cycle to continue after sphere to galaxy, got %v", s.Blend.Active())
	}
}

func TestSphereConvergesUnderManualPolicy(t *testing.T) {
	s, p := newFrame(t, func(cfg *config.Config) { cfg.Cycle.Enabled = false })
	if s.Policy != PolicyManual {
		t.Fatalf("expected manual policy, got %v", s.Policy)
	}
	s = Step(s, Input{DT: frameDT, Select: shapes.Sphere, Selected: true}, p)
	for s.Time < 10 {
		s = Step(s, Input{DT: frameDT}, p)
	}
	if v := s.Blend.Value(shapes.Sphere); v < 0.999 {
		t.Errorf("expected sphere >= 0.999 after 10s, got %f", v)
	}
	if math.Abs(s.ShapeFactor-s.Blend.Value(shapes.Sphere)) > 1e-12 {
		t.Errorf("expected shape factor to track sphere, got %f", s.ShapeFactor)
	}
}

func TestToggleCycle(t *testing.T) {
	s, p := newFrame(t, nil)
	s = Step(s, Input{DT: frameDT, ToggleCycle: true}, p)
	if s.Policy != PolicyManual {
		t.Fatalf("expected manual after toggle, got %v", s.Policy)
	}
	for s.Time < 12 {
		s = Step(s, Input{DT: frameDT}, p)
	}
	if s.Blend.Active() != shapes.Logo {
		t.Errorf("expected logo held with cycle off, got %v", s.Blend.Active())
	}

	s = Step(s, Input{DT: frameDT, ToggleCycle: true}, p)
	if s.Policy != PolicyCycle {
		t.Fatalf("expected cycle after second toggle, got %v", s.Policy)
	}
	if s.Cycle.Elapsed > frameDT+1e-9 {
		t.Errorf("expected cycle interval restarted, got %f", s.Cycle.Elapsed)
	}
}

func TestResumeCycleAfterScroll(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		next     shapes.Shape
	}{
		{"past intermediate", 0.9, shapes.DNA},
		{"cloud released", 0.1, shapes.DNA},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, p := newFrame(t, func(cfg *config.Config) { cfg.Scroll.Enabled = true })
			s = Step(s, Input{DT: frameDT, ScrollDelta: tc.fraction}, p)
			if s.Policy != PolicyScroll {
				t.Fatalf("expected scroll policy, got %v", s.Policy)
			}

			s = Step(s, Input{DT: frameDT, ToggleCycle: true}, p)
			if s.Policy != PolicyCycle {
				t.Fatalf("expected cycle policy, got %v", s.Policy)
			}
			if s.Blend.Active() != shapes.Logo || s.Cycle.Index != 0 {
				t.Errorf("expected cycle to resume at logo, got %v (index %d)", s.Blend.Active(), s.Cycle.Index)
			}

			start := s.Time
			for s.Time-start < 5.1 {
				s = Step(s, Input{DT: frameDT}, p)
				count, others := targetsAtOne(&s.Blend)
				if count != 1 || others {
					t.Fatalf("t=%.3f: expected exactly one target at 1, got %d (others=%v)", s.Time, count, others)
				}
			}
			if s.Blend.Active() != tc.next {
				t.Errorf("expected %v after one interval, got %v", tc.next, s.Blend.Active())
			}
		})
	}
}

func TestInitialShapeOutsideCycleOrder(t *testing.T) {
	s, _ := newFrame(t, func(cfg *config.Config) { cfg.Blend.Initial = "torus" })
	if s.Blend.Active() != shapes.Logo || s.Cycle.Index != 0 {
		t.Errorf("expected cycle to start at the head of the order, got %v (index %d)", s.Blend.Active(), s.Cycle.Index)
	}
	if count, others := targetsAtOne(&s.Blend); count != 1 || others {
		t.Errorf("expected exactly one target at 1, got %d (others=%v)", count, others)
	}

	s, _ = newFrame(t, func(cfg *config.Config) {
		cfg.Blend.Initial = "torus"
		cfg.Cycle.Enabled = false
	})
	if s.Blend.Active() != shapes.Torus {
		t.Errorf("expected torus kept with the cycle off, got %v", s.Blend.Active())
	}
}

func TestScrollPausesCycle(t *testing.T) {
	s, p := newFrame(t, func(cfg *config.Config) { cfg.Scroll.Enabled = true })

	s = Step(s, Input{DT: frameDT, ScrollDelta: 0.5}, p)
	if s.Policy != PolicyScroll {
		t.Fatalf("expected scroll policy, got %v", s.Policy)
	}
	if s.Blend.Target(shapes.Logo) != 1 {
		t.Errorf("expected logo at 1 for fraction 0.5, got %f", s.Blend.Target(shapes.Logo))
	}

	for s.Time < 12 {
		s = Step(s, Input{DT: frameDT}, p)
	}
	if s.Blend.Active() != shapes.Logo {
		t.Errorf("expected cycle paused while scrolling, got %v", s.Blend.Active())
	}

	s = Step(s, Input{DT: frameDT, ScrollDelta: 0.4}, p)
	if s.Blend.Target(shapes.Logo) != 0.5 {
		t.Errorf("expected logo at 0.5 for fraction 0.9, got %f", s.Blend.Target(shapes.Logo))
	}

	s = Step(s, Input{DT: frameDT, ScrollDelta: -2}, p)
	if s.Scroll != 0 {
		t.Errorf("expected scroll clamped to 0, got %f", s.Scroll)
	}
	if s.Blend.Target(shapes.Random) != 1 || s.Blend.Target(shapes.Logo) != 0 {
		t.Error("expected the cloud released at the top of the scroll range")
	}
}

func TestScrollIgnoredWhenDisabled(t *testing.T) {
	s, p := newFrame(t, nil)
	s = Step(s, Input{DT: frameDT, ScrollDelta: 0.5}, p)
	if s.Policy != PolicyCycle || s.Scroll != 0 {
		t.Errorf("expected scroll ignored, got policy %v scroll %f", s.Policy, s.Scroll)
	}
}

func TestPointerSmoothing(t *testing.T) {
	s, p := newFrame(t, nil)
	s = Step(s, Input{DT: frameDT, Pointer: r2.Vec{X: 1, Y: -1}, PointerMoved: true}, p)

	if math.Abs(s.Pointer.Offset.X-0.1) > 1e-12 || math.Abs(s.Pointer.Offset.Y+0.1) > 1e-12 {
		t.Errorf("expected offset (0.1, -0.1) after one tick, got %v", s.Pointer.Offset)
	}

	// Raw persists between reports.
	for i := 0; i < 200; i++ {
		s = Step(s, Input{DT: frameDT}, p)
	}
	if math.Abs(s.Pointer.Offset.X-1) > 1e-6 || math.Abs(s.Pointer.Offset.Y+1) > 1e-6 {
		t.Errorf("expected offset to converge to raw, got %v", s.Pointer.Offset)
	}
}

func TestNormalizePointer(t *testing.T) {
	tests := []struct {
		x, y, w, h float64
		want       r2.Vec
	}{
		{0, 0, 800, 600, r2.Vec{X: -1, Y: 1}},
		{400, 300, 800, 600, r2.Vec{X: 0, Y: 0}},
		{800, 600, 800, 600, r2.Vec{X: 1, Y: -1}},
		{10, 10, 0, 600, r2.Vec{}},
	}
	for _, tc := range tests {
		got := NormalizePointer(tc.x, tc.y, tc.w, tc.h)
		if got != tc.want {
			t.Errorf("NormalizePointer(%v, %v) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}
