package shapes

import (
	"fmt"
	"math/rand"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/morph/config"
)

// streamStride separates the RNG seeds of the per-shape streams.
const streamStride = 7919

// stream indices after the shape streams
const (
	streamAppearance = int64(NumShapes) + iota
	streamVelocity
)

// Set holds every per-particle attribute. Immutable after Generate returns.
type Set struct {
	N          int
	Targets    [NumShapes][]r3.Vec // Targets[Random] is the base cloud
	Colors     []colorful.Color
	Sizes      []float64
	Velocities []r3.Vec
	Mask       Mask // Collected logo points
}

// Base returns the random cloud positions.
func (s *Set) Base() []r3.Vec {
	return s.Targets[Random]
}

// LogoAssigned is the number of particles placed exactly on a mask point.
func (s *Set) LogoAssigned() int {
	return min(s.N, len(s.Mask.Points))
}

// Generator builds particle sets from configuration.
type Generator struct {
	cfg     *config.Config
	palette Palette
	mask    Mask
}

// NewGenerator rasterizes the logo mask and prepares the palette.
func NewGenerator(cfg *config.Config) (*Generator, error) {
	palette, err := NewPalette(cfg.Palette)
	if err != nil {
		return nil, err
	}
	mask, err := BuildMask(cfg.Logo)
	if err != nil {
		return nil, fmt.Errorf("building logo mask: %w", err)
	}
	return &Generator{cfg: cfg, palette: palette, mask: mask}, nil
}

// Mask returns the collected logo mask.
func (g *Generator) Mask() Mask {
	return g.mask
}

// streamRNG returns the deterministic stream for index k under seed.
func streamRNG(seed, k int64) *rand.Rand {
	return rand.New(rand.NewSource(seed + k*streamStride))
}

// fill evaluates fn for every particle using its own stream.
func fill(dst []r3.Vec, fn PointFunc, rng *rand.Rand) {
	n := len(dst)
	for i := range dst {
		dst[i] = fn(i, n, rng)
	}
}

// Generate computes all shapes for n particles. Each shape fills its own slice on
// its own goroutine with its own RNG stream, so the result depends only on seed.
func (g *Generator) Generate(n int, seed int64) (*Set, error) {
	if n > 0 && len(g.mask.Points) == 0 {
		return nil, ErrEmptyMask
	}

	set := &Set{
		N:          n,
		Colors:     make([]colorful.Color, n),
		Sizes:      make([]float64, n),
		Velocities: make([]r3.Vec, n),
		Mask:       g.mask,
	}

	funcs := Funcs(g.cfg.Shapes)
	funcs[Random] = CloudFunc(g.cfg.Cloud)
	if n > 0 {
		funcs[Logo] = LogoFunc(g.mask, g.cfg.Logo)
	}

	var wg sync.WaitGroup
	for _, s := range All() {
		set.Targets[s] = make([]r3.Vec, n)
		fn, ok := funcs[s]
		if !ok {
			continue
		}
		wg.Add(1)
		go func(s Shape, fn PointFunc) {
			defer wg.Done()
			fill(set.Targets[s], fn, streamRNG(seed, int64(s)))
		}(s, fn)
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		rng := streamRNG(seed, streamAppearance)
		cloud := g.cfg.Cloud
		for i := 0; i < n; i++ {
			set.Colors[i] = g.palette.Sample(rng)
			set.Sizes[i] = rng.Float64()*cloud.SizeRange + cloud.SizeMin
		}
	}()
	go func() {
		defer wg.Done()
		rng := streamRNG(seed, streamVelocity)
		v := g.cfg.Cloud.Velocity
		for i := 0; i < n; i++ {
			set.Velocities[i] = r3.Vec{X: centered(rng, v), Y: centered(rng, v), Z: centered(rng, v)}
		}
	}()

	wg.Wait()
	return set, nil
}
