package shapes

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/morph/config"
)

// PointFunc computes the target of particle i out of n.
// rng is the shape's own stream; implementations that need no randomness ignore it.
type PointFunc func(i, n int, rng *rand.Rand) r3.Vec

// centered returns a uniform sample in [-extent/2, extent/2).
func centered(rng *rand.Rand, extent float64) float64 {
	return (rng.Float64() - 0.5) * extent
}

// fraction returns i/n, or 0 for an empty set.
func fraction(i, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(i) / float64(n)
}

// CloudFunc samples the initial random cloud inside a box.
func CloudFunc(cfg config.CloudConfig) PointFunc {
	return func(_, _ int, rng *rand.Rand) r3.Vec {
		return r3.Vec{
			X: centered(rng, cfg.SpreadX),
			Y: centered(rng, cfg.SpreadY),
			Z: centered(rng, cfg.SpreadZ),
		}
	}
}

// SphereFunc samples uniformly on a sphere shell of radius [Radius, Radius+Jitter).
// phi = acos(2u-1) keeps the density uniform over the surface.
func SphereFunc(cfg config.SphereConfig) PointFunc {
	return func(_, _ int, rng *rand.Rand) r3.Vec {
		phi := math.Acos(2*rng.Float64() - 1)
		theta := rng.Float64() * 2 * math.Pi
		r := cfg.Radius + rng.Float64()*cfg.Jitter
		return r3.Vec{
			X: r * math.Sin(phi) * math.Cos(theta),
			Y: r * math.Sin(phi) * math.Sin(theta),
			Z: r * math.Cos(phi),
		}
	}
}

// HelixFunc lays particles on two interleaved strands; odd indices take the
// strand offset by pi.
func HelixFunc(cfg config.HelixConfig) PointFunc {
	return func(i, n int, _ *rand.Rand) r3.Vec {
		f := fraction(i, n)
		t := f * cfg.Turns * 2 * math.Pi
		strand := 0.0
		if i%2 != 0 {
			strand = math.Pi
		}
		return r3.Vec{
			X: cfg.Radius * math.Cos(t+strand),
			Y: (f - 0.5) * cfg.Height,
			Z: cfg.Radius * math.Sin(t+strand),
		}
	}
}

// GridFunc lays particles on a flat XZ lattice. The wave is applied at render time.
func GridFunc(cfg config.GridConfig) PointFunc {
	half := float64(cfg.Width) / 2
	return func(i, _ int, _ *rand.Rand) r3.Vec {
		gx := float64(i%cfg.Width) - half
		gz := float64(i/cfg.Width) - half
		return r3.Vec{X: gx * cfg.Spacing, Y: 0, Z: gz * cfg.Spacing}
	}
}

// DataGridFunc lays particles on an XY lattice with a fixed sinusoidal depth profile.
func DataGridFunc(cfg config.DataGridConfig) PointFunc {
	half := float64(cfg.Width) / 2
	return func(i, _ int, _ *rand.Rand) r3.Vec {
		col := float64(i % cfg.Width)
		row := float64(i / cfg.Width)
		return r3.Vec{
			X: (col - half) * cfg.Spacing,
			Y: (row - half) * cfg.Spacing,
			Z: math.Sin(col*cfg.Frequency)*cfg.Amplitude + math.Cos(row*cfg.Frequency)*cfg.Amplitude,
		}
	}
}

// TorusFunc sweeps the major angle by index and samples the minor angle and radius.
func TorusFunc(cfg config.TorusConfig) PointFunc {
	return func(i, n int, rng *rand.Rand) r3.Vec {
		major := fraction(i, n) * 2 * math.Pi
		minorR := cfg.MinorRadius + rng.Float64()*cfg.MinorJitter
		minor := rng.Float64() * 2 * math.Pi
		ring := cfg.MajorRadius + minorR*math.Cos(minor)
		return r3.Vec{
			X: ring * math.Cos(major),
			Y: minorR * math.Sin(minor),
			Z: ring * math.Sin(major),
		}
	}
}

// GalaxyFunc places particles on spiral arms in the XZ plane.
// radius = u^Exponent * Radius; with the default 0.5 the distribution leans outward.
func GalaxyFunc(cfg config.GalaxyConfig) PointFunc {
	armStep := 2 * math.Pi / float64(cfg.Arms)
	return func(i, n int, rng *rand.Rand) r3.Vec {
		arm := i % cfg.Arms
		radius := math.Pow(rng.Float64(), cfg.Exponent) * cfg.Radius
		angle := fraction(i, n)*cfg.SweepTurns*2*math.Pi + float64(arm)*armStep
		twist := radius * cfg.Twist
		decay := 1.0
		if cfg.Falloff > 0 {
			decay = math.Exp(-radius / cfg.Falloff)
		}
		return r3.Vec{
			X: radius * math.Cos(angle+twist),
			Y: centered(rng, cfg.Thickness) * decay,
			Z: radius * math.Sin(angle+twist),
		}
	}
}

// CubeFunc samples a uniformly chosen face of a cube shell.
func CubeFunc(cfg config.CubeConfig) PointFunc {
	half := cfg.Size / 2
	return func(_, _ int, rng *rand.Rand) r3.Vec {
		face := rng.Intn(6)
		u := centered(rng, cfg.Size)
		v := centered(rng, cfg.Size)
		switch face {
		case 0:
			return r3.Vec{X: u, Y: v, Z: half}
		case 1:
			return r3.Vec{X: u, Y: v, Z: -half}
		case 2:
			return r3.Vec{X: u, Y: half, Z: v}
		case 3:
			return r3.Vec{X: u, Y: -half, Z: v}
		case 4:
			return r3.Vec{X: half, Y: u, Z: v}
		default:
			return r3.Vec{X: -half, Y: u, Z: v}
		}
	}
}

// Funcs returns the analytic generators keyed by shape. Random and Logo are
// built separately: Random from the cloud config, Logo from the rasterized mask.
func Funcs(cfg config.ShapesConfig) map[Shape]PointFunc {
	return map[Shape]PointFunc{
		Sphere:   SphereFunc(cfg.Sphere),
		DNA:      HelixFunc(cfg.DNA),
		Grid:     GridFunc(cfg.Grid),
		DataGrid: DataGridFunc(cfg.DataGrid),
		Torus:    TorusFunc(cfg.Torus),
		Galaxy:   GalaxyFunc(cfg.Galaxy),
		Cube:     CubeFunc(cfg.Cube),
	}
}
