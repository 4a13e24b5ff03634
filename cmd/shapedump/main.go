// Shape dump tool - generates every morph target and writes them to CSV with
// per-shape summary statistics.
//
// Usage: go run ./cmd/shapedump -out targets.csv -particles 2000 -mask logo.png
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/shapes"
)

// TargetRow is one particle position in one shape.
type TargetRow struct {
	Index int     `csv:"index"`
	Shape string  `csv:"shape"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	Z     float64 `csv:"z"`
	R     float64 `csv:"r"`
	G     float64 `csv:"g"`
	B     float64 `csv:"b"`
	Size  float64 `csv:"size"`
	VX    float64 `csv:"vx"`
	VY    float64 `csv:"vy"`
	VZ    float64 `csv:"vz"`
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "targets.csv", "Output CSV path")
	seed := flag.Int64("seed", 1, "RNG seed")
	particles := flag.Int("particles", 0, "Particle count (0 = particles.count)")
	only := flag.String("shapes", "", "Comma-separated shapes to dump (empty = all)")
	maskPath := flag.String("mask", "", "Also write the rasterized logo to this PNG")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(*configPath, *outPath, *seed, *particles, *only, *maskPath); err != nil {
		slog.Error("shapedump failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, outPath string, seed int64, particles int, only, maskPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	n := cfg.Particles.Count
	if particles > 0 {
		n = particles
	}

	selected := shapes.All()
	if only != "" {
		selected, err = shapes.ParseList(strings.Split(only, ","))
		if err != nil {
			return err
		}
	}

	gen, err := shapes.NewGenerator(cfg)
	if err != nil {
		return err
	}
	set, err := gen.Generate(n, seed)
	if err != nil {
		return err
	}

	var rows []TargetRow
	for _, s := range selected {
		for i, p := range set.Targets[s] {
			c := set.Colors[i]
			v := set.Velocities[i]
			rows = append(rows, TargetRow{
				Index: i,
				Shape: s.String(),
				X:     p.X,
				Y:     p.Y,
				Z:     p.Z,
				R:     c.R,
				G:     c.G,
				B:     c.B,
				Size:  set.Sizes[i],
				VX:    v.X,
				VY:    v.Y,
				VZ:    v.Z,
			})
		}
		logShapeStats(s, set.Targets[s])
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	slog.Info("targets written",
		"path", outPath,
		"rows", len(rows),
		"particles", n,
		"seed", seed,
		"logo_points", len(set.Mask.Points),
		"logo_assigned", set.LogoAssigned(),
	)

	if maskPath != "" {
		return writeMask(cfg.Logo, maskPath)
	}
	return nil
}

// logShapeStats logs the radius distribution and bounds of one shape.
func logShapeStats(s shapes.Shape, pts []r3.Vec) {
	if len(pts) == 0 {
		slog.Info("shape", "name", s.String(), "points", 0)
		return
	}

	radii := make([]float64, len(pts))
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	zs := make([]float64, len(pts))
	for i, p := range pts {
		radii[i] = r3.Norm(p)
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}
	mean, std := stat.MeanStdDev(radii, nil)

	slog.Info("shape",
		"name", s.String(),
		"points", len(pts),
		"radius_mean", mean,
		"radius_std", std,
		"radius_min", floats.Min(radii),
		"radius_max", floats.Max(radii),
		"x_range", []float64{floats.Min(xs), floats.Max(xs)},
		"y_range", []float64{floats.Min(ys), floats.Max(ys)},
		"z_range", []float64{floats.Min(zs), floats.Max(zs)},
	)
}

func writeMask(cfg config.LogoConfig, path string) error {
	img, err := shapes.RasterizeText(cfg)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	slog.Info("mask written", "path", path, "width", cfg.Width, "height", cfg.Height)
	return nil
}
