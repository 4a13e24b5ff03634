package shapes

import (
	"errors"
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/morph/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func finite(v r3.Vec) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func TestParse(t *testing.T) {
	for _, s := range All() {
		got, err := Parse(s.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", s.String(), err)
		}
		if got != s {
			t.Errorf("Parse(%q) = %v, want %v", s.String(), got, s)
		}
	}

	if got, err := Parse("  Galaxy "); err != nil || got != Galaxy {
		t.Errorf("expected case-insensitive match, got %v, %v", got, err)
	}

	_, err := Parse("pyramid")
	if !errors.Is(err, ErrUnknownShape) {
		t.Errorf("expected ErrUnknownShape, got %v", err)
	}
}

func TestParseList(t *testing.T) {
	got, err := ParseList([]string{"logo", "dna", "sphere", "galaxy"})
	if err != nil {
		t.Fatalf("ParseList: %v", err)
	}
	want := []Shape{Logo, DNA, Sphere, Galaxy}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := ParseList([]string{"logo", "nope"}); err == nil {
		t.Error("expected error for unknown name in list")
	}
}

func TestTargetsExcludesRandom(t *testing.T) {
	targets := Targets()
	if len(targets) != int(NumShapes)-1 {
		t.Fatalf("expected %d targets, got %d", NumShapes-1, len(targets))
	}
	for _, s := range targets {
		if s == Random {
			t.Error("Targets() must not include Random")
		}
	}
}

func TestSphereRadiusRange(t *testing.T) {
	cfg := testConfig(t)
	fn := SphereFunc(cfg.Shapes.Sphere)
	rng := rand.New(rand.NewSource(1))

	lo := cfg.Shapes.Sphere.Radius
	hi := lo + cfg.Shapes.Sphere.Jitter
	for i := 0; i < 5000; i++ {
		r := r3.Norm(fn(i, 5000, rng))
		if r < lo-1e-9 || r > hi+1e-9 {
			t.Fatalf("point %d radius %f outside [%f, %f]", i, r, lo, hi)
		}
	}
}

func TestSphereIsUniform(t *testing.T) {
	cfg := testConfig(t)
	fn := SphereFunc(cfg.Shapes.Sphere)
	rng := rand.New(rand.NewSource(2))

	// cos(phi) should be uniform on [-1, 1]: mean 0, std 1/sqrt(3)
	n := 20000
	cosPhi := make([]float64, n)
	for i := range cosPhi {
		p := fn(i, n, rng)
		cosPhi[i] = p.Z / r3.Norm(p)
	}
	mean, std := stat.MeanStdDev(cosPhi, nil)
	if math.Abs(mean) > 0.02 {
		t.Errorf("expected mean cos(phi) near 0, got %f", mean)
	}
	if math.Abs(std-1/math.Sqrt(3)) > 0.02 {
		t.Errorf("expected std near %f, got %f", 1/math.Sqrt(3), std)
	}
}

func TestHelixStrands(t *testing.T) {
	cfg := testConfig(t)
	fn := HelixFunc(cfg.Shapes.DNA)

	n := 1000
	for i := 0; i < n; i += 2 {
		even := fn(i, n, nil)
		if math.Abs(math.Hypot(even.X, even.Z)-cfg.Shapes.DNA.Radius) > 1e-9 {
			t.Fatalf("point %d off helix radius", i)
		}
		// Same parameter on the opposite strand points the other way.
		f := float64(i) / float64(n)
		angle := f * cfg.Shapes.DNA.Turns * 2 * math.Pi
		opposite := r3.Vec{
			X: cfg.Shapes.DNA.Radius * math.Cos(angle+math.Pi),
			Z: cfg.Shapes.DNA.Radius * math.Sin(angle+math.Pi),
		}
		if math.Abs(even.X+opposite.X) > 1e-9 || math.Abs(even.Z+opposite.Z) > 1e-9 {
			t.Fatalf("point %d: strands not opposite", i)
		}
	}

	first := fn(0, n, nil)
	last := fn(n-1, n, nil)
	if first.Y != -cfg.Shapes.DNA.Height/2 {
		t.Errorf("expected first y = %f, got %f", -cfg.Shapes.DNA.Height/2, first.Y)
	}
	if last.Y >= cfg.Shapes.DNA.Height/2 {
		t.Errorf("expected last y below %f, got %f", cfg.Shapes.DNA.Height/2, last.Y)
	}
}

func TestGridLattice(t *testing.T) {
	cfg := testConfig(t)
	fn := GridFunc(cfg.Shapes.Grid)
	w := cfg.Shapes.Grid.Width
	s := cfg.Shapes.Grid.Spacing

	tests := []struct {
		i    int
		want r3.Vec
	}{
		{0, r3.Vec{X: -100 * s, Z: -100 * s}},
		{w - 1, r3.Vec{X: 99 * s, Z: -100 * s}},
		{w, r3.Vec{X: -100 * s, Z: -99 * s}},
		{w*100 + 100, r3.Vec{}},
	}
	for _, tc := range tests {
		got := fn(tc.i, 10000, nil)
		if got != tc.want {
			t.Errorf("grid(%d) = %v, want %v", tc.i, got, tc.want)
		}
	}
}

func TestDataGridProfile(t *testing.T) {
	cfg := testConfig(t)
	dg := cfg.Shapes.DataGrid
	fn := DataGridFunc(dg)

	p := fn(dg.Width*3+7, 10000, nil)
	wantZ := math.Sin(7*dg.Frequency)*dg.Amplitude + math.Cos(3*dg.Frequency)*dg.Amplitude
	if math.Abs(p.Z-wantZ) > 1e-9 {
		t.Errorf("expected z %f, got %f", wantZ, p.Z)
	}
	if math.Abs(p.X-(7-float64(dg.Width)/2)*dg.Spacing) > 1e-9 {
		t.Errorf("unexpected x %f", p.X)
	}
}

func TestTorusBounds(t *testing.T) {
	cfg := testConfig(t)
	tc := cfg.Shapes.Torus
	fn := TorusFunc(tc)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 2000; i++ {
		p := fn(i, 2000, rng)
		// Distance from the tube center circle must be within the minor radius range.
		ring := math.Hypot(p.X, p.Z) - tc.MajorRadius
		d := math.Hypot(ring, p.Y)
		if d < tc.MinorRadius-1e-9 || d > tc.MinorRadius+tc.MinorJitter+1e-9 {
			t.Fatalf("point %d tube distance %f out of range", i, d)
		}
	}
}

func TestGalaxyRadiusAndThickness(t *testing.T) {
	cfg := testConfig(t)
	gc := cfg.Shapes.Galaxy
	fn := GalaxyFunc(gc)
	rng := rand.New(rand.NewSource(4))

	n := 10000
	radii := make([]float64, n)
	for i := 0; i < n; i++ {
		p := fn(i, n, rng)
		radii[i] = math.Hypot(p.X, p.Z)
		if radii[i] > gc.Radius+1e-9 {
			t.Fatalf("point %d radius %f beyond %f", i, radii[i], gc.Radius)
		}
		if math.Abs(p.Y) > gc.Thickness/2+1e-9 {
			t.Fatalf("point %d thickness %f beyond %f", i, p.Y, gc.Thickness/2)
		}
	}

	// u^0.5 * R has mean 2R/3
	mean := stat.Mean(radii, nil)
	if math.Abs(mean-2*gc.Radius/3) > 3 {
		t.Errorf("expected mean radius near %f, got %f", 2*gc.Radius/3, mean)
	}
}

func TestGalaxyZeroFalloff(t *testing.T) {
	cfg := testConfig(t)
	gc := cfg.Shapes.Galaxy
	gc.Falloff = 0
	fn := GalaxyFunc(gc)
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		if p := fn(i, 100, rng); !finite(p) {
			t.Fatalf("point %d not finite: %v", i, p)
		}
	}
}

func TestCubeOnFaces(t *testing.T) {
	cfg := testConfig(t)
	half := cfg.Shapes.Cube.Size / 2
	fn := CubeFunc(cfg.Shapes.Cube)
	rng := rand.New(rand.NewSource(6))

	faces := make(map[string]int)
	for i := 0; i < 6000; i++ {
		p := fn(i, 6000, rng)
		onFace := ""
		switch {
		case p.X == half:
			onFace = "+x"
		case p.X == -half:
			onFace = "-x"
		case p.Y == half:
			onFace = "+y"
		case p.Y == -half:
			onFace = "-y"
		case p.Z == half:
			onFace = "+z"
		case p.Z == -half:
			onFace = "-z"
		}
		if onFace == "" {
			t.Fatalf("point %d not on any face: %v", i, p)
		}
		if math.Abs(p.X) > half || math.Abs(p.Y) > half || math.Abs(p.Z) > half {
			t.Fatalf("point %d outside cube: %v", i, p)
		}
		faces[onFace]++
	}
	if len(faces) != 6 {
		t.Errorf("expected all 6 faces used, got %v", faces)
	}
}

func TestRasterizeDefaultLogo(t *testing.T) {
	cfg := testConfig(t)

	a, err := BuildMask(cfg.Logo)
	if err != nil {
		t.Fatalf("BuildMask: %v", err)
	}
	b, err := BuildMask(cfg.Logo)
	if err != nil {
		t.Fatalf("BuildMask: %v", err)
	}

	if len(a.Points) == 0 {
		t.Fatal("expected non-empty logo mask")
	}
	if len(a.Points) != len(b.Points) {
		t.Fatalf("mask not deterministic: %d vs %d points", len(a.Points), len(b.Points))
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a.Points[i], b.Points[i])
		}
	}

	maxX := float64(cfg.Logo.Width) / 2 * cfg.Logo.Scale
	maxY := float64(cfg.Logo.Height) / 2 * cfg.Logo.Scale
	for i, p := range a.Points {
		if math.Abs(p.X) > maxX || math.Abs(p.Y) > maxY || p.Z != 0 {
			t.Fatalf("point %d outside logo plane: %v", i, p)
		}
	}
}

func TestSampleMaskThreshold(t *testing.T) {
	img := image.NewAlpha(image.Rect(0, 0, 8, 8))
	img.Pix[0] = 128 // equal to threshold: not collected
	img.SetAlpha(4, 0, color.Alpha{A: 129})
	img.SetAlpha(4, 4, color.Alpha{A: 255})
	img.SetAlpha(5, 5, color.Alpha{A: 255}) // off the sampling stride

	m := SampleMask(img, 4, 128, 0.5)
	if len(m.Points) != 2 {
		t.Fatalf("expected 2 points, got %d: %v", len(m.Points), m.Points)
	}
	// Row-major order: (4,0) then (4,4)
	want := []r3.Vec{{X: 0, Y: 2}, {X: 0, Y: 0}}
	for i := range want {
		if m.Points[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, m.Points[i], want[i])
		}
	}
}

func TestEmptyMask(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logo.Text = ""

	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	if _, err := g.Generate(10, 1); !errors.Is(err, ErrEmptyMask) {
		t.Errorf("expected ErrEmptyMask, got %v", err)
	}
	// Nothing to place, nothing to fail.
	set, err := g.Generate(0, 1)
	if err != nil {
		t.Fatalf("Generate(0): %v", err)
	}
	if set.N != 0 {
		t.Errorf("expected empty set, got N=%d", set.N)
	}
}

func TestGenerateEmpty(t *testing.T) {
	cfg := testConfig(t)
	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	set, err := g.Generate(0, 42)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, s := range All() {
		if len(set.Targets[s]) != 0 {
			t.Errorf("%v: expected no points, got %d", s, len(set.Targets[s]))
		}
	}
	if len(set.Colors) != 0 || len(set.Sizes) != 0 || len(set.Velocities) != 0 {
		t.Error("expected empty attributes")
	}
}

func TestGenerateAllFinite(t *testing.T) {
	cfg := testConfig(t)
	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	n := 10000
	set, err := g.Generate(n, 7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, s := range All() {
		if len(set.Targets[s]) != n {
			t.Fatalf("%v: expected %d points, got %d", s, n, len(set.Targets[s]))
		}
		for i, p := range set.Targets[s] {
			if !finite(p) {
				t.Fatalf("%v point %d not finite: %v", s, i, p)
			}
		}
	}
	for i, size := range set.Sizes {
		if size < cfg.Cloud.SizeMin || size >= cfg.Cloud.SizeMin+cfg.Cloud.SizeRange {
			t.Fatalf("size %d = %f out of range", i, size)
		}
	}
	for i, v := range set.Velocities {
		half := cfg.Cloud.Velocity / 2
		if math.Abs(v.X) > half || math.Abs(v.Y) > half || math.Abs(v.Z) > half {
			t.Fatalf("velocity %d = %v out of range", i, v)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := testConfig(t)
	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	a, err := g.Generate(2000, 99)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := g.Generate(2000, 99)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	c, err := g.Generate(2000, 100)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, s := range All() {
		for i := range a.Targets[s] {
			if a.Targets[s][i] != b.Targets[s][i] {
				t.Fatalf("%v point %d differs across runs with the same seed", s, i)
			}
		}
	}
	for i := range a.Colors {
		if a.Colors[i] != b.Colors[i] || a.Sizes[i] != b.Sizes[i] {
			t.Fatalf("appearance %d differs across runs with the same seed", i)
		}
	}

	same := 0
	for i := range a.Targets[Random] {
		if a.Targets[Random][i] == c.Targets[Random][i] {
			same++
		}
	}
	if same == len(a.Targets[Random]) {
		t.Error("expected a different seed to change the base cloud")
	}
}

func TestLogoAssignment(t *testing.T) {
	cfg := testConfig(t)
	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	pts := g.Mask().Points
	extra := 300
	n := len(pts) + extra

	set, err := g.Generate(n, 11)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if set.LogoAssigned() != len(pts) {
		t.Fatalf("expected %d assigned, got %d", len(pts), set.LogoAssigned())
	}

	logo := set.Targets[Logo]
	jitter := cfg.Logo.JitterZ / 2
	for i := range pts {
		p := logo[i]
		if p.X != pts[i].X || p.Y != pts[i].Y || math.Abs(p.Z) > jitter {
			t.Fatalf("particle %d not on mask point %v: %v", i, pts[i], p)
		}
	}

	scatter := cfg.Logo.Scatter / 2
	scatterZ := cfg.Logo.ScatterZ / 2
	for i := len(pts); i < n; i++ {
		p := logo[i]
		if math.Abs(p.Z) > scatterZ {
			t.Fatalf("overflow particle %d z %f beyond %f", i, p.Z, scatterZ)
		}
		near := false
		for _, q := range pts {
			if math.Abs(p.X-q.X) <= scatter && math.Abs(p.Y-q.Y) <= scatter {
				near = true
				break
			}
		}
		if !near {
			t.Fatalf("overflow particle %d not within scatter of any mask point: %v", i, p)
		}
	}
}

func TestLogoFewerParticlesThanPoints(t *testing.T) {
	cfg := testConfig(t)
	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	set, err := g.Generate(50, 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if set.LogoAssigned() != 50 {
		t.Errorf("expected 50 assigned, got %d", set.LogoAssigned())
	}
}

func TestWeightedPaletteFrequencies(t *testing.T) {
	cfg := testConfig(t)
	p, err := NewPalette(cfg.Palette)
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	rng := rand.New(rand.NewSource(8))

	counts := make(map[string]int)
	n := 40000
	for i := 0; i < n; i++ {
		counts[p.Sample(rng).Hex()]++
	}
	for _, wc := range cfg.Palette.Colors {
		got := float64(counts[wc.Hex]) / float64(n)
		if math.Abs(got-wc.Weight) > 0.015 {
			t.Errorf("color %s: expected frequency %f, got %f", wc.Hex, wc.Weight, got)
		}
	}
}

func TestHSLPalette(t *testing.T) {
	cfg := testConfig(t)
	cfg.Palette.Mode = "hsl"
	p, err := NewPalette(cfg.Palette)
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	rng := rand.New(rand.NewSource(9))

	lo := cfg.Palette.HueBase * 360
	hi := (cfg.Palette.HueBase + cfg.Palette.HueRange) * 360
	for i := 0; i < 1000; i++ {
		c := p.Sample(rng)
		if !c.IsValid() {
			t.Fatalf("sample %d invalid: %v", i, c)
		}
		h, _, _ := c.Hsl()
		if h < lo-0.5 || h > hi+0.5 {
			t.Fatalf("sample %d hue %f outside [%f, %f]", i, h, lo, hi)
		}
	}
}

func TestNewPaletteErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.PaletteConfig
	}{
		{"no colors", config.PaletteConfig{Mode: "weighted"}},
		{"bad hex", config.PaletteConfig{Colors: []config.WeightedColor{{Hex: "green", Weight: 1}}}},
		{"zero weight", config.PaletteConfig{Colors: []config.WeightedColor{{Hex: "#00ff00", Weight: 0}}}},
		{"unknown mode", config.PaletteConfig{Mode: "rainbow"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewPalette(tc.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}
