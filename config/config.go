// Package config provides configuration loading and access for the particle hero.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Particles ParticlesConfig `yaml:"particles"`
	Cloud     CloudConfig     `yaml:"cloud"`
	Logo      LogoConfig      `yaml:"logo"`
	Shapes    ShapesConfig    `yaml:"shapes"`
	Palette   PaletteConfig   `yaml:"palette"`
	Blend     BlendConfig     `yaml:"blend"`
	Cycle     CycleConfig     `yaml:"cycle"`
	Scroll    ScrollConfig    `yaml:"scroll"`
	Pointer   PointerConfig   `yaml:"pointer"`
	Render    RenderConfig    `yaml:"render"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width" env:"MORPH_SCREEN_WIDTH"`
	Height    int    `yaml:"height" env:"MORPH_SCREEN_HEIGHT"`
	TargetFPS int    `yaml:"target_fps" env:"MORPH_TARGET_FPS"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// PhysicsConfig holds clock parameters for the frame driver.
type PhysicsConfig struct {
	DT    float64 `yaml:"dt"`     // Fixed tick length used in headless mode
	MaxDT float64 `yaml:"max_dt"` // Upper bound on a single frame delta
}

// ParticlesConfig holds particle count and seeding.
type ParticlesConfig struct {
	Count int   `yaml:"count" env:"MORPH_PARTICLES"`
	Seed  int64 `yaml:"seed" env:"MORPH_SEED"` // 0 = time-based
}

// CloudConfig describes the initial random cloud and per-particle attributes.
type CloudConfig struct {
	SpreadX   float64 `yaml:"spread_x"`
	SpreadY   float64 `yaml:"spread_y"`
	SpreadZ   float64 `yaml:"spread_z"`
	SizeMin   float64 `yaml:"size_min"`
	SizeRange float64 `yaml:"size_range"`
	Velocity  float64 `yaml:"velocity"` // Per-axis velocity spread (stored, not integrated)
}

// LogoConfig describes the offscreen text raster used for the logo shape.
type LogoConfig struct {
	Text      string  `yaml:"text" env:"MORPH_LOGO_TEXT"`
	FontPath  string  `yaml:"font_path" env:"MORPH_LOGO_FONT"` // empty = embedded Go Bold
	FontSize  float64 `yaml:"font_size"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Step      int     `yaml:"step"`      // Sampling stride in pixels
	Threshold uint8   `yaml:"threshold"` // Alpha must exceed this to be collected
	Scale     float64 `yaml:"scale"`     // Image-space to world-space scale
	JitterZ   float64 `yaml:"jitter_z"`  // Depth jitter for particles on a mask point
	Scatter   float64 `yaml:"scatter"`   // XY scatter for overflow particles
	ScatterZ  float64 `yaml:"scatter_z"` // Depth scatter for overflow particles
}

// ShapesConfig holds the parameters of the analytic target shapes.
type ShapesConfig struct {
	Sphere   SphereConfig   `yaml:"sphere"`
	DNA      HelixConfig    `yaml:"dna"`
	Grid     GridConfig     `yaml:"grid"`
	DataGrid DataGridConfig `yaml:"datagrid"`
	Torus    TorusConfig    `yaml:"torus"`
	Galaxy   GalaxyConfig   `yaml:"galaxy"`
	Cube     CubeConfig     `yaml:"cube"`
}

// SphereConfig holds sphere shape parameters.
type SphereConfig struct {
	Radius float64 `yaml:"radius"`
	Jitter float64 `yaml:"jitter"` // Radius is sampled in [radius, radius+jitter)
}

// HelixConfig holds double helix parameters.
type HelixConfig struct {
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
	Turns  float64 `yaml:"turns"`
}

// GridConfig holds flat wave grid parameters.
type GridConfig struct {
	Width   int     `yaml:"width"`
	Spacing float64 `yaml:"spacing"`
}

// DataGridConfig holds data grid parameters.
type DataGridConfig struct {
	Width     int     `yaml:"width"`
	Spacing   float64 `yaml:"spacing"`
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`
}

// TorusConfig holds torus parameters.
type TorusConfig struct {
	MajorRadius float64 `yaml:"major_radius"`
	MinorRadius float64 `yaml:"minor_radius"`
	MinorJitter float64 `yaml:"minor_jitter"`
}

// GalaxyConfig holds spiral galaxy parameters.
type GalaxyConfig struct {
	Arms       int     `yaml:"arms"`
	Radius     float64 `yaml:"radius"`
	Exponent   float64 `yaml:"exponent"`    // radius = u^exponent * Radius
	SweepTurns float64 `yaml:"sweep_turns"` // Full turns swept by the particle index
	Twist      float64 `yaml:"twist"`       // Extra angle per unit radius
	Thickness  float64 `yaml:"thickness"`
	Falloff    float64 `yaml:"falloff"` // Thickness decays as exp(-r/falloff)
}

// CubeConfig holds cube shell parameters.
type CubeConfig struct {
	Size float64 `yaml:"size"`
}

// PaletteConfig selects how particle base colors are sampled.
type PaletteConfig struct {
	Mode       string          `yaml:"mode" env:"MORPH_PALETTE"` // "weighted" or "hsl"
	Colors     []WeightedColor `yaml:"colors"`
	HueBase    float64         `yaml:"hue_base"`
	HueRange   float64         `yaml:"hue_range"`
	Saturation float64         `yaml:"saturation"`
	Lightness  float64         `yaml:"lightness"`
}

// WeightedColor is one palette entry.
type WeightedColor struct {
	Hex    string  `yaml:"hex"`
	Weight float64 `yaml:"weight"`
}

// BlendConfig holds the smoothing law for shape weights.
type BlendConfig struct {
	Law     string  `yaml:"law" env:"MORPH_BLEND_LAW"` // "time" or "step"
	Rate    float64 `yaml:"rate"`                      // Per second, time law
	Step    float64 `yaml:"step"`                      // Per tick, step law
	Initial string  `yaml:"initial"`                   // Shape targeted at startup
}

// CycleConfig holds the automatic shape cycle.
type CycleConfig struct {
	Enabled  bool     `yaml:"enabled" env:"MORPH_AUTO_CYCLE"`
	Interval float64  `yaml:"interval"`
	Order    []string `yaml:"order" env:"MORPH_CYCLE_ORDER" envSeparator:","`
}

// ScrollConfig holds the scroll-fraction to target mapping.
type ScrollConfig struct {
	Enabled      bool    `yaml:"enabled" env:"MORPH_SCROLL"`
	RandomBelow  float64 `yaml:"random_below"`
	ShapeBelow   float64 `yaml:"shape_below"`
	Shape        string  `yaml:"shape"`
	Intermediate float64 `yaml:"intermediate"`
	WheelStep    float64 `yaml:"wheel_step"`
}

// PointerConfig holds pointer smoothing parameters.
type PointerConfig struct {
	Smoothing float64 `yaml:"smoothing"`
	Strength  float64 `yaml:"strength"` // World units per unit of NDC offset
	Damping   float64 `yaml:"damping"`  // Reactivity lost at full shape factor
}

// RenderConfig holds vertex and fragment stage parameters.
type RenderConfig struct {
	Background        string   `yaml:"background"`
	Additive          bool     `yaml:"additive"`
	Glow              float64  `yaml:"glow"`
	PixelRatioMax     float64  `yaml:"pixel_ratio_max"`
	SizeReference     float64  `yaml:"size_reference"`
	FadeNear          float64  `yaml:"fade_near"`
	FadeFar           float64  `yaml:"fade_far"`
	AlphaBase         float64  `yaml:"alpha_base"`
	AlphaShape        float64  `yaml:"alpha_shape"`
	SpinSpeed         float64  `yaml:"spin_speed"`
	SpinThreshold     float64  `yaml:"spin_threshold"`
	SpinShapes        []string `yaml:"spin_shapes"`
	GridWaveFrequency float64  `yaml:"grid_wave_frequency"`
	GridWaveSpeed     float64  `yaml:"grid_wave_speed"`
	GridWaveAmplitude float64  `yaml:"grid_wave_amplitude"`
	RippleFrequency   float64  `yaml:"ripple_frequency"`
	RippleSpeedY      float64  `yaml:"ripple_speed_y"`
	RippleAmplitude   float64  `yaml:"ripple_amplitude"`
	GalaxySpin        float64  `yaml:"galaxy_spin"`
	IdleWave          float64  `yaml:"idle_wave"` // 0 disables the cloud wave
	IdleWaveFrequency float64  `yaml:"idle_wave_frequency"`
	MinPointSize      float64  `yaml:"min_point_size"`
}

// CameraConfig holds the perspective camera.
type CameraConfig struct {
	FovY      float64 `yaml:"fov_y"`
	Distance  float64 `yaml:"distance"`
	Near      float64 `yaml:"near"`
	Far       float64 `yaml:"far"`
	Sway      bool    `yaml:"sway" env:"MORPH_CAMERA_SWAY"`
	SwayX     float64 `yaml:"sway_x"`
	SwayY     float64 `yaml:"sway_y"`
	SwayFreqX float64 `yaml:"sway_freq_x"`
	SwayFreqY float64 `yaml:"sway_freq_y"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`
	SampleEvery int     `yaml:"sample_every"` // Frames between CSV samples
	LogInterval float64 `yaml:"log_interval"` // Seconds between perf log lines
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Aspect  float64 // Screen.Width / Screen.Height
	FovYRad float64 // Camera.FovY in radians
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults,
// then applies MORPH_* environment overrides.
// If path is empty, only embedded defaults and the environment are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values that would make generation or projection degenerate.
func (c *Config) validate() error {
	if c.Particles.Count < 0 {
		return fmt.Errorf("particles.count must be >= 0, got %d", c.Particles.Count)
	}
	if c.Logo.Step < 1 {
		return fmt.Errorf("logo.step must be >= 1, got %d", c.Logo.Step)
	}
	if c.Logo.Width < 1 || c.Logo.Height < 1 {
		return fmt.Errorf("logo canvas must be non-empty, got %dx%d", c.Logo.Width, c.Logo.Height)
	}
	if c.Shapes.Grid.Width < 1 || c.Shapes.DataGrid.Width < 1 {
		return fmt.Errorf("grid widths must be >= 1")
	}
	if c.Shapes.Galaxy.Arms < 1 {
		return fmt.Errorf("shapes.galaxy.arms must be >= 1, got %d", c.Shapes.Galaxy.Arms)
	}
	if c.Cycle.Enabled && c.Cycle.Interval <= 0 {
		return fmt.Errorf("cycle.interval must be > 0 when cycling, got %v", c.Cycle.Interval)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera clip range invalid: near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Aspect = 1
	if c.Screen.Height > 0 {
		c.Derived.Aspect = float64(c.Screen.Width) / float64(c.Screen.Height)
	}
	c.Derived.FovYRad = c.Camera.FovY * math.Pi / 180

	if c.Physics.MaxDT <= 0 {
		c.Physics.MaxDT = 0.1
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 60
	}
	if c.Telemetry.SampleEvery < 1 {
		c.Telemetry.SampleEvery = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
