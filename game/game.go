// Package game hosts the particle cloud: it owns the particle store, runs the
// frame loop and wires input, rendering, UI and telemetry around the pure
// animation state in systems.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/morph/camera"
	"github.com/pthm-cable/morph/components"
	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/renderer"
	"github.com/pthm-cable/morph/shapes"
	"github.com/pthm-cable/morph/systems"
	"github.com/pthm-cable/morph/telemetry"
	"github.com/pthm-cable/morph/ui"
)

// Options configures a game instance.
type Options struct {
	Seed      int64  // Generation seed, already resolved by the caller
	Particles int    // Overrides particles.count when > 0
	Shape     string // Initial target shape, empty = blend.initial
	LogStats  bool   // Log window and perf stats via slog
	OutputDir string // Directory for CSV output (empty = disabled)
	Headless  bool   // No window, fixed dt, no raster stage
}

// Game holds the complete runtime state.
type Game struct {
	cfg  *config.Config
	seed int64

	world *ecs.World

	// One entity per particle, written once at spawn
	particleMapper *ecs.Map5[
		components.Particle,
		components.Base,
		components.Targets,
		components.Appearance,
		components.Velocity,
	]
	particleFilter *ecs.Filter5[
		components.Particle,
		components.Base,
		components.Targets,
		components.Appearance,
		components.Velocity,
	]
	particleCount int
	logoAssigned  int

	// Animation state
	state    systems.FrameState
	params   systems.Params
	composer *systems.Composer
	uniforms systems.Uniforms
	pending  systems.Input // Actions collected during Draw, applied next Update

	// Per-frame buffers indexed by particle
	positions []r3.Vec
	sprites   []renderer.Sprite
	culled    int

	// View
	camera       *camera.Camera
	pixelRatio   float64
	screenWidth  float32
	screenHeight float32
	lastMouse    rl.Vector2

	// Rendering
	background       *renderer.BackgroundRenderer
	particleRenderer *renderer.ParticleRenderer

	// UI
	hud            *ui.HUD
	shapePanel     *ui.ShapePanel
	blendPanel     *ui.BlendPanel
	perfPanel      *ui.PerfPanel
	pointerOverlay *ui.PointerOverlay
	uiOverlays     *ui.OverlayRegistry
	systemRegistry *systems.SystemRegistry

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool
	switches      int

	headless bool
}

// NewGameWithOptions generates every shape target, spawns the particles and
// prepares the frame loop. In graphical mode the raylib window must already
// exist; an error from the particle renderer means the render surface could
// not be prepared.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	if opts.Particles > 0 {
		cfg.Particles.Count = opts.Particles
	}

	state, err := systems.NewFrameState(cfg)
	if err != nil {
		return nil, fmt.Errorf("initial frame state: %w", err)
	}
	if opts.Shape != "" {
		if err := state.Blend.SetTargetByName(opts.Shape); err != nil {
			return nil, fmt.Errorf("initial shape: %w", err)
		}
		if state.Policy == systems.PolicyCycle {
			requested := state.Blend.Active()
			state.ResumeCycle()
			if active := state.Blend.Active(); active != requested {
				slog.Warn("initial shape not in cycle order",
					"shape", requested.String(),
					"starting_at", active.String(),
				)
			}
		}
	}
	params, err := systems.NewParams(cfg)
	if err != nil {
		return nil, fmt.Errorf("frame params: %w", err)
	}
	composer, err := systems.NewComposer(cfg)
	if err != nil {
		return nil, fmt.Errorf("composer: %w", err)
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:      cfg,
		seed:     opts.Seed,
		world:    world,
		state:    state,
		params:   params,
		composer: composer,
		particleMapper: ecs.NewMap5[
			components.Particle,
			components.Base,
			components.Targets,
			components.Appearance,
			components.Velocity,
		](world),
		particleFilter: ecs.NewFilter5[
			components.Particle,
			components.Base,
			components.Targets,
			components.Appearance,
			components.Velocity,
		](world),
		screenWidth:   float32(cfg.Screen.Width),
		screenHeight:  float32(cfg.Screen.Height),
		pixelRatio:    1,
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector:     telemetry.NewCollector(cfg.Telemetry.LogInterval, cfg.Physics.MaxDT),
		logStats:      opts.LogStats,
		headless:      opts.Headless,
	}
	g.camera = camera.New(cfg)

	gen, err := shapes.NewGenerator(cfg)
	if err != nil {
		return nil, fmt.Errorf("shape generator: %w", err)
	}
	set, err := gen.Generate(cfg.Particles.Count, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("generating shapes: %w", err)
	}
	g.spawnParticles(set)

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	if !opts.Headless {
		if err := g.initGraphics(); err != nil {
			g.outputManager.Close()
			return nil, err
		}
	}

	slog.Info("game initialized",
		"seed", opts.Seed,
		"particles", g.particleCount,
		"logo_points", len(set.Mask.Points),
		"logo_assigned", g.logoAssigned,
		"shape", g.state.Blend.Active().String(),
		"policy", g.state.Policy.String(),
		"law", g.state.Blend.Law().String(),
		"headless", opts.Headless,
	)

	return g, nil
}

// initGraphics prepares renderers and UI. Requires the raylib window.
func (g *Game) initGraphics() error {
	cfg := g.cfg

	bg, err := renderer.NewBackgroundRenderer(cfg.Render.Background)
	if err != nil {
		return err
	}
	g.background = bg

	g.particleRenderer = renderer.NewParticleRenderer(float32(cfg.Render.Glow), cfg.Render.Additive)
	if err := g.particleRenderer.Init(); err != nil {
		return err
	}

	g.screenWidth = float32(rl.GetScreenWidth())
	g.screenHeight = float32(rl.GetScreenHeight())
	g.camera.Resize(float64(g.screenWidth), float64(g.screenHeight))
	g.pixelRatio = g.currentPixelRatio()
	g.lastMouse = rl.GetMousePosition()

	g.hud = ui.NewHUD()
	g.uiOverlays = ui.NewOverlayRegistry()
	g.uiOverlays.SetEnabled(ui.OverlayHUD, true)
	g.systemRegistry = systems.NewSystemRegistry()
	g.shapePanel = ui.NewShapePanel(0, 10, 240)
	g.blendPanel = ui.NewBlendPanel(10, 100, 240)
	g.perfPanel = ui.NewPerfPanel(0, 0)
	g.pointerOverlay = ui.NewPointerOverlay()
	g.layoutPanels()

	return nil
}

// Tick returns the number of frames stepped so far.
func (g *Game) Tick() uint64 {
	return g.state.Tick
}

// State returns the current animation state.
func (g *Game) State() systems.FrameState {
	return g.state
}

// Particles returns the number of spawned particles.
func (g *Game) Particles() int {
	return g.particleCount
}

// Update polls input and advances one frame using the display clock.
func (g *Game) Update() {
	g.perfCollector.StartFrame()
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	in := g.pollInput()
	g.advance(in)
}

// UpdateHeadless advances one frame with the fixed physics dt and no input.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartFrame()
	in := g.pending
	g.pending = systems.Input{}
	in.DT = g.cfg.Physics.DT
	g.advance(in)
	g.perfCollector.EndFrame()
}

// advance steps the animation state and runs the vertex stage.
func (g *Game) advance(in systems.Input) {
	g.perfCollector.StartPhase(telemetry.PhaseStep)
	g.state = systems.Step(g.state, in, g.params)
	g.camera.Update(g.state.Time)

	g.perfCollector.StartPhase(telemetry.PhaseCompose)
	g.composePass()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordTelemetry(in.DT)
	if g.headless {
		g.flushTelemetry()
	}
}

// Unload releases GPU resources and closes output files.
func (g *Game) Unload() {
	if g.particleRenderer != nil {
		g.particleRenderer.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.logSummary()
}
