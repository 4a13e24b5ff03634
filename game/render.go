package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/renderer"
	"github.com/pthm-cable/morph/telemetry"
)

// composePass folds every particle's targets into its world position for
// this frame.
func (g *Game) composePass() {
	g.uniforms = g.composer.Frame(&g.state, g.pixelRatio)

	query := g.particleFilter.Query()
	for query.Next() {
		p, base, targets, _, _ := query.Get()
		g.positions[p.Index] = g.composer.Position(&g.uniforms, base.Pos, &targets.Pos)
	}
}

// projectPass turns world positions into screen sprites. Sprites keep
// particle order; nothing is depth sorted.
func (g *Game) projectPass() {
	g.sprites = g.sprites[:0]
	g.culled = 0
	minSize := g.cfg.Render.MinPointSize

	query := g.particleFilter.Query()
	for query.Next() {
		p, _, _, app, _ := query.Get()

		sx, sy, depth, ok := g.camera.WorldToScreen(g.positions[p.Index])
		if !ok {
			g.culled++
			continue
		}
		size, alpha := g.composer.Appearance(&g.uniforms, depth, float64(app.Size))
		if alpha <= 0 {
			g.culled++
			continue
		}
		if size < minSize {
			size = minSize
		}
		if !g.camera.IsVisible(sx, sy, size/2) {
			g.culled++
			continue
		}

		g.sprites = append(g.sprites, renderer.Sprite{
			X:     float32(sx),
			Y:     float32(sy),
			Size:  float32(size),
			R:     app.R,
			G:     app.G,
			B:     app.B,
			Alpha: float32(alpha),
		})
	}
}

// Draw renders the frame.
func (g *Game) Draw() {
	if g.headless {
		return
	}
	g.perfCollector.MarkPresent()

	g.perfCollector.StartPhase(telemetry.PhaseProject)
	g.projectPass()

	g.perfCollector.StartPhase(telemetry.PhaseDraw)
	rl.BeginDrawing()
	g.background.Draw()
	g.particleRenderer.Draw(g.sprites)

	g.perfCollector.StartPhase(telemetry.PhaseUI)
	g.drawUI()
	rl.EndDrawing()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordDraw(len(g.sprites), g.culled)
	g.flushTelemetry()
	g.perfCollector.EndFrame()
}
