package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/ui"
)

// handleOverlayKeys checks for overlay toggle key presses.
func (g *Game) handleOverlayKeys() {
	for _, key := range g.uiOverlays.Keys() {
		if rl.IsKeyPressed(key) {
			g.uiOverlays.HandleKeyPress(key)
		}
	}
}

// layoutPanels anchors right-side panels to the current screen width.
func (g *Game) layoutPanels() {
	w := int32(g.screenWidth)
	g.shapePanel.SetPosition(w-250, 10)
	g.perfPanel.SetPosition(w-520, 10)
	g.blendPanel.SetPosition(10, 100)
}

// drawUI renders HUD, overlays and the shape panel. Panel clicks are queued
// for the next Update.
func (g *Game) drawUI() {
	light := !g.background.Dark()

	for _, id := range g.uiOverlays.EnabledOverlays() {
		switch id {
		case ui.OverlayHUD:
			g.hud.Draw(ui.HUDData{
				Title:       g.cfg.Screen.Title,
				Particles:   g.particleCount,
				Tick:        g.state.Tick,
				Time:        g.state.Time,
				FPS:         rl.GetFPS(),
				Active:      g.state.Blend.Active(),
				Dominant:    g.state.Blend.Dominant(),
				Policy:      g.state.Policy,
				Law:         g.state.Blend.Law(),
				ShapeFactor: g.state.ShapeFactor,
				Scroll:      g.state.Scroll,
				Additive:    g.particleRenderer.Additive(),
				Light:       light,
			})
			g.hud.DrawControls(int32(g.screenHeight), controlsLegend, light)
		case ui.OverlayBlendBars:
			g.blendPanel.Draw(&g.state.Blend)
		case ui.OverlayPerf:
			stats := g.perfCollector.Stats()
			g.perfPanel.Draw(ui.PerfPanelData{
				PhaseTimes: stats.PhaseAvg,
				Total:      stats.AvgWork,
				Load:       stats.Load,
				Registry:   g.systemRegistry,
			})
		case ui.OverlayPointer:
			g.pointerOverlay.Draw(g.state.Pointer, int32(g.screenWidth), int32(g.screenHeight))
		}
	}

	// Panel last so its buttons sit on top
	if g.uiOverlays.IsEnabled(ui.OverlayShapePanel) {
		action := g.shapePanel.Draw(ui.PanelState{
			Active:        g.state.Blend.Active(),
			Policy:        g.state.Policy,
			Additive:      g.particleRenderer.Additive(),
			Scroll:        g.state.Scroll,
			ScrollEnabled: g.params.ScrollEnabled,
		}, g.uiOverlays)
		g.queuePanelAction(action)
	}
}

// queuePanelAction merges a panel action into the pending input.
func (g *Game) queuePanelAction(action ui.PanelAction) {
	if action.Selected {
		g.pending.Select = action.Select
		g.pending.Selected = true
	}
	if action.ToggleCycle {
		g.pending.ToggleCycle = !g.pending.ToggleCycle
	}
	if action.ToggleAdditive {
		g.toggleAdditive()
	}
	g.pending.ScrollDelta += action.ScrollDelta
}
