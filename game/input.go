package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/shapes"
	"github.com/pthm-cable/morph/systems"
	"github.com/pthm-cable/morph/ui"
)

// shapeKeys maps number keys to shapes: 0 is the random cloud, 1-8 the targets.
var shapeKeys = [shapes.NumShapes]int32{
	shapes.Random:   rl.KeyZero,
	shapes.Logo:     rl.KeyOne,
	shapes.Sphere:   rl.KeyTwo,
	shapes.DNA:      rl.KeyThree,
	shapes.Grid:     rl.KeyFour,
	shapes.DataGrid: rl.KeyFive,
	shapes.Torus:    rl.KeySix,
	shapes.Galaxy:   rl.KeySeven,
	shapes.Cube:     rl.KeyEight,
}

// controlsLegend is drawn at the bottom of the screen.
const controlsLegend = "[0-8] shape  [C] cycle  [A] additive  [wheel] scroll  [H/P/B/X/F3] overlays  [F11] fullscreen"

// pollInput gathers this frame's input, merged with panel actions from the
// previous Draw.
func (g *Game) pollInput() systems.Input {
	in := g.pending
	g.pending = systems.Input{}
	in.DT = float64(rl.GetFrameTime())

	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Pointer is only reported when it moved
	mouse := rl.GetMousePosition()
	if mouse != g.lastMouse {
		in.Pointer = systems.NormalizePointer(float64(mouse.X), float64(mouse.Y), float64(g.screenWidth), float64(g.screenHeight))
		in.PointerMoved = true
		g.lastMouse = mouse
	}

	// Wheel down scrolls the page forward; ignored over the panel
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !g.overPanel(mouse) {
		in.ScrollDelta -= float64(wheel) * g.cfg.Scroll.WheelStep
	}

	for s, key := range shapeKeys {
		if rl.IsKeyPressed(key) {
			in.Select = shapes.Shape(s)
			in.Selected = true
		}
	}

	if rl.IsKeyPressed(rl.KeyC) {
		in.ToggleCycle = !in.ToggleCycle
	}
	if rl.IsKeyPressed(rl.KeyA) {
		g.toggleAdditive()
	}

	g.handleOverlayKeys()

	return in
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(float64(w), float64(h))
	g.pixelRatio = g.currentPixelRatio()
	g.layoutPanels()
}

// currentPixelRatio returns the display scale capped at render.pixel_ratio_max.
func (g *Game) currentPixelRatio() float64 {
	dpi := rl.GetWindowScaleDPI()
	ratio := float64(dpi.X)
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = 1
	}
	if limit := g.cfg.Render.PixelRatioMax; limit > 0 && ratio > limit {
		ratio = limit
	}
	return ratio
}

func (g *Game) toggleAdditive() {
	g.particleRenderer.SetAdditive(!g.particleRenderer.Additive())
}

// overPanel reports whether the mouse is over the visible shape panel.
func (g *Game) overPanel(mouse rl.Vector2) bool {
	return g.uiOverlays.IsEnabled(ui.OverlayShapePanel) && g.shapePanel.Contains(mouse.X, mouse.Y, g.uiOverlays)
}
