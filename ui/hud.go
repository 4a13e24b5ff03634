package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/morph/shapes"
	"github.com/pthm-cable/morph/systems"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Particles   int
	Tick        uint64
	Time        float64
	FPS         int32
	Active      shapes.Shape
	Dominant    shapes.Shape
	Policy      systems.Policy
	Law         systems.Law
	ShapeFactor float64
	Scroll      float64
	Additive    bool
	Light       bool // Draw dark text on a light background
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	primary, secondary := rl.White, rl.LightGray
	if data.Light {
		primary, secondary = rl.Black, rl.DarkGray
	}

	rl.DrawText(data.Title, 10, 10, 20, primary)

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Tick: %d | Time: %.1fs | FPS: %d", data.Particles, data.Tick, data.Time, data.FPS),
		10, 35, 16, secondary,
	)

	blend := "alpha"
	if data.Additive {
		blend = "additive"
	}
	rl.DrawText(
		fmt.Sprintf("Target: %s | Showing: %s | Shape factor: %.2f", data.Active, data.Dominant, data.ShapeFactor),
		10, 55, 16, secondary,
	)

	status := fmt.Sprintf("Policy: %s | Law: %s | Blend: %s", data.Policy, data.Law, blend)
	if data.Policy == systems.PolicyScroll {
		status += fmt.Sprintf(" | Scroll: %.0f%%", data.Scroll*100)
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string, light bool) {
	c := rl.Gray
	if light {
		c = rl.DarkGray
	}
	rl.DrawText(controls, 10, screenHeight-25, 14, c)
}

// BlendPanel renders one weight bar per shape.
type BlendPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewBlendPanel creates a new blend weight panel.
func NewBlendPanel(x, y, width int32) *BlendPanel {
	return &BlendPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (b *BlendPanel) SetPosition(x, y int32) {
	b.x = x
	b.y = y
}

// Draw renders the weights in blend. The bar of the active target is highlighted.
func (b *BlendPanel) Draw(blend *systems.Blend) {
	r := b.renderer
	padding := r.Theme.Padding
	rowHeight := r.Theme.LineHeight + 2
	height := int32(shapes.NumShapes)*rowHeight + r.Theme.LineHeight + padding*2

	r.DrawPanel(b.x, b.y, b.width, height)

	y := r.DrawSectionHeader(b.x+padding, b.y+padding, "Blend Weights")
	active := blend.Active()
	for _, s := range shapes.All() {
		y = r.DrawBar(b.x+padding, y, s.String(), float32(blend.Value(s)), b.width-padding*2, s == active)
	}
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseTimes map[string]time.Duration
	Total      time.Duration
	Load       float64 // Share of the display interval spent in the frame
	Registry   *systems.SystemRegistry
}

// PerfPanel renders the per-phase performance panel.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel. Phases are listed in registry order.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s | Load: %.0f%%", data.Total.Round(time.Microsecond), data.Load*100), x, y, 14, rl.Yellow)
	y += 16

	if data.Registry == nil {
		return
	}
	for _, info := range data.Registry.All() {
		avg, ok := data.PhaseTimes[info.ID]
		if !ok {
			continue
		}
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", info.Name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// PointerOverlay marks the raw and smoothed pointer on screen.
type PointerOverlay struct {
	renderer *Renderer
}

// NewPointerOverlay creates a new pointer overlay.
func NewPointerOverlay() *PointerOverlay {
	return &PointerOverlay{renderer: NewRenderer()}
}

// Draw renders crosshairs for both pointer positions and a readout of the offset.
func (o *PointerOverlay) Draw(p systems.Pointer, screenW, screenH int32) {
	rawX, rawY := ndcToScreen(p.Raw, screenW, screenH)
	offX, offY := ndcToScreen(p.Offset, screenW, screenH)

	rl.DrawCircleLines(rawX, rawY, 6, rl.Color{R: 200, G: 100, B: 100, A: 200})
	rl.DrawLine(offX-8, offY, offX+8, offY, rl.Color{R: 100, G: 200, B: 100, A: 255})
	rl.DrawLine(offX, offY-8, offX, offY+8, rl.Color{R: 100, G: 200, B: 100, A: 255})

	r := o.renderer
	width := int32(220)
	x := screenW - width - 10
	y := screenH - 2*(r.Theme.LineHeight+2) - 40
	y = r.DrawCenteredBar(x, y, "Offset X", float32(p.Offset.X), 1, width)
	r.DrawCenteredBar(x, y, "Offset Y", float32(p.Offset.Y), 1, width)
}

func ndcToScreen(v r2.Vec, w, h int32) (int32, int32) {
	return int32((v.X + 1) / 2 * float64(w)), int32((1 - v.Y) / 2 * float64(h))
}
