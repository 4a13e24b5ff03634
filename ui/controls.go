package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/shapes"
	"github.com/pthm-cable/morph/systems"
)

// PanelState is what the shape panel needs to label its controls.
type PanelState struct {
	Active        shapes.Shape
	Policy        systems.Policy
	Additive      bool
	Scroll        float64
	ScrollEnabled bool
}

// PanelAction reports what the user clicked this frame.
type PanelAction struct {
	Select         shapes.Shape
	Selected       bool
	ToggleCycle    bool
	ToggleAdditive bool
	ScrollDelta    float64
}

// ShapePanel renders the right-side panel with shape buttons, render toggles
// and the overlay list.
type ShapePanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

const buttonHeight = 24

// NewShapePanel creates a new shape panel.
func NewShapePanel(x, y, width int32) *ShapePanel {
	return &ShapePanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (c *ShapePanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Contains reports whether a screen point lies over the panel.
func (c *ShapePanel) Contains(px, py float32, overlays *OverlayRegistry) bool {
	return rl.CheckCollisionPointRec(rl.Vector2{X: px, Y: py}, c.bounds(overlays))
}

func (c *ShapePanel) bounds(overlays *OverlayRegistry) rl.Rectangle {
	r := c.renderer
	rows := int32(len(shapes.All())+1)/2 + 2
	height := r.Theme.Padding*3 + r.Theme.LineHeight*2 + rows*(buttonHeight+4)
	for _, cat := range overlays.Categories() {
		height += r.Theme.LineHeight * int32(len(overlays.ByCategory(cat))+1)
	}
	return rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(height)}
}

// Draw renders the panel and returns the actions taken this frame.
func (c *ShapePanel) Draw(state PanelState, overlays *OverlayRegistry) PanelAction {
	var action PanelAction
	r := c.renderer
	padding := r.Theme.Padding
	b := c.bounds(overlays)

	r.DrawPanel(c.x, c.y, c.width, int32(b.Height))

	x := float32(c.x + padding)
	y := c.y + padding
	y = r.DrawSectionHeader(c.x+padding, y, "Shapes")

	// Two columns of shape buttons
	colWidth := float32(c.width-padding*3) / 2
	for i, s := range shapes.All() {
		bx := x + float32(i%2)*(colWidth+float32(padding))
		by := float32(y) + float32(i/2)*(buttonHeight+4)
		label := s.String()
		if s == state.Active {
			label = "> " + label
		}
		if gui.Button(rl.Rectangle{X: bx, Y: by, Width: colWidth, Height: buttonHeight}, label) {
			action.Select = s
			action.Selected = true
		}
	}
	y += int32(len(shapes.All())+1) / 2 * (buttonHeight + 4)

	cycleText := toggleText(state.Policy == systems.PolicyCycle, "Stop Cycle", "Auto Cycle")
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: colWidth, Height: buttonHeight}, cycleText) {
		action.ToggleCycle = true
	}
	blendText := toggleText(state.Additive, "Alpha Blend", "Additive")
	if gui.Button(rl.Rectangle{X: x + colWidth + float32(padding), Y: float32(y), Width: colWidth, Height: buttonHeight}, blendText) {
		action.ToggleAdditive = true
	}
	y += buttonHeight + 4

	if state.ScrollEnabled {
		scroll := gui.SliderBar(
			rl.Rectangle{X: x + 40, Y: float32(y + 2), Width: float32(c.width-padding*2) - 80, Height: 16},
			"Scroll", fmt.Sprintf("%.0f%%", state.Scroll*100),
			float32(state.Scroll), 0, 1,
		)
		if d := float64(scroll) - state.Scroll; d > 1e-4 || d < -1e-4 {
			action.ScrollDelta = d
		}
	}
	y += buttonHeight + 4

	y = r.DrawSectionHeader(c.x+padding, y+padding, "Overlays")
	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.FontSize, r.Theme.SectionHeader)
		y += r.Theme.LineHeight
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += r.Theme.LineHeight
		}
	}

	return action
}

// drawToggle draws a single overlay toggle line.
func (c *ShapePanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "info":
		return "Info"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
