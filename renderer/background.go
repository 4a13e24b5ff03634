package renderer

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// BackgroundRenderer clears the frame to a solid color.
type BackgroundRenderer struct {
	color rl.Color
}

// NewBackgroundRenderer parses a hex color such as "#ffffff".
func NewBackgroundRenderer(hex string) (*BackgroundRenderer, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("background color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return &BackgroundRenderer{color: rl.Color{R: r, G: g, B: b, A: 255}}, nil
}

// Color returns the clear color.
func (b *BackgroundRenderer) Color() rl.Color {
	return b.color
}

// Dark reports whether the background needs light foreground text.
func (b *BackgroundRenderer) Dark() bool {
	c := colorful.Color{R: float64(b.color.R) / 255, G: float64(b.color.G) / 255, B: float64(b.color.B) / 255}
	l, _, _ := c.Lab()
	return l < 0.5
}

// Draw clears the frame.
func (b *BackgroundRenderer) Draw() {
	rl.ClearBackground(b.color)
}
