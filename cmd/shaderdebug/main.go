// Shader debug tool - renders particle sprites under the point shader to a PNG
// file for inspection.
//
// Usage: go run ./cmd/shaderdebug -out sprites.png -glow 0.5 -additive
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/morph/renderer"
)

func main() {
	outPath := flag.String("out", "sprites.png", "Output PNG path")
	width := flag.Int("width", 640, "Render width")
	height := flag.Int("height", 360, "Render height")
	glow := flag.Float64("glow", 0, "Glow factor passed to the shader")
	additive := flag.Bool("additive", false, "Use additive blending")
	background := flag.String("background", "#ffffff", "Background color")
	flag.Parse()

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Shader Debug")
	defer rl.CloseWindow()

	bg, err := renderer.NewBackgroundRenderer(*background)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid background: %v\n", err)
		os.Exit(1)
	}

	particles := renderer.NewParticleRenderer(float32(*glow), *additive)
	if err := particles.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to prepare particle renderer: %v\n", err)
		os.Exit(1)
	}
	defer particles.Unload()

	sprites := spriteSheet(float32(*width), float32(*height))

	// Create render texture
	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	bg.Draw()
	particles.Draw(sprites)
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Sprites rendered to: %s (%dx%d, %d sprites)\n", *outPath, *width, *height, len(sprites))
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}

// spriteSheet lays out rows of sprites: size grows left to right, alpha
// falls top to bottom, hue changes per column. The last row overlaps sprites
// to show blending.
func spriteSheet(w, h float32) []renderer.Sprite {
	sizes := []float32{4, 8, 16, 32, 64}
	alphas := []float32{1, 0.6, 0.3}

	rows := float32(len(alphas) + 1)
	cellW := w / float32(len(sizes))
	cellH := h / rows

	var sprites []renderer.Sprite
	for row, alpha := range alphas {
		for col, size := range sizes {
			c := colorful.Hsl(float64(col)*60+150, 0.8, 0.45)
			sprites = append(sprites, renderer.Sprite{
				X:     cellW*(float32(col)+0.5),
				Y:     cellH*(float32(row)+0.5),
				Size:  size,
				R:     float32(c.R),
				G:     float32(c.G),
				B:     float32(c.B),
				Alpha: alpha,
			})
		}
	}

	y := cellH * (rows - 0.5)
	for i := 0; i < 12; i++ {
		c := colorful.Hsl(float64(i)*30, 0.8, 0.5)
		sprites = append(sprites, renderer.Sprite{
			X:     w*0.2 + float32(i)*w*0.05,
			Y:     y,
			Size:  48,
			R:     float32(c.R),
			G:     float32(c.G),
			B:     float32(c.B),
			Alpha: 0.5,
		})
	}
	return sprites
}
