package renderer

import (
	_ "embed"
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
)

//go:embed shaders/particle.fs
var particleFS string

// spriteSize is the edge of the white texture each particle quad samples.
const spriteSize = 32

// Sprite is one projected particle ready to draw.
type Sprite struct {
	X, Y    float32 // Screen center in pixels
	Size    float32 // Edge length in pixels
	R, G, B float32 // sRGB channels in [0, 1]
	Alpha   float32
}

// ParticleRenderer draws particle sprites under the point shader.
type ParticleRenderer struct {
	shader      rl.Shader
	sprite      rl.Texture2D
	glowLoc     int32
	glow        float32
	additive    bool
	initialized bool
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer(glow float32, additive bool) *ParticleRenderer {
	return &ParticleRenderer{glow: glow, additive: additive}
}

// Init loads the shader and sprite texture. Must be called after the raylib window is created.
func (r *ParticleRenderer) Init() error {
	if r.initialized {
		return nil
	}
	if !rl.IsWindowReady() {
		return errors.New("particle renderer: window not ready")
	}

	r.shader = rl.LoadShaderFromMemory("", particleFS)
	if r.shader.ID == 0 {
		return errors.New("particle renderer: failed to load particle shader")
	}
	r.glowLoc = rl.GetShaderLocation(r.shader, "glow")
	rl.SetShaderValue(r.shader, r.glowLoc, []float32{r.glow}, rl.ShaderUniformFloat)

	img := rl.GenImageColor(spriteSize, spriteSize, rl.White)
	r.sprite = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if r.sprite.ID == 0 {
		rl.UnloadShader(r.shader)
		return errors.New("particle renderer: failed to create sprite texture")
	}
	rl.SetTextureFilter(r.sprite, rl.FilterBilinear)

	r.initialized = true
	return nil
}

// SetAdditive switches between alpha and additive blending.
func (r *ParticleRenderer) SetAdditive(additive bool) {
	r.additive = additive
}

// Additive reports whether additive blending is on.
func (r *ParticleRenderer) Additive() bool {
	return r.additive
}

// Draw renders sprites in buffer order.
func (r *ParticleRenderer) Draw(sprites []Sprite) {
	if !r.initialized {
		return
	}

	src := rl.Rectangle{Width: spriteSize, Height: spriteSize}

	rl.BeginShaderMode(r.shader)
	if r.additive {
		rl.BeginBlendMode(rl.BlendAdditive)
	}

	for i := range sprites {
		s := &sprites[i]
		half := s.Size / 2
		dst := rl.Rectangle{X: s.X - half, Y: s.Y - half, Width: s.Size, Height: s.Size}
		rl.DrawTexturePro(r.sprite, src, dst, rl.Vector2{}, 0, tint(s.R, s.G, s.B, s.Alpha))
	}

	if r.additive {
		rl.EndBlendMode()
	}
	rl.EndShaderMode()
}

// Unload frees resources.
func (r *ParticleRenderer) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.sprite)
		rl.UnloadShader(r.shader)
		r.initialized = false
	}
}

func tint(red, green, blue, alpha float32) rl.Color {
	return rl.Color{
		R: channel(red),
		G: channel(green),
		B: channel(blue),
		A: channel(alpha),
	}
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
