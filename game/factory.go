package game

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/morph/components"
	"github.com/pthm-cable/morph/renderer"
	"github.com/pthm-cable/morph/shapes"
)

// spawnParticles creates one entity per particle in set and sizes the
// per-frame buffers.
func (g *Game) spawnParticles(set *shapes.Set) {
	for i := 0; i < set.N; i++ {
		p := components.Particle{Index: int32(i)}
		base := components.Base{Pos: set.Targets[shapes.Random][i]}

		var targets components.Targets
		for s := shapes.Shape(0); s < shapes.NumShapes; s++ {
			targets.Pos[s] = set.Targets[s][i]
		}

		c := set.Colors[i]
		app := components.Appearance{
			R:    float32(c.R),
			G:    float32(c.G),
			B:    float32(c.B),
			Size: float32(set.Sizes[i]),
		}
		vel := components.Velocity{V: set.Velocities[i]}

		g.particleMapper.NewEntity(&p, &base, &targets, &app, &vel)
	}

	g.particleCount = set.N
	g.logoAssigned = set.LogoAssigned()
	g.positions = make([]r3.Vec, set.N)
	g.sprites = make([]renderer.Sprite, 0, set.N)
}
