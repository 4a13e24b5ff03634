package game

import (
	"log/slog"
)

// logSummary logs the final state of the run.
func (g *Game) logSummary() {
	perf := g.perfCollector.Stats()
	slog.Info("run finished",
		"seed", g.seed,
		"tick", g.state.Tick,
		"time", g.state.Time,
		"particles", g.particleCount,
		"shape", g.state.Blend.Active().String(),
		"dominant", g.state.Blend.Dominant().String(),
		"policy", g.state.Policy.String(),
		"switches", g.switches,
		"output_dir", g.outputManager.Dir(),
		"perf", perf,
	)
}
