package game

import (
	"log/slog"

	"github.com/pthm-cable/morph/telemetry"
)

// recordTelemetry observes the frame just stepped. rawDT is the unclamped delta.
func (g *Game) recordTelemetry(rawDT float64) {
	if ev, ok := g.collector.Observe(&g.state, rawDT); ok {
		g.switches++
		if g.logStats {
			ev.LogEvent()
		}
		if err := g.outputManager.WriteSwitch(ev); err != nil {
			slog.Error("failed to write switch", "error", err)
		}
	}

	if g.state.Tick%uint64(g.cfg.Telemetry.SampleEvery) == 0 {
		if err := g.outputManager.WriteFrame(telemetry.NewFrameSample(&g.state)); err != nil {
			slog.Error("failed to write frame", "error", err)
		}
	}
}

// flushTelemetry closes the stats window once it has covered its duration.
// In graphics mode it runs after the frame's draw counts are recorded.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.state.Time) {
		return
	}

	stats := g.collector.Flush(&g.state)
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteWindow(stats); err != nil {
		slog.Error("failed to write window stats", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
