package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	TimeSec         float64 `csv:"time"`
	Frames          int     `csv:"frames"`
	DrawnFrames     int     `csv:"drawn_frames"` // Frames with raster load recorded

	// State at window end
	Policy   string `csv:"policy"`
	Active   string `csv:"active"`
	Dominant string `csv:"dominant"`

	// Events during window
	Switches      int `csv:"switches"`
	ClampedFrames int `csv:"clamped_frames"` // Frames whose delta hit the clamp

	// Shape factor distribution over the window's frames
	ShapeFactorMean float64 `csv:"shape_factor_mean"`
	ShapeFactorStd  float64 `csv:"shape_factor_std"`
	ShapeFactorP10  float64 `csv:"shape_factor_p10"`
	ShapeFactorP50  float64 `csv:"shape_factor_p50"`
	ShapeFactorP90  float64 `csv:"shape_factor_p90"`

	// Frame pacing
	DTMean float64 `csv:"dt_mean"`
	DTMax  float64 `csv:"dt_max"`

	// Raster load (graphics mode only)
	SpritesMean float64 `csv:"sprites_mean"`
	CulledMean  float64 `csv:"culled_mean"`

	// Total distance the smoothed pointer moved in NDC
	PointerTravel float64 `csv:"pointer_travel"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates the population mean, standard deviation and
// percentiles of values.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Float64("time", s.TimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("drawn_frames", s.DrawnFrames),
		slog.String("policy", s.Policy),
		slog.String("active", s.Active),
		slog.String("dominant", s.Dominant),
		slog.Int("switches", s.Switches),
		slog.Int("clamped_frames", s.ClampedFrames),
		slog.Float64("shape_factor_mean", s.ShapeFactorMean),
		slog.Float64("shape_factor_std", s.ShapeFactorStd),
		slog.Float64("shape_factor_p10", s.ShapeFactorP10),
		slog.Float64("shape_factor_p50", s.ShapeFactorP50),
		slog.Float64("shape_factor_p90", s.ShapeFactorP90),
		slog.Float64("dt_mean", s.DTMean),
		slog.Float64("dt_max", s.DTMax),
		slog.Float64("sprites_mean", s.SpritesMean),
		slog.Float64("culled_mean", s.CulledMean),
		slog.Float64("pointer_travel", s.PointerTravel),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"time", s.TimeSec,
		"policy", s.Policy,
		"active", s.Active,
		"dominant", s.Dominant,
		"switches", s.Switches,
		"shape_factor", s.ShapeFactorMean,
		"sprites", int(s.SpritesMean),
	)
}
