package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one frame. They match the system registry IDs.
const (
	PhaseInput     = "input"
	PhaseStep      = "step"
	PhaseCompose   = "compose"
	PhaseProject   = "project"
	PhaseDraw      = "draw"
	PhaseUI        = "ui"
	PhaseTelemetry = "telemetry"
)

// Phases lists every frame phase in execution order.
var Phases = [...]string{
	PhaseInput, PhaseStep, PhaseCompose, PhaseProject,
	PhaseDraw, PhaseUI, PhaseTelemetry,
}

const numPhases = len(Phases)

var phaseIndex = func() map[string]int {
	m := make(map[string]int, len(Phases))
	for i, name := range Phases {
		m[name] = i
	}
	return m
}()

// frameSample is the timing of one frame. phases is indexed like Phases.
type frameSample struct {
	work     time.Duration
	interval time.Duration // Display interval ending in this frame, 0 when headless
	phases   [numPhases]time.Duration
}

// PerfCollector times frame phases over a ring of recent frames.
type PerfCollector struct {
	ring   []frameSample
	next   int
	filled int

	current    frameSample
	frameStart time.Time
	phaseStart time.Time
	phase      int // Index into Phases, -1 outside a known phase

	lastPresent time.Time
}

// NewPerfCollector creates a collector averaging over window frames.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{ring: make([]frameSample, window), phase: -1}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.current = frameSample{}
	p.phase = -1
}

// StartPhase closes the running phase and opens the named one. Names outside
// Phases are timed as frame work but not broken out.
func (p *PerfCollector) StartPhase(name string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	if i, ok := phaseIndex[name]; ok {
		p.phase = i
	} else {
		p.phase = -1
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// MarkPresent records that a frame reached the display. Call once per drawn frame.
func (p *PerfCollector) MarkPresent() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.current.interval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// EndFrame closes the frame and stores it in the ring.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	p.closePhase(now)
	p.phase = -1
	p.current.work = now.Sub(p.frameStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

// PerfStats summarises the frames in the ring.
type PerfStats struct {
	Frames int

	// CPU time spent inside a frame
	AvgWork time.Duration
	MinWork time.Duration
	MaxWork time.Duration

	// Per-phase averages keyed by phase name, and their share of AvgWork
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Display pacing (graphics mode)
	AvgInterval time.Duration
	FPS         float64
	Load        float64 // AvgWork / AvgInterval, 0 when headless
}

// Stats computes the averages over the ring.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		Frames:   p.filled,
		PhaseAvg: make(map[string]time.Duration, len(Phases)),
		PhasePct: make(map[string]float64, len(Phases)),
	}
	if p.filled == 0 {
		return stats
	}

	var work, interval time.Duration
	var phases [numPhases]time.Duration
	presented := 0
	for i, s := range p.ring[:p.filled] {
		work += s.work
		if i == 0 || s.work < stats.MinWork {
			stats.MinWork = s.work
		}
		stats.MaxWork = max(stats.MaxWork, s.work)
		for j, d := range s.phases {
			phases[j] += d
		}
		if s.interval > 0 {
			interval += s.interval
			presented++
		}
	}

	n := time.Duration(p.filled)
	stats.AvgWork = work / n
	for j, name := range Phases {
		if phases[j] == 0 {
			continue
		}
		avg := phases[j] / n
		stats.PhaseAvg[name] = avg
		if stats.AvgWork > 0 {
			stats.PhasePct[name] = float64(avg) / float64(stats.AvgWork) * 100
		}
	}

	if presented > 0 {
		stats.AvgInterval = interval / time.Duration(presented)
		stats.FPS = float64(time.Second) / float64(stats.AvgInterval)
		stats.Load = float64(stats.AvgWork) / float64(stats.AvgInterval)
	}
	return stats
}

// LogStats logs the summary with the phases that take a visible share.
func (s PerfStats) LogStats() {
	attrs := []any{
		"frames", s.Frames,
		"avg_work_us", s.AvgWork.Microseconds(),
		"max_work_us", s.MaxWork.Microseconds(),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS), "load_pct", int(s.Load*100))
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", s.Frames),
		slog.Int64("avg_work_us", s.AvgWork.Microseconds()),
		slog.Int64("min_work_us", s.MinWork.Microseconds()),
		slog.Int64("max_work_us", s.MaxWork.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS), slog.Float64("load", s.Load))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    uint64  `csv:"window_end"`
	AvgWorkUS    int64   `csv:"avg_work_us"`
	MinWorkUS    int64   `csv:"min_work_us"`
	MaxWorkUS    int64   `csv:"max_work_us"`
	FPS          float64 `csv:"fps"`
	LoadPct      float64 `csv:"load_pct"`
	InputPct     float64 `csv:"input_pct"`
	StepPct      float64 `csv:"step_pct"`
	ComposePct   float64 `csv:"compose_pct"`
	ProjectPct   float64 `csv:"project_pct"`
	DrawPct      float64 `csv:"draw_pct"`
	UIPct        float64 `csv:"ui_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgWorkUS:    s.AvgWork.Microseconds(),
		MinWorkUS:    s.MinWork.Microseconds(),
		MaxWorkUS:    s.MaxWork.Microseconds(),
		FPS:          s.FPS,
		LoadPct:      s.Load * 100,
		InputPct:     s.PhasePct[PhaseInput],
		StepPct:      s.PhasePct[PhaseStep],
		ComposePct:   s.PhasePct[PhaseCompose],
		ProjectPct:   s.PhasePct[PhaseProject],
		DrawPct:      s.PhasePct[PhaseDraw],
		UIPct:        s.PhasePct[PhaseUI],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
