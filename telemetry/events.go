package telemetry

import "log/slog"

// SwitchEvent records a change of the active target shape.
type SwitchEvent struct {
	Tick   uint64  `csv:"tick"`
	Time   float64 `csv:"time"`
	From   string  `csv:"from"`
	To     string  `csv:"to"`
	Policy string  `csv:"policy"` // Policy in effect when the switch happened
}

// LogEvent logs the switch using slog.
func (e SwitchEvent) LogEvent() {
	slog.Info("switch",
		"tick", e.Tick,
		"time", e.Time,
		"from", e.From,
		"to", e.To,
		"policy", e.Policy,
	)
}
