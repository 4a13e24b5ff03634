package systems

// SystemInfo describes a frame phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "core", "render", "host")
}

// SystemRegistry holds metadata about all frame phases.
// This centralizes phase naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all frame phases to the registry.
// IDs match the telemetry phase names.
func (r *SystemRegistry) registerDefaults() {
	// Host
	r.Register(SystemInfo{ID: "input", Name: "Input", Description: "Polls pointer, wheel, keys and resize", Category: "host"})

	// Animation state
	r.Register(SystemInfo{ID: "step", Name: "Step", Description: "Advances clock, schedule, blend weights and pointer", Category: "core"})

	// Vertex stage
	r.Register(SystemInfo{ID: "compose", Name: "Compose", Description: "Folds shape targets into particle positions", Category: "render"})
	r.Register(SystemInfo{ID: "project", Name: "Project", Description: "Projects particles to screen with size and alpha", Category: "render"})

	// Raster stage
	r.Register(SystemInfo{ID: "draw", Name: "Draw", Description: "Draws particle sprites under the point shader", Category: "render"})
	r.Register(SystemInfo{ID: "ui", Name: "UI", Description: "Draws HUD and shape panel", Category: "host"})

	// Data collection
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Samples frame state to CSV", Category: "internal"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
