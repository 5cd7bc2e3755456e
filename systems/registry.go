package systems

// Phase IDs in tick order. They key perf samples and log fields.
const (
	PhaseControl      = "control"
	PhaseMovement     = "movement"
	PhaseDrag         = "drag"
	PhaseWrap         = "wrap"
	PhaseCollision    = "collision"
	PhaseAsteroidHurt = "asteroidDamage"
	PhasePlayerHurt   = "playerDamage"
	PhaseLifetime     = "lifetime"
	PhaseCull         = "cull"
	PhaseCommands     = "commands"
	PhaseTelemetry    = "telemetry"
)

// SystemInfo describes a simulation phase.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "physics", "combat")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so perf output and logs stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems in the order a tick runs them.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: PhaseControl, Name: "Control", Description: "Applies player intents and queues shots", Category: "input"})

	// Physics and movement
	r.Register(SystemInfo{ID: PhaseMovement, Name: "Movement", Description: "Integrates velocity into transforms", Category: "physics"})
	r.Register(SystemInfo{ID: PhaseDrag, Name: "Drag", Description: "Damps velocities", Category: "physics"})
	r.Register(SystemInfo{ID: PhaseWrap, Name: "Wrap", Description: "Reflects entities leaving the arena", Category: "physics"})
	r.Register(SystemInfo{ID: PhaseCollision, Name: "Collision", Description: "Detects and separates overlapping circles", Category: "physics"})

	// Combat
	r.Register(SystemInfo{ID: PhaseAsteroidHurt, Name: "Asteroid Damage", Description: "Damages, breaks and knocks back asteroids", Category: "combat"})
	r.Register(SystemInfo{ID: PhasePlayerHurt, Name: "Player Damage", Description: "Damages and knocks back the player", Category: "combat"})

	// Life cycle
	r.Register(SystemInfo{ID: PhaseLifetime, Name: "Lifetime", Description: "Ages timed entities", Category: "lifecycle"})
	r.Register(SystemInfo{ID: PhaseCull, Name: "Cull", Description: "Removes expired and spent projectiles", Category: "lifecycle"})
	r.Register(SystemInfo{ID: PhaseCommands, Name: "Commands", Description: "Applies queued despawns and spawns", Category: "core"})

	r.Register(SystemInfo{ID: PhaseTelemetry, Name: "Telemetry", Description: "Records stats and bookmarks", Category: "internal"})
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

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
