package systems

// Phase categories. Every decide phase runs on every cell before migrants
// are routed; commit phases run after routing.
const (
	CategoryDecide = "decide"
	CategoryCommit = "commit"
)

// PhaseInfo describes one phase of the annual cycle.
type PhaseInfo struct {
	ID          string    // Internal identifier (used for perf tracking)
	Name        string    // Display name
	Description string    // What this phase does
	Category    string    // CategoryDecide or CategoryCommit
	Run         PhaseFunc // Applied to each habitable cell
}

// PhaseRegistry holds the annual phases in execution order.
type PhaseRegistry struct {
	phases []PhaseInfo
	byID   map[string]PhaseInfo
}

// NewPhaseRegistry creates a registry with the standard annual cycle.
func NewPhaseRegistry() *PhaseRegistry {
	reg := &PhaseRegistry{
		byID: make(map[string]PhaseInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the annual phases in the order they run.
func (r *PhaseRegistry) registerDefaults() {
	r.Register(PhaseInfo{ID: "birth", Name: "Birth", Description: "Eligible animals give birth", Category: CategoryDecide, Run: BirthPhase})
	r.Register(PhaseInfo{ID: "regrowth", Name: "Regrowth", Description: "Fodder returns to capacity", Category: CategoryDecide, Run: RegrowPhase})
	r.Register(PhaseInfo{ID: "feeding", Name: "Feeding", Description: "Grazing then hunting", Category: CategoryDecide, Run: FeedingPhase})
	r.Register(PhaseInfo{ID: "migration", Name: "Migration", Description: "Emigrants leave for neighbouring cells", Category: CategoryDecide, Run: MigrationPhase})

	r.Register(PhaseInfo{ID: "combine", Name: "Combine", Description: "Arrivals join residents", Category: CategoryCommit, Run: CombinePhase})
	r.Register(PhaseInfo{ID: "aging", Name: "Aging", Description: "Age and annual weight loss", Category: CategoryCommit, Run: AgingPhase})
	r.Register(PhaseInfo{ID: "death", Name: "Death", Description: "Starved and unlucky animals die", Category: CategoryCommit, Run: DeathPhase})
}

// Register appends a phase to the registry.
func (r *PhaseRegistry) Register(info PhaseInfo) {
	r.phases = append(r.phases, info)
	r.byID[info.ID] = info
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *PhaseRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// ByCategory returns the phases of one category in execution order.
func (r *PhaseRegistry) ByCategory(category string) []PhaseInfo {
	var result []PhaseInfo
	for _, info := range r.phases {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all phase IDs in execution order.
func (r *PhaseRegistry) IDs() []string {
	ids := make([]string, len(r.phases))
	for i, info := range r.phases {
		ids[i] = info.ID
	}
	return ids
}
