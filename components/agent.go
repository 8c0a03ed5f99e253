package components

// SpeciesID identifies a species in the registry. Kept as a plain
// string rather than an interface so components stay comparable and
// cheap to key maps with.
type SpeciesID string

// EntityClass is the coarse classification the spatial index filters on.
type EntityClass uint8

const (
	ClassHerbivore EntityClass = iota
	ClassPredator
	ClassOmnivore
)

// Agent is a simulated animal's identity record. Its stats live in
// StatsBundle, its behavior config in the species registry (looked up by
// Species), and its transient AI/social state in the other components in
// this package.
type Agent struct {
	ID      uint32
	Species SpeciesID
	Class   EntityClass
}

// NeedsReplan is a one-shot marker component carrying a replan reason.
// No system in the core adds it; the planner removes it from each entity
// it plans for.
type NeedsReplan struct {
	Reason string
}

// ActionFailureMemory tracks recent action failures per entity so the
// planner can penalize repeats. Grounded on
// original_source/src/ai/failure_memory.rs.
type ActionFailureMemory struct {
	Failures map[string]uint64 // key (see Action.Key) -> tick of last failure
}

// FearState tracks a prey agent's current fear level in [0,1] and exposes
// the modifiers the planner and movement system consume.
type FearState struct {
	Level          float32
	NearbyPredators int
}

// ThresholdFlags remembers whether each stat's threshold crossing has
// already been reported, so the stat-threshold trigger emitter only fires
// once per crossing rather than every tick the stat stays over.
type ThresholdFlags struct {
	HungerOver bool
	ThirstOver bool
}

// IdleTimer counts consecutive ticks an agent has had no active Action.
// Threshold is set at spawn to 10*wander_radius so the long-idle trigger
// emitter doesn't need a species lookup.
type IdleTimer struct {
	Ticks     uint32
	Threshold uint32
}
