package components

import "github.com/mlange-42/ark/ecs"

// GroupType is the closed set of social group kinds.
type GroupType uint8

const (
	GroupPack GroupType = iota
	GroupHerd
	GroupWarren
)

// GroupFormationConfig is a per-agent knob bundle controlling when and how
// this agent participates in group formation/cohesion.
type GroupFormationConfig struct {
	GroupType          GroupType
	MinGroupSize       int
	MaxGroupSize       int
	FormationRadius    float32
	CohesionRadius     float32
	CheckIntervalTicks int
	Enabled            bool
}

// PackLeader marks an entity as the leader of a group. Invariant: every
// member in Members has a PackMember pointing back here.
type PackLeader struct {
	Members   []ecs.Entity
	FormedTick uint64
	GroupType GroupType
}

// PackMember marks an entity as following a leader.
type PackMember struct {
	Leader    ecs.Entity
	JoinedTick uint64
	GroupType GroupType
}

// ActiveHunter marks a predator currently hunting prey. Installed in the
// same tick, with the same StartedTick, as the prey's HuntingTarget, so
// the relationship is always symmetric.
type ActiveHunter struct {
	Target      ecs.Entity
	StartedTick uint64
}

// HuntingTarget marks prey currently being hunted by a predator.
type HuntingTarget struct {
	Predator    ecs.Entity
	StartedTick uint64
}

// ActiveMate marks an agent that has committed to mating at MeetingTile.
type ActiveMate struct {
	Partner     ecs.Entity
	MeetingTile TilePosition
	StartedTick uint64
}

// MatingTarget is the bidirectional counterpart of ActiveMate.
type MatingTarget struct {
	Partner     ecs.Entity
	StartedTick uint64
}

// ParentRef records a child's parent. Stored as a cross-reference, not an
// ownership edge: despawning the parent does not despawn the child.
type ParentRef struct {
	Parent ecs.Entity
}

// BirthInfo is metadata attached to a child at birth.
type BirthInfo struct {
	BornTick uint64
}

// Children is an optional convenience list on a parent, used by the birth
// system and the observation API's lineage views. Like all cross
// references it is cleaned up lazily: entries pointing at despawned
// entities are skipped by readers, never eagerly compacted.
type Children struct {
	IDs []ecs.Entity
}
