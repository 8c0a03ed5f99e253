// Package species implements the species registry: per-species behavior,
// reproduction, and stats defaults, plus the action evaluator functions
// the planner (systems.Planner) calls.
//
// Evaluators depend only on small reader interfaces defined here so that
// systems (which owns the concrete vegetation grid and spatial index) can
// import species without a cycle.
package species

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
)

// ForagingStrategyKind selects how an evaluator searches for food tiles.
type ForagingStrategyKind uint8

const (
	ForagingExhaustive ForagingStrategyKind = iota
	ForagingSampled
)

// ForagingStrategy pairs the strategy kind with its sample size (ignored
// for Exhaustive).
type ForagingStrategy struct {
	Kind       ForagingStrategyKind
	SampleSize int
}

// BehaviorConfig holds per-species thresholds and ranges consumed by the
// common evaluator helpers.
type BehaviorConfig struct {
	WellFedHungerNorm float32
	WellFedThirstNorm float32

	GrazeSearchRadius  float32
	DrinkSearchRadius  float32
	WanderRadius       float32
	HuntSearchRadius   float32
	ScavengeSearchRadius float32
	FollowStopDistance float32

	TicksPerMove int32

	MealSizeFraction   float32 // fraction of own hunger capacity per bite, species-specific
	PreferredBiomassMin float32
	PreferredBiomassMax float32

	Foraging ForagingStrategy

	RestDurationTicks  int32
	HuntBiteRange      int32 // in tiles, "within 1.5 tiles" rounds to 1 for integer grids plus diagonal allowance
	MateDurationTicks  int32
}

// SpeciesNeeds captures the survival-stat shape every species fills in.
type SpeciesNeeds struct {
	HungerMax   float32
	ThirstMax   float32
	EatAmount   float32
	DrinkAmount float32
}

// Candidate is one action option an evaluator proposes.
type Candidate struct {
	Kind         components.ActionKind
	TargetTile   components.TilePosition
	TargetEntity ecs.Entity
	HasEntity    bool
	Utility      float32
	Priority     int
}

// VegetationSampler is the read-only view of the vegetation grid an
// evaluator needs. Satisfied structurally by systems.VegetationGrid.
type VegetationSampler interface {
	SampleBiomass(tile components.TilePosition) (biomass, maxBiomass float32)
	TerrainFactor(tile components.TilePosition) float32
}

// SpatialQuerier is the read-only view of the spatial/pathfinding world an
// evaluator needs to find nearby tiles/entities.
type SpatialQuerier interface {
	IsWalkable(tile components.TilePosition) bool
	NearbyEntities(center components.TilePosition, radius float32, class components.EntityClass) []ecs.Entity
	PositionOf(e ecs.Entity) (components.TilePosition, bool)
}

// EvalContext bundles everything a species evaluator reads. Never mutated.
type EvalContext struct {
	Self         ecs.Entity
	Position     components.TilePosition
	Stats        components.StatsBundle
	Fear         components.FearState
	Behavior     BehaviorConfig
	Needs        SpeciesNeeds
	Tick         uint64
	RNG          RandSource
	Vegetation   VegetationSampler
	World        SpatialQuerier
	HasMother    bool
	MotherEntity ecs.Entity
	IsJuvenile   bool
}

// RandSource is the minimal random interface evaluators use for Sampled
// foraging and tie-breaking, satisfied by *rand.Rand.
type RandSource interface {
	Intn(n int) int
	Float32() float32
}

// EvaluatorFunc proposes action candidates for one agent: it takes
// (position, stats, config, world, fear) and returns candidates.
type EvaluatorFunc func(ctx EvalContext) []Candidate

// Definition bundles everything the registry exposes for one species.
type Definition struct {
	ID           components.SpeciesID
	Class        components.EntityClass
	Behavior     BehaviorConfig
	Reproduction components.ReproductionConfig
	Needs        SpeciesNeeds
	Stats        components.StatsBundle // template: copied per spawned agent
	Group        components.GroupFormationConfig
	Evaluate     EvaluatorFunc
}

// Registry maps a species identifier to its Definition. Dynamic dispatch
// on species is unnecessary; the registry maps a species identifier to
// function pointers instead.
type Registry struct {
	defs map[components.SpeciesID]Definition
}

// NewRegistry builds a registry pre-populated with the bundled species.
func NewRegistry() *Registry {
	r := &Registry{defs: make(map[components.SpeciesID]Definition)}
	r.Register(RabbitDefinition())
	r.Register(DeerDefinition())
	r.Register(WolfDefinition())
	return r
}

// Register adds or replaces a species definition.
func (r *Registry) Register(def Definition) {
	r.defs[def.ID] = def
}

// Get looks up a species definition by ID.
func (r *Registry) Get(id components.SpeciesID) (Definition, bool) {
	def, ok := r.defs[id]
	return def, ok
}

// IDs returns every registered species identifier.
func (r *Registry) IDs() []components.SpeciesID {
	ids := make([]components.SpeciesID, 0, len(r.defs))
	for id := range r.defs {
		ids = append(ids, id)
	}
	return ids
}
