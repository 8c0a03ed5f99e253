package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
)

// MovementSystem advances the MovementComponent state machine — Idle,
// PathRequested, FollowingPath, Stuck — consuming the waypoints a
// PathReady result supplies, one tile every TicksPerMove ticks. Grounded on
// the teacher's MovementSystem (systems/movement.go), which advances a
// toroidal-grid entity along a precomputed path at a fixed cadence;
// generalized here to an unbounded grid (no wraparound) and to a path
// sourced from the asynchronous PathQueue rather than computed inline.
type MovementSystem struct {
	spatial *SpatialIndex

	moveMap *ecs.Map1[components.MovementComponent]
	tileMap *ecs.Map1[components.TilePosition]
	classMap *ecs.Map1[components.Agent]

	filter *ecs.Filter2[components.MovementComponent, components.TilePosition]
}

// NewMovementSystem builds a movement system bound to spatial.
func NewMovementSystem(world *ecs.World, spatial *SpatialIndex) *MovementSystem {
	return &MovementSystem{
		spatial:  spatial,
		moveMap:  ecs.NewMap1[components.MovementComponent](world),
		tileMap:  ecs.NewMap1[components.TilePosition](world),
		classMap: ecs.NewMap1[components.Agent](world),
		filter:   ecs.NewFilter2[components.MovementComponent, components.TilePosition](world),
	}
}

// Ensure installs a fresh idle MovementComponent on e if it doesn't already
// have one.
func (m *MovementSystem) Ensure(e ecs.Entity) {
	if !m.moveMap.Has(e) {
		m.moveMap.Add(e, &components.MovementComponent{State: components.MovementIdle})
	}
}

// StartFollowing installs path as the entity's active route and switches it
// into FollowingPath. ticksPerMove is the species' per-tile cadence,
// possibly shortened by fear's speed boost.
func (m *MovementSystem) StartFollowing(e ecs.Entity, path []components.TilePosition, ticksPerMove int32) {
	m.Ensure(e)
	mc := m.moveMap.Get(e)
	mc.State = components.MovementFollowingPath
	mc.Path = path
	mc.Index = 0
	mc.TicksUntilMove = ticksPerMove
	mc.StuckAttempts = 0

	// A trivial self-path (length <= 1) is already satisfied.
	if len(path) <= 1 {
		mc.State = components.MovementIdle
		mc.Index = len(path)
	}
}

// Stop returns the entity to Idle, dropping any remaining path — an
// abandoned action clears its movement too.
func (m *MovementSystem) Stop(e ecs.Entity) {
	if !m.moveMap.Has(e) {
		return
	}
	mc := m.moveMap.Get(e)
	mc.State = components.MovementIdle
	mc.Path = nil
	mc.Index = 0
}

// Get returns e's MovementComponent, or nil if it has none.
func (m *MovementSystem) Get(e ecs.Entity) *components.MovementComponent {
	return m.moveMap.Get(e)
}

// Update advances every FollowingPath entity's waypoint countdown, moving
// one tile and updating the spatial index when the countdown reaches zero.
// cadenceFor supplies each entity's species-specific ticks-per-move,
// reloading the countdown after every step so a fear speed boost or a
// slower species keeps its own cadence across the whole path rather than
// just the first waypoint.
func (m *MovementSystem) Update(cadenceFor func(ecs.Entity) int32) {
	query := m.filter.Query()
	for query.Next() {
		e := query.Entity()
		mc, tile := query.Get()
		if mc.State != components.MovementFollowingPath {
			continue
		}

		mc.TicksUntilMove--
		if mc.TicksUntilMove > 0 {
			continue
		}

		next, ok := mc.CurrentWaypoint()
		if !ok {
			mc.State = components.MovementIdle
			continue
		}

		var class components.EntityClass
		if agent := m.classMap.Get(e); agent != nil {
			class = agent.Class
		}
		old := *tile
		*tile = next
		m.spatial.Update(e, old, next, class)

		mc.Index++
		cadence := int32(1)
		if cadenceFor != nil {
			if c := cadenceFor(e); c > 0 {
				cadence = c
			}
		}
		mc.TicksUntilMove = cadence
		if mc.AtGoal() {
			mc.State = components.MovementIdle
		}
	}
}

// AtGoal reports whether e has no movement component or has finished
// following its path — used by the action system to detect arrival.
func (m *MovementSystem) AtGoal(e ecs.Entity) bool {
	mc := m.moveMap.Get(e)
	if mc == nil {
		return true
	}
	return mc.State == components.MovementIdle && mc.AtGoal()
}
