package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
)

// HuntingRelationships installs and clears the bidirectional
// ActiveHunter/HuntingTarget pair. Both halves are always written or
// removed together in the same call, keeping the relationship
// symmetric.
type HuntingRelationships struct {
	hunterMap *ecs.Map1[components.ActiveHunter]
	targetMap *ecs.Map1[components.HuntingTarget]
}

// NewHuntingRelationships builds the component maps.
func NewHuntingRelationships(world *ecs.World) *HuntingRelationships {
	return &HuntingRelationships{
		hunterMap: ecs.NewMap1[components.ActiveHunter](world),
		targetMap: ecs.NewMap1[components.HuntingTarget](world),
	}
}

// Establish installs ActiveHunter(predator->prey) and
// HuntingTarget(prey->predator) with the same StartedTick.
func (h *HuntingRelationships) Establish(predator, prey ecs.Entity, tick uint64) {
	h.hunterMap.Add(predator, &components.ActiveHunter{Target: prey, StartedTick: tick})
	h.targetMap.Add(prey, &components.HuntingTarget{Predator: predator, StartedTick: tick})
}

// Clear removes both halves of the relationship regardless of which side
// initiates — success, abort, or prey death all call this the same way.
func (h *HuntingRelationships) Clear(predator, prey ecs.Entity) {
	if h.hunterMap.Has(predator) {
		h.hunterMap.Remove(predator)
	}
	if h.targetMap.Has(prey) {
		h.targetMap.Remove(prey)
	}
}

// ClearForEntity clears whichever half of a hunting relationship entity
// participates in, looking up its counterpart first — used when an
// entity's own identity as predator or prey isn't known by the caller
// (e.g. a despawn handler).
func (h *HuntingRelationships) ClearForEntity(world *ecs.World, e ecs.Entity) {
	if rel := h.hunterMap.Get(e); rel != nil {
		h.Clear(e, rel.Target)
		return
	}
	if rel := h.targetMap.Get(e); rel != nil {
		h.Clear(rel.Predator, e)
	}
}

// Reconcile performs lazy half-edge cleanup: any ActiveHunter or
// HuntingTarget whose referent no longer exists is removed without the
// other half needing to exist.
func (h *HuntingRelationships) Reconcile(world *ecs.World) {
	hunterFilter := ecs.NewFilter1[components.ActiveHunter](world)
	q := hunterFilter.Query()
	var stale []ecs.Entity
	for q.Next() {
		e := q.Entity()
		rel := q.Get()
		if !world.Alive(rel.Target) {
			stale = append(stale, e)
		}
	}
	for _, e := range stale {
		h.hunterMap.Remove(e)
	}

	targetFilter := ecs.NewFilter1[components.HuntingTarget](world)
	q2 := targetFilter.Query()
	stale = stale[:0]
	for q2.Next() {
		e := q2.Entity()
		rel := q2.Get()
		if !world.Alive(rel.Predator) {
			stale = append(stale, e)
		}
	}
	for _, e := range stale {
		h.targetMap.Remove(e)
	}
}
