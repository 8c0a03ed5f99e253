package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
)

// starvationDamagePerTick is the Health penalty applied each tick that
// Hunger or Thirst sits at its maximum. Stat.Drift alone only models the
// species' baseline metabolism; nothing else in the data model accounts
// for starvation actually harming health, so VitalsSystem adds it
// directly.
const starvationDamagePerTick = 0.01

// VitalsSystem applies per-tick stat drift to every agent and despawns
// whoever's health bottoms out. Grounded on the teacher's energy system
// (systems/energy.go), which zeroes Energy and flips an Alive flag once
// an organism's reserves run out; generalized from a single resource and
// a flag to StatsBundle's four stats and an actual despawn, since there
// is no separate Alive field here — a dead agent simply stops existing.
type VitalsSystem struct {
	world   *ecs.World
	spatial *SpatialIndex
	hunting *HuntingRelationships

	statsMap *ecs.Map1[components.StatsBundle]

	filter *ecs.Filter2[components.StatsBundle, components.Agent]
}

// NewVitalsSystem builds a vitals system bound to spatial (for despawn
// cleanup) and hunting (for half-edge cleanup on a predator or prey's
// death).
func NewVitalsSystem(world *ecs.World, spatial *SpatialIndex, hunting *HuntingRelationships) *VitalsSystem {
	return &VitalsSystem{
		world:    world,
		spatial:  spatial,
		hunting:  hunting,
		statsMap: ecs.NewMap1[components.StatsBundle](world),
		filter:   ecs.NewFilter2[components.StatsBundle, components.Agent](world),
	}
}

// Update advances every agent's stat drift one tick, applies the
// starvation penalty, and despawns anyone whose health has bottomed out.
// Returns the entities despawned this tick, which the caller feeds to the
// other systems' lazy cleanup passes.
func (v *VitalsSystem) Update() []ecs.Entity {
	query := v.filter.Query()
	var dead []ecs.Entity
	for query.Next() {
		e := query.Entity()
		stats, _ := query.Get()

		stats.Hunger.Apply()
		stats.Thirst.Apply()
		stats.Energy.Apply()
		stats.Health.Apply()

		if stats.Hunger.Normalized() >= 1 {
			stats.Health.Adjust(-starvationDamagePerTick)
		}
		if stats.Thirst.Normalized() >= 1 {
			stats.Health.Adjust(-starvationDamagePerTick)
		}

		if stats.Health.Current <= stats.Health.Min {
			dead = append(dead, e)
		}
	}

	for _, e := range dead {
		v.despawn(e)
	}
	return dead
}

// despawn removes a dead agent from the spatial index and clears any
// hunting relationship it held before removing it from the world. Every
// other cross-reference (PackLeader/PackMember, ParentRef/Children,
// ActiveMate/MatingTarget, path/action state) is cleaned up lazily: each
// consumer checks world.Alive on its referent and drops its own half-edge
// when it finds the referent gone.
func (v *VitalsSystem) despawn(e ecs.Entity) {
	v.hunting.ClearForEntity(v.world, e)
	if tile, ok := v.spatial.PositionOf(e); ok {
		v.spatial.Remove(e, tile)
	}
	v.world.RemoveEntity(e)
}
