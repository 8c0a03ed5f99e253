package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
	"github.com/jeanfbrito/ecosim-core/species"
)

// GroupsSystem forms and maintains Pack/Herd/Warren social groups. This
// generic group model has no direct teacher equivalent (the teacher's
// organisms are solitary); the candidate-collection-then-cluster shape is
// grounded on the same pattern the teacher's BreedingSystem
// (systems/breeding.go) uses for gathering eligible entities before pairing
// them, generalized from pairwise matching to same-species proximity
// clustering.
type GroupsSystem struct {
	world    *ecs.World
	registry *species.Registry
	spatial  *SpatialIndex

	agentMap  *ecs.Map1[components.Agent]
	tileMap   *ecs.Map1[components.TilePosition]
	leaderMap *ecs.Map1[components.PackLeader]
	memberMap *ecs.Map1[components.PackMember]

	filter       *ecs.Filter2[components.Agent, components.TilePosition]
	leaderFilter *ecs.Filter1[components.PackLeader]
}

// NewGroupsSystem builds a groups system bound to registry and spatial.
func NewGroupsSystem(world *ecs.World, registry *species.Registry, spatial *SpatialIndex) *GroupsSystem {
	return &GroupsSystem{
		world:        world,
		registry:     registry,
		spatial:      spatial,
		agentMap:     ecs.NewMap1[components.Agent](world),
		tileMap:      ecs.NewMap1[components.TilePosition](world),
		leaderMap:    ecs.NewMap1[components.PackLeader](world),
		memberMap:    ecs.NewMap1[components.PackMember](world),
		filter:       ecs.NewFilter2[components.Agent, components.TilePosition](world),
		leaderFilter: ecs.NewFilter1[components.PackLeader](world),
	}
}

type groupCandidate struct {
	entity  ecs.Entity
	pos     components.TilePosition
	species components.SpeciesID
}

// FormGroups clusters ungrouped same-species agents within their species'
// FormationRadius and elects a leader once a cluster reaches MinGroupSize.
// Call on the species' CheckIntervalTicks cadence.
func (g *GroupsSystem) FormGroups(tick uint64) {
	bySpecies := make(map[components.SpeciesID][]groupCandidate)

	query := g.filter.Query()
	for query.Next() {
		e := query.Entity()
		if g.leaderMap.Has(e) || g.memberMap.Has(e) {
			continue
		}
		agent, tile := query.Get()
		bySpecies[agent.Species] = append(bySpecies[agent.Species], groupCandidate{entity: e, pos: *tile, species: agent.Species})
	}

	for id, candidates := range bySpecies {
		def, ok := g.registry.Get(id)
		if !ok || !def.Group.Enabled {
			continue
		}
		g.clusterSpecies(def, candidates, tick)
	}
}

func (g *GroupsSystem) clusterSpecies(def species.Definition, candidates []groupCandidate, tick uint64) {
	assigned := make([]bool, len(candidates))
	radius := def.Group.FormationRadius
	if radius <= 0 {
		radius = 5
	}

	for i := range candidates {
		if assigned[i] {
			continue
		}
		var cluster []int
		for j := range candidates {
			if assigned[j] || i == j {
				continue
			}
			if float32(components.ChebyshevDistance(candidates[i].pos, candidates[j].pos)) <= radius {
				cluster = append(cluster, j)
			}
		}
		if len(cluster)+1 < def.Group.MinGroupSize {
			continue
		}

		max := def.Group.MaxGroupSize
		if max <= 0 || max > len(cluster)+1 {
			max = len(cluster) + 1
		}
		members := cluster[:max-1]

		leader := candidates[i].entity
		assigned[i] = true
		memberEntities := make([]ecs.Entity, 0, len(members))
		for _, idx := range members {
			assigned[idx] = true
			memberEntities = append(memberEntities, candidates[idx].entity)
			g.memberMap.Add(candidates[idx].entity, &components.PackMember{Leader: leader, JoinedTick: tick, GroupType: def.Group.GroupType})
		}
		g.leaderMap.Add(leader, &components.PackLeader{Members: memberEntities, FormedTick: tick, GroupType: def.Group.GroupType})
	}
}

// Cohesion drops members that have strayed beyond CohesionRadius and
// dissolves groups that fall below MinGroupSize-1 members.
func (g *GroupsSystem) Cohesion() {
	query := g.leaderFilter.Query()
	var leaders []ecs.Entity
	for query.Next() {
		leaders = append(leaders, query.Entity())
	}

	for _, leader := range leaders {
		if !g.world.Alive(leader) {
			g.dissolve(nil, leader)
			continue
		}
		pl := g.leaderMap.Get(leader)
		def, ok := g.registry.Get(g.speciesOf(leader))
		cohesionRadius := float32(5)
		minSize := 3
		if ok {
			if def.Group.CohesionRadius > 0 {
				cohesionRadius = def.Group.CohesionRadius
			}
			if def.Group.MinGroupSize > 0 {
				minSize = def.Group.MinGroupSize
			}
		}
		leaderPos := g.tileMap.Get(leader)

		kept := pl.Members[:0]
		for _, m := range pl.Members {
			if !g.world.Alive(m) {
				continue
			}
			mpos := g.tileMap.Get(m)
			if mpos == nil || leaderPos == nil {
				continue
			}
			if float32(components.ChebyshevDistance(*leaderPos, *mpos)) > cohesionRadius {
				g.memberMap.Remove(m)
				continue
			}
			kept = append(kept, m)
		}
		pl.Members = kept

		if len(pl.Members)+1 < minSize {
			g.dissolve(pl.Members, leader)
		}
	}
}

func (g *GroupsSystem) speciesOf(e ecs.Entity) components.SpeciesID {
	if agent := g.agentMap.Get(e); agent != nil {
		return agent.Species
	}
	return ""
}

// dissolve removes PackLeader from leader and PackMember from every
// remaining member, returning the whole group to the ungrouped pool.
func (g *GroupsSystem) dissolve(members []ecs.Entity, leader ecs.Entity) {
	if g.leaderMap.Has(leader) {
		g.leaderMap.Remove(leader)
	}
	for _, m := range members {
		if g.memberMap.Has(m) {
			g.memberMap.Remove(m)
		}
	}
}
