package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
	"github.com/jeanfbrito/ecosim-core/species"
)

// ReproductionSystem drives mating/pregnancy/birth. Grounded on the
// teacher's BreedingSystem (systems/breeding.go) for the "collect eligible
// candidates this tick, then greedily pair them" shape; generalized from
// the teacher's NEAT-genome sexual/asexual cloning to the spec's
// species-registry litter model (gestation countdown, fixed litter size
// range, no genetic material), which the teacher has no equivalent of.
type ReproductionSystem struct {
	world    *ecs.World
	registry *species.Registry
	spatial  *SpatialIndex
	rng      *rand.Rand

	agentMap      *ecs.Map1[components.Agent]
	tileMap       *ecs.Map1[components.TilePosition]
	statsMap      *ecs.Map1[components.StatsBundle]
	sexMap        *ecs.Map1[components.Sex]
	ageMap        *ecs.Map1[components.Age]
	cooldownMap   *ecs.Map1[components.ReproductionCooldown]
	pregnancyMap  *ecs.Map1[components.Pregnancy]
	wellFedMap    *ecs.Map1[components.WellFedStreak]
	activeMateMap *ecs.Map1[components.ActiveMate]
	matingTarget  *ecs.Map1[components.MatingTarget]
	parentMap     *ecs.Map1[components.ParentRef]
	childrenMap   *ecs.Map1[components.Children]
	birthMap      *ecs.Map1[components.BirthInfo]

	eligibleFilter *ecs.Filter5[components.Agent, components.TilePosition, components.StatsBundle, components.Sex, components.Age]
	pregnantFilter *ecs.Filter1[components.Pregnancy]
	cooldownFilter *ecs.Filter1[components.ReproductionCooldown]
	wellFedFilter  *ecs.Filter2[components.StatsBundle, components.WellFedStreak]

	spawner EntitySpawner
}

// EntitySpawner creates a fully-formed juvenile entity at a tile, mirroring
// whatever spawn helper the top-level world package uses for adults
// (kept as an injected function rather than importing the world package,
// avoiding an import cycle).
type EntitySpawner func(species components.SpeciesID, tile components.TilePosition, parent ecs.Entity, tick uint64) ecs.Entity

// NewReproductionSystem builds a reproduction system. spawner is called
// once per offspring at birth.
func NewReproductionSystem(world *ecs.World, registry *species.Registry, spatial *SpatialIndex, rng *rand.Rand, spawner EntitySpawner) *ReproductionSystem {
	return &ReproductionSystem{
		world:          world,
		registry:       registry,
		spatial:        spatial,
		rng:            rng,
		agentMap:       ecs.NewMap1[components.Agent](world),
		tileMap:        ecs.NewMap1[components.TilePosition](world),
		statsMap:       ecs.NewMap1[components.StatsBundle](world),
		sexMap:         ecs.NewMap1[components.Sex](world),
		ageMap:         ecs.NewMap1[components.Age](world),
		cooldownMap:    ecs.NewMap1[components.ReproductionCooldown](world),
		pregnancyMap:   ecs.NewMap1[components.Pregnancy](world),
		wellFedMap:     ecs.NewMap1[components.WellFedStreak](world),
		activeMateMap:  ecs.NewMap1[components.ActiveMate](world),
		matingTarget:   ecs.NewMap1[components.MatingTarget](world),
		parentMap:      ecs.NewMap1[components.ParentRef](world),
		childrenMap:    ecs.NewMap1[components.Children](world),
		birthMap:       ecs.NewMap1[components.BirthInfo](world),
		eligibleFilter: ecs.NewFilter5[components.Agent, components.TilePosition, components.StatsBundle, components.Sex, components.Age](world),
		pregnantFilter: ecs.NewFilter1[components.Pregnancy](world),
		cooldownFilter: ecs.NewFilter1[components.ReproductionCooldown](world),
		wellFedFilter:  ecs.NewFilter2[components.StatsBundle, components.WellFedStreak](world),
		spawner:        spawner,
	}
}

// UpdateWellFed increments or resets each agent's WellFedStreak every tick
// (GLOSSARY "well-fed"), installing the component lazily on first qualifying
// tick.
func (r *ReproductionSystem) UpdateWellFed() {
	query := r.eligibleFilter.Query()
	for query.Next() {
		e := query.Entity()
		agent, _, stats, _, _ := query.Get()
		def, ok := r.registry.Get(agent.Species)
		if !ok {
			continue
		}
		wellFed := stats.Hunger.Normalized() <= def.Behavior.WellFedHungerNorm &&
			stats.Thirst.Normalized() <= def.Behavior.WellFedThirstNorm
		streak := r.wellFedMap.Get(e)
		if streak == nil {
			r.wellFedMap.Add(e, &components.WellFedStreak{})
			streak = r.wellFedMap.Get(e)
		}
		if wellFed {
			streak.Ticks++
		} else {
			streak.Ticks = 0
		}
	}
}

// TickCooldowns decrements every active ReproductionCooldown, removing it
// once it reaches zero.
func (r *ReproductionSystem) TickCooldowns() {
	query := r.cooldownFilter.Query()
	var expired []ecs.Entity
	for query.Next() {
		e := query.Entity()
		cd := query.Get()
		if cd.RemainingTicks <= 1 {
			expired = append(expired, e)
			continue
		}
		cd.RemainingTicks--
	}
	for _, e := range expired {
		r.cooldownMap.Remove(e)
	}
}

// MatchMates is called by world.Tick every 50 ticks for all species; the
// per-species MatchingIntervalTicks is not consulted. It runs a greedy
// nearest-eligible-pair search within each species'
// MatingSearchRadius, installing the bidirectional ActiveMate/MatingTarget
// pair and a shared meeting tile.
func (r *ReproductionSystem) MatchMates(tick uint64) {
	type candidate struct {
		entity  ecs.Entity
		pos     components.TilePosition
		species components.SpeciesID
	}

	var males, females []candidate

	query := r.eligibleFilter.Query()
	for query.Next() {
		e := query.Entity()
		agent, tile, stats, sex, age := query.Get()
		if r.activeMateMap.Has(e) || r.matingTarget.Has(e) || r.pregnancyMap.Has(e) {
			continue
		}
		def, ok := r.registry.Get(agent.Species)
		if !ok {
			continue
		}
		var cooldown components.ReproductionCooldown
		if cd := r.cooldownMap.Get(e); cd != nil {
			cooldown = *cd
		}
		var wellFed components.WellFedStreak
		if w := r.wellFedMap.Get(e); w != nil {
			wellFed = *w
		}
		if !components.IsEligible(def.Reproduction, *age, cooldown, *stats, wellFed, false) {
			continue
		}
		c := candidate{entity: e, pos: *tile, species: agent.Species}
		if *sex == components.SexMale {
			males = append(males, c)
		} else {
			females = append(females, c)
		}
	}

	taken := make(map[ecs.Entity]bool, len(males))
	for _, f := range females {
		def, ok := r.registry.Get(f.species)
		if !ok {
			continue
		}
		radius := def.Reproduction.MatingSearchRadius
		if radius <= 0 {
			radius = 10
		}

		best := -1
		bestDist := int32(1 << 30)
		for i, m := range males {
			if taken[m.entity] || m.species != f.species {
				continue
			}
			d := components.ChebyshevDistance(f.pos, m.pos)
			if float32(d) > radius {
				continue
			}
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		if best < 0 {
			continue
		}
		m := males[best]
		taken[m.entity] = true

		meeting := midpoint(f.pos, m.pos)
		r.activeMateMap.Add(f.entity, &components.ActiveMate{Partner: m.entity, MeetingTile: meeting, StartedTick: tick})
		r.matingTarget.Add(m.entity, &components.MatingTarget{Partner: f.entity, StartedTick: tick})
		r.activeMateMap.Add(m.entity, &components.ActiveMate{Partner: f.entity, MeetingTile: meeting, StartedTick: tick})
		r.matingTarget.Add(f.entity, &components.MatingTarget{Partner: m.entity, StartedTick: tick})
	}
}

func midpoint(a, b components.TilePosition) components.TilePosition {
	return components.TilePosition{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// AdvancePregnancies decrements gestation and spawns a litter once it
// reaches term.
func (r *ReproductionSystem) AdvancePregnancies(tick uint64) {
	query := r.pregnantFilter.Query()
	type due struct {
		mother ecs.Entity
		preg   components.Pregnancy
	}
	var term []due
	for query.Next() {
		e := query.Entity()
		preg := query.Get()
		if preg.RemainingTicks <= 1 {
			term = append(term, due{mother: e, preg: *preg})
			continue
		}
		preg.RemainingTicks--
	}
	for _, d := range term {
		r.birth(d.mother, d.preg, tick)
	}
}

func (r *ReproductionSystem) birth(mother ecs.Entity, preg components.Pregnancy, tick uint64) {
	r.pregnancyMap.Remove(mother)
	if !r.world.Alive(mother) {
		return
	}
	tile := r.tileMap.Get(mother)
	if tile == nil {
		return
	}
	agent := r.agentMap.Get(mother)
	if agent == nil {
		return
	}

	var childIDs []ecs.Entity
	litter := preg.LitterSize
	if litter == 0 {
		litter = 1
	}
	for i := uint8(0); i < litter; i++ {
		child := r.spawner(agent.Species, *tile, mother, tick)
		r.parentMap.Add(child, &components.ParentRef{Parent: mother})
		r.birthMap.Add(child, &components.BirthInfo{BornTick: tick})
		childIDs = append(childIDs, child)
	}

	if kids := r.childrenMap.Get(mother); kids != nil {
		kids.IDs = append(kids.IDs, childIDs...)
	} else {
		r.childrenMap.Add(mother, &components.Children{IDs: childIDs})
	}
}
