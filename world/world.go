// Package world assembles every system in systems/ into the per-tick
// pipeline: tick clock -> trigger emitters -> replan drain -> species
// planner -> action dispatch -> pathfinding worker -> movement ->
// vegetation events -> reproduction/fear/groups -> hunting reconcile ->
// vitals. Completion events are pushed to the replan queue by the action
// system as each action resolves and are drained on the next tick.
// Grounded on the teacher's Game struct (game/game.go, game/lifecycle.go):
// one struct owning the ecs.World and every system, a single Update/Step
// entry point, and a seed/spawn helper mirroring the teacher's
// seedUniverse. The teacher's package is named `game`; this one is named
// `world` since there is no render loop here — only the simulated world
// itself.
package world

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
	"github.com/jeanfbrito/ecosim-core/config"
	"github.com/jeanfbrito/ecosim-core/species"
	"github.com/jeanfbrito/ecosim-core/systems"
)

// World owns the ecs.World and every system that operates on it, wiring
// them into a fixed per-tick order. Nothing outside this package
// constructs systems directly.
type World struct {
	ECS      *ecs.World
	Registry *species.Registry
	Loader   systems.WorldLoader
	Cfg      *config.Config
	RNG      *rand.Rand

	Clock    *systems.TickClock
	Spatial  *systems.SpatialIndex
	Grid     *systems.PathGrid
	Regions  *systems.RegionMap
	PathQ    *systems.PathQueue
	Veg      *systems.VegetationGrid
	Replan   *systems.ReplanQueue
	Triggers *systems.TriggerEmitters
	Planner  *systems.Planner
	Movement *systems.MovementSystem
	Actions  *systems.ActionSystem
	Hunting  *systems.HuntingRelationships
	Vitals   *systems.VitalsSystem
	Fear     *systems.FearSystem
	Groups   *systems.GroupsSystem
	Repro    *systems.ReproductionSystem

	view systems.WorldView

	agentMapper *ecs.Map5[components.Agent, components.TilePosition, components.StatsBundle, components.Sex, components.Age]
	idleMap     *ecs.Map1[components.IdleTimer]
	agentMap    *ecs.Map1[components.Agent]
	fearMap     *ecs.Map1[components.FearState]

	nextAgentID uint32
}

// New builds a World from cfg, a populated species registry, and a world
// loader supplying terrain. seed drives every RNG the core uses
// (sampled foraging and wander direction in the species evaluators,
// vegetation noise, spawn placement, offspring sex) so a run is
// reproducible given the same seed and inputs.
func New(cfg *config.Config, registry *species.Registry, loader systems.WorldLoader, seed int64) *World {
	ecsWorld := ecs.NewWorld()
	rng := rand.New(rand.NewSource(seed))

	grid := systems.NewPathGrid()
	regions := systems.NewRegionMap()
	spatial := systems.NewSpatialIndex(int32(cfg.Spatial.ChunkSize), cfg.Spatial.MaxQueryResults)
	veg := systems.NewVegetationGrid(cfg.Vegetation, loader, seed)
	pathQ := systems.NewPathQueue(grid, regions, &ecsWorld, cfg.Pathfinding.MaxIterations)
	replan := systems.NewReplanQueue()
	hunting := systems.NewHuntingRelationships(&ecsWorld)
	movement := systems.NewMovementSystem(&ecsWorld, spatial)
	view := systems.WorldView{Grid: grid, Spatial: spatial}

	w := &World{
		ECS:      &ecsWorld,
		Registry: registry,
		Loader:   loader,
		Cfg:      cfg,
		RNG:      rng,
		Clock:    systems.NewTickClock(cfg.Derived.TickPeriod, cfg.Tick.MaxTicksPerFrame),
		Spatial:  spatial,
		Grid:     grid,
		Regions:  regions,
		PathQ:    pathQ,
		Veg:      veg,
		Replan:   replan,
		Triggers: systems.NewTriggerEmitters(&ecsWorld, float32(cfg.Planner.EmergencyHungerThreshold), float32(cfg.Planner.EmergencyThirstThreshold), float32(cfg.Fear.HighThreshold)),
		Movement: movement,
		Hunting:  hunting,
		Vitals:   systems.NewVitalsSystem(&ecsWorld, spatial, hunting),
		Fear:     systems.NewFearSystem(&ecsWorld, spatial, cfg.Fear),
		Groups:   systems.NewGroupsSystem(&ecsWorld, registry, spatial),
		view:     view,

		agentMapper: ecs.NewMap5[components.Agent, components.TilePosition, components.StatsBundle, components.Sex, components.Age](&ecsWorld),
		idleMap:     ecs.NewMap1[components.IdleTimer](&ecsWorld),
		agentMap:    ecs.NewMap1[components.Agent](&ecsWorld),
		fearMap:     ecs.NewMap1[components.FearState](&ecsWorld),
	}

	w.Actions = systems.NewActionSystem(&ecsWorld, registry, pathQ, movement, veg, hunting, replan, cfg.Pathfinding)
	w.Planner = systems.NewPlanner(&ecsWorld, registry, view, veg, cfg.Planner, rng)
	w.Repro = systems.NewReproductionSystem(&ecsWorld, registry, spatial, rng, w.spawnOffspring)

	return w
}

// BuildRegions seeds the pathfinding grid's walkability from the loader
// over every tile in tiles and rebuilds the region map from it; regions
// are built once at startup from the grid. Call once before the first
// tick; call again with a fresh RegionMap only if terrain changes at
// runtime.
func (w *World) BuildRegions(tiles []components.TilePosition) {
	for _, t := range tiles {
		class, _, ok := w.Loader.TerrainAt(t)
		if !ok {
			continue
		}
		if isImpassable(class) {
			w.Grid.SetCost(t, systems.Impassable)
		}
	}
	w.Regions.BuildFromTiles(w.Grid, tiles)
}

func isImpassable(class string) bool {
	switch class {
	case "water", "rock", "cliff":
		return true
	default:
		return false
	}
}

// SpawnAgent creates a fully-formed adult agent of the given species at
// tile, with the species registry's StatsBundle initializing current
// values and per-tick drifts. Used both by startup spawn groups and
// directly by callers seeding scripted scenarios.
func (w *World) SpawnAgent(id components.SpeciesID, tile components.TilePosition, sex components.Sex) (ecs.Entity, bool) {
	def, ok := w.Registry.Get(id)
	if !ok {
		return ecs.Entity{}, false
	}

	w.nextAgentID++
	agent := components.Agent{ID: w.nextAgentID, Species: id, Class: def.Class}
	stats := def.Stats
	age := components.Age{TicksAlive: uint64(def.Reproduction.MaturityAgeTicks), MatureAtTicks: def.Reproduction.MaturityAgeTicks}

	e := w.agentMapper.NewEntity(&agent, &tile, &stats, &sex, &age)

	w.Spatial.Insert(e, tile, def.Class)
	w.Movement.Ensure(e)

	threshold := uint32(10 * def.Behavior.WanderRadius)
	if threshold == 0 {
		threshold = 50
	}
	w.idleMap.Add(e, &components.IdleTimer{Threshold: threshold})

	return e, true
}

// spawnOffspring implements systems.EntitySpawner: a juvenile born at
// tile with age zero, used by the reproduction system's birth pass. Sex
// is drawn at random from the world's RNG.
func (w *World) spawnOffspring(id components.SpeciesID, tile components.TilePosition, parent ecs.Entity, tick uint64) ecs.Entity {
	def, ok := w.Registry.Get(id)
	if !ok {
		def = species.Definition{Stats: components.StatsBundle{}}
	}

	sex := components.SexMale
	if w.RNG.Intn(2) == 0 {
		sex = components.SexFemale
	}

	w.nextAgentID++
	agent := components.Agent{ID: w.nextAgentID, Species: id, Class: def.Class}
	stats := def.Stats
	age := components.Age{TicksAlive: 0, MatureAtTicks: def.Reproduction.MaturityAgeTicks}

	e := w.agentMapper.NewEntity(&agent, &tile, &stats, &sex, &age)
	w.Spatial.Insert(e, tile, def.Class)
	w.Movement.Ensure(e)

	threshold := uint32(10 * def.Behavior.WanderRadius)
	if threshold == 0 {
		threshold = 50
	}
	w.idleMap.Add(e, &components.IdleTimer{Threshold: threshold})

	return e
}

// SpawnFromDocument creates every spawn group in doc, the startup
// population manifest, searching within each group's SpawnArea for a
// walkable tile and retrying up to MaxAttempts times per agent before
// giving up on that one agent. Unknown species IDs or areas that never
// yield a walkable tile are skipped rather than aborting the whole
// document, since a single bad group shouldn't prevent the rest of the
// population from spawning.
func (w *World) SpawnFromDocument(doc *config.SpawnDocument, tick uint64) {
	for _, group := range doc.SpawnGroups {
		id := components.SpeciesID(group.Species)
		if _, ok := w.Registry.Get(id); !ok {
			continue
		}
		for i := 0; i < group.Count; i++ {
			tile, ok := w.findSpawnTile(group.SpawnArea)
			if !ok {
				continue
			}
			sex := components.SexMale
			if i < len(group.SexSequence) && group.SexSequence[i] == "female" {
				sex = components.SexFemale
			} else if len(group.SexSequence) == 0 && w.RNG.Intn(2) == 0 {
				sex = components.SexFemale
			}
			w.SpawnAgent(id, tile, sex)
		}
	}
}

// findSpawnTile samples random tiles within area's search radius, up to
// MaxAttempts times, returning the first walkable one found.
func (w *World) findSpawnTile(area config.SpawnArea) (components.TilePosition, bool) {
	center := components.TilePosition{X: int32(area.Center[0]), Y: int32(area.Center[1])}
	radius := area.SearchRadius
	if radius <= 0 {
		radius = 1
	}
	attempts := area.MaxAttempts
	if attempts <= 0 {
		attempts = 20
	}
	for i := 0; i < attempts; i++ {
		dx := w.RNG.Intn(2*radius+1) - radius
		dy := w.RNG.Intn(2*radius+1) - radius
		candidate := components.TilePosition{X: center.X + int32(dx), Y: center.Y + int32(dy)}
		if w.Grid.IsWalkable(candidate) {
			return candidate, true
		}
	}
	return components.TilePosition{}, false
}

// ageAgents advances every agent's Age.TicksAlive by one. A small pass the
// teacher doesn't have an equivalent of (its organisms don't mature by
// tick count); kept inline in Tick rather than its own system file since
// it is a single field bump with no other state.
func (w *World) ageAgents() {
	filter := ecs.NewFilter1[components.Age](w.ECS)
	query := filter.Query()
	for query.Next() {
		age := query.Get()
		age.TicksAlive++
	}
}

// mateMatchIntervalTicks gates how often ReproductionSystem.MatchMates
// scans for new pairings, for every species alike: the per-species
// ReproductionConfig.MatchingIntervalTicks is not read. The value
// mirrors the teacher's BreedingSystem cadence (checked every 50 ticks in
// game/breeding.go).
const mateMatchIntervalTicks = 50

// Tick runs exactly one simulation step in the fixed pipeline order,
// stamped with the given tick number. Callers drive this directly (in tests and
// scripted scenarios) or indirectly through Advance. tick is supplied by
// the caller rather than read from the clock because TickClock.Accumulate
// already advances CurrentTick for every tick it produces before any of
// those ticks actually run.
func (w *World) Tick(tick uint64) {
	w.Triggers.RunStatThresholds(w.Replan)
	w.Triggers.RunFear(w.Replan)
	w.Triggers.RunLongIdle(w.Replan)
	w.Triggers.Prune(w.Replan, w.ECS)

	entries := w.Replan.Drain(w.Cfg.Replan.DrainBudget)
	w.Planner.Run(tick, entries)

	w.Actions.Update(tick)

	w.PathQ.ServiceTick(tick, w.Cfg.Pathfinding.RequestsPerTick)

	w.Movement.Update(w.cadenceFor)

	w.Veg.Update(tick, w.RNG)

	w.ageAgents()
	w.Repro.UpdateWellFed()
	w.Repro.TickCooldowns()
	if tick%mateMatchIntervalTicks == 0 {
		w.Repro.MatchMates(tick)
	}
	w.Repro.AdvancePregnancies(tick)

	w.Fear.Update()

	if tick%uint64(w.Cfg.Groups.CheckIntervalTicks) == 0 {
		w.Groups.FormGroups(tick)
		w.Groups.Cohesion()
	}

	w.Hunting.Reconcile(w.ECS)
	w.Vitals.Update()
}

// cadenceFor returns e's species-specific ticks-per-move, shortened by
// its current fear speed boost if any. Shared by the
// movement system's per-waypoint step so a fleeing prey speeds up for
// every step of its path, not just the first.
func (w *World) cadenceFor(e ecs.Entity) int32 {
	agent := w.agentMap.Get(e)
	if agent == nil {
		return 1
	}
	def, ok := w.Registry.Get(agent.Species)
	if !ok {
		return 1
	}
	cadence := def.Behavior.TicksPerMove
	if cadence <= 0 {
		cadence = 1
	}

	if fear := w.fearMap.Get(e); fear != nil {
		boost := systems.SpeedBoost(*fear, w.Cfg.Fear.MaxSpeedBoost)
		if boost > 1 {
			cadence = int32(float32(cadence) / boost)
			if cadence < 1 {
				cadence = 1
			}
		}
	}
	return cadence
}

// Advance feeds deltaRealTime into the tick clock and runs Tick once per
// tick the clock produces: multiple ticks may be produced per real frame
// at high speeds, each running one system pass. Returns the number of
// ticks run.
func (w *World) Advance(deltaRealTime float64) int {
	startTick := w.Clock.CurrentTick
	produced := w.Clock.Accumulate(deltaRealTime)
	for i := 1; i <= produced; i++ {
		w.Tick(startTick + uint64(i))
	}
	return produced
}
