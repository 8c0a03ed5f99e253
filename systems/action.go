package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
	"github.com/jeanfbrito/ecosim-core/config"
	"github.com/jeanfbrito/ecosim-core/species"
)

// criticalNeedThreshold is the hunger/thirst level at which a non-survival
// action is abandoned in favor of an emergency replan — the critical-needs
// interrupt.
const criticalNeedThreshold = 0.80

// ActionSystem drives the five-state action lifecycle shared by every
// action kind — Queued, NeedPath, WaitingForPath, Moving, Performing — and
// applies each kind's on-site effect once the entity arrives.
// Grounded on the teacher's Game.updateFauna/behavior dispatch
// (game/lifecycle.go, game/factory.go) for "one big per-tick switch over an
// entity's current behavior", generalized from the teacher's handful of
// hardcoded instinct states to the spec's explicit state machine with
// asynchronous pathfinding and retries, which the teacher has no
// equivalent of (its movement is a direct steering force, not a discrete
// path).
type ActionSystem struct {
	world    *ecs.World
	registry *species.Registry
	pathQ    *PathQueue
	movement *MovementSystem
	veg      *VegetationGrid
	hunting  *HuntingRelationships
	replan   *ReplanQueue
	fearMap  *ecs.Map1[components.FearState]

	actionMap    *ecs.Map1[components.Action]
	agentMap     *ecs.Map1[components.Agent]
	tileMap      *ecs.Map1[components.TilePosition]
	statsMap     *ecs.Map1[components.StatsBundle]
	failureMap   *ecs.Map1[components.ActionFailureMemory]
	carcassMap   *ecs.Map1[components.Carcass]
	sexMap       *ecs.Map1[components.Sex]
	pregnancyMap *ecs.Map1[components.Pregnancy]
	cooldownMap  *ecs.Map1[components.ReproductionCooldown]
	activeMateMap *ecs.Map1[components.ActiveMate]
	matingTargetMap *ecs.Map1[components.MatingTarget]
	wellFedMap   *ecs.Map1[components.WellFedStreak]

	carcassMapper *ecs.Map2[components.Carcass, components.TilePosition]

	filter *ecs.Filter3[components.Action, components.Agent, components.TilePosition]

	pathCfg config.PathfindingConfig
}

// NewActionSystem builds an action system bound to every collaborating
// system it needs (pathfinding, movement, vegetation, hunting, replan).
func NewActionSystem(world *ecs.World, registry *species.Registry, pathQ *PathQueue, movement *MovementSystem, veg *VegetationGrid, hunting *HuntingRelationships, replan *ReplanQueue, pathCfg config.PathfindingConfig) *ActionSystem {
	return &ActionSystem{
		world:           world,
		registry:        registry,
		pathQ:           pathQ,
		movement:        movement,
		veg:             veg,
		hunting:         hunting,
		replan:          replan,
		fearMap:         ecs.NewMap1[components.FearState](world),
		actionMap:       ecs.NewMap1[components.Action](world),
		agentMap:        ecs.NewMap1[components.Agent](world),
		tileMap:         ecs.NewMap1[components.TilePosition](world),
		statsMap:        ecs.NewMap1[components.StatsBundle](world),
		failureMap:      ecs.NewMap1[components.ActionFailureMemory](world),
		carcassMap:      ecs.NewMap1[components.Carcass](world),
		sexMap:          ecs.NewMap1[components.Sex](world),
		pregnancyMap:    ecs.NewMap1[components.Pregnancy](world),
		cooldownMap:     ecs.NewMap1[components.ReproductionCooldown](world),
		activeMateMap:   ecs.NewMap1[components.ActiveMate](world),
		matingTargetMap: ecs.NewMap1[components.MatingTarget](world),
		wellFedMap:      ecs.NewMap1[components.WellFedStreak](world),
		carcassMapper:   ecs.NewMap2[components.Carcass, components.TilePosition](world),
		filter:          ecs.NewFilter3[components.Action, components.Agent, components.TilePosition](world),
		pathCfg:         pathCfg,
	}
}

// Update advances every entity with an active Action one step through the
// lifecycle.
func (s *ActionSystem) Update(tick uint64) {
	query := s.filter.Query()
	var entities []ecs.Entity
	for query.Next() {
		entities = append(entities, query.Entity())
	}

	for _, e := range entities {
		if !s.world.Alive(e) || !s.actionMap.Has(e) {
			continue
		}
		s.step(e, tick)
	}
}

func (s *ActionSystem) step(e ecs.Entity, tick uint64) {
	action := s.actionMap.Get(e)
	def, ok := s.registry.Get(s.agentMap.Get(e).Species)
	if !ok {
		return
	}

	if s.interruptForCriticalNeeds(e, action) {
		return
	}

	switch action.State {
	case components.ActionQueued:
		s.handleQueued(e, action, def, tick)
	case components.ActionNeedPath:
		s.handleNeedPath(e, action, tick)
	case components.ActionWaitingForPath:
		s.handleWaitingForPath(e, action, def, tick)
	case components.ActionMoving:
		s.handleMoving(e, action, def, tick)
	case components.ActionPerforming:
		s.handlePerforming(e, action, def, tick)
	}
}

// interruptForCriticalNeeds abandons a non-survival action when hunger or
// thirst crosses the emergency threshold mid-flight, forcing an immediate
// replan.
func (s *ActionSystem) interruptForCriticalNeeds(e ecs.Entity, action *components.Action) bool {
	if isSurvivalAction(action.Kind) {
		return false
	}
	stats := s.statsMap.Get(e)
	if stats == nil {
		return false
	}
	if stats.Hunger.Normalized() < criticalNeedThreshold && stats.Thirst.Normalized() < criticalNeedThreshold {
		return false
	}
	s.abandon(e, action)
	return true
}

func isSurvivalAction(kind components.ActionKind) bool {
	return kind == components.ActionGraze || kind == components.ActionDrinkWater || kind == components.ActionRest
}

// abandon clears the entity's action/movement/path state and requests a
// high-priority replan.
func (s *ActionSystem) abandon(e ecs.Entity, action *components.Action) {
	if action.Kind == components.ActionHunt && action.HasEntity {
		s.hunting.ClearForEntity(s.world, e)
	}
	s.pathQ.Cancel(e)
	s.movement.Stop(e)
	s.actionMap.Remove(e)
	s.replan.Push(e, ReplanHigh, "critical-need-interrupt")
}

func (s *ActionSystem) goalTile(action *components.Action) (components.TilePosition, bool) {
	switch action.Kind {
	case components.ActionMate:
		return action.TargetTile, true
	case components.ActionHunt, components.ActionScavenge, components.ActionFollow:
		if !action.HasEntity {
			return components.TilePosition{}, false
		}
		pos := s.tileMap.Get(action.TargetEntity)
		if pos == nil {
			return components.TilePosition{}, false
		}
		return *pos, true
	default:
		return action.TargetTile, true
	}
}

func arrivalRadius(kind components.ActionKind, b species.BehaviorConfig) int32 {
	switch kind {
	case components.ActionHunt:
		r := b.HuntBiteRange
		if r <= 0 {
			r = 1
		}
		return r
	case components.ActionScavenge:
		r := b.HuntBiteRange
		if r <= 0 {
			r = 1
		}
		return r
	case components.ActionFollow:
		r := int32(b.FollowStopDistance)
		if r <= 0 {
			r = 1
		}
		return r
	default:
		return 0
	}
}

func (s *ActionSystem) handleQueued(e ecs.Entity, action *components.Action, def species.Definition, tick uint64) {
	goal, ok := s.goalTile(action)
	if !ok {
		s.fail(e, action, tick, "missing-target")
		return
	}
	pos := s.tileMap.Get(e)
	if components.ChebyshevDistance(*pos, goal) <= arrivalRadius(action.Kind, def.Behavior) {
		action.State = components.ActionPerforming
		action.ElapsedTicks = 0
		return
	}
	action.State = components.ActionNeedPath
}

func (s *ActionSystem) handleNeedPath(e ecs.Entity, action *components.Action, tick uint64) {
	goal, ok := s.goalTile(action)
	if !ok {
		s.fail(e, action, tick, "missing-target")
		return
	}
	pos := s.tileMap.Get(e)
	priority := components.PathPriorityNormal
	if action.Kind == components.ActionHunt || action.Kind == components.ActionDrinkWater {
		priority = components.PathPriorityUrgent
	}
	s.pathQ.RequestPath(e, *pos, goal, priority, tick)
	action.State = components.ActionWaitingForPath
}

func (s *ActionSystem) handleWaitingForPath(e ecs.Entity, action *components.Action, def species.Definition, tick uint64) {
	if ready, ok := s.pathQ.Ready(e); ok {
		path := ready.Path
		s.pathQ.ConsumeReady(e)
		ticksPerMove := def.Behavior.TicksPerMove
		if ticksPerMove <= 0 {
			ticksPerMove = 1
		}
		if fear := s.fearMap.Get(e); fear != nil {
			boost := SpeedBoost(*fear, 1.5)
			if boost > 1 {
				ticksPerMove = int32(float32(ticksPerMove) / boost)
				if ticksPerMove < 1 {
					ticksPerMove = 1
				}
			}
		}
		s.movement.StartFollowing(e, path, ticksPerMove)
		action.State = components.ActionMoving
		return
	}
	if failed, ok := s.pathQ.Failed(e); ok {
		s.pathQ.ConsumeFailed(e)
		action.Retries++
		if action.Retries <= s.pathCfg.MaxRetries && failed.Reason != components.PathFailureUnreachable {
			action.State = components.ActionNeedPath
			return
		}
		s.fail(e, action, tick, "path-"+failed.Reason.String())
	}
}

func (s *ActionSystem) handleMoving(e ecs.Entity, action *components.Action, def species.Definition, tick uint64) {
	goal, ok := s.goalTile(action)
	if !ok {
		s.fail(e, action, tick, "missing-target")
		return
	}

	// Goal drift: a followed/hunted entity has moved meaningfully since the
	// path was computed. Force a fresh path rather than walking to a stale
	// tile.
	if mc := s.movement.Get(e); mc != nil && len(mc.Path) > 0 {
		lastWaypoint := mc.Path[len(mc.Path)-1]
		if components.ManhattanDistance(lastWaypoint, goal) > 3 {
			action.State = components.ActionNeedPath
			return
		}
	}

	if s.movement.AtGoal(e) {
		pos := s.tileMap.Get(e)
		if components.ChebyshevDistance(*pos, goal) <= arrivalRadius(action.Kind, def.Behavior) {
			action.State = components.ActionPerforming
			action.ElapsedTicks = 0
		} else {
			// Path finished short of the goal (e.g. partial region); retry.
			action.State = components.ActionNeedPath
		}
	}
}

func (s *ActionSystem) handlePerforming(e ecs.Entity, action *components.Action, def species.Definition, tick uint64) {
	action.ElapsedTicks++
	switch action.Kind {
	case components.ActionGraze:
		s.performGraze(e, action, def, tick)
	case components.ActionDrinkWater:
		s.performDrink(e, action, def)
	case components.ActionWander:
		s.complete(e, action)
	case components.ActionHarvest:
		s.performGraze(e, action, def, tick) // harvest degenerates to a graze-like bite at the target tile
	case components.ActionRest:
		s.performRest(e, action, def)
	case components.ActionHunt:
		s.performHunt(e, action, def, tick)
	case components.ActionScavenge:
		s.performScavenge(e, action, def, tick)
	case components.ActionFollow:
		s.complete(e, action)
	case components.ActionMate:
		s.performMate(e, action, def, tick)
	default:
		s.complete(e, action)
	}
}

func (s *ActionSystem) performGraze(e ecs.Entity, action *components.Action, def species.Definition, tick uint64) {
	pos := s.tileMap.Get(e)
	stats := s.statsMap.Get(e)
	mealSize := def.Needs.EatAmount * def.Behavior.MealSizeFraction
	if mealSize <= 0 {
		mealSize = def.Needs.EatAmount
	}
	consumed := s.veg.ConsumeAt(*pos, mealSize, 1.0, tick)
	stats.Hunger.Adjust(-normalizedDelta(consumed, def.Needs.HungerMax))
	s.complete(e, action)
}

// normalizedDelta converts a biomass-scale amount into a [0,1]-scale stat
// delta: Needs.*Max is the biomass amount a fully-satisfied stat represents,
// while StatsBundle fields live in normalized [0,1] space.
func normalizedDelta(amount, scaleMax float32) float32 {
	if scaleMax <= 0 {
		return 0
	}
	return amount / scaleMax
}

func (s *ActionSystem) performDrink(e ecs.Entity, action *components.Action, def species.Definition) {
	stats := s.statsMap.Get(e)
	stats.Thirst.Adjust(-normalizedDelta(def.Needs.DrinkAmount, def.Needs.ThirstMax))
	s.complete(e, action)
}

func (s *ActionSystem) performRest(e ecs.Entity, action *components.Action, def species.Definition) {
	stats := s.statsMap.Get(e)
	boostedRegen := -2 * stats.Energy.Drift // resting reverses and amplifies the normal energy drain
	stats.Energy.Adjust(boostedRegen)

	duration := def.Behavior.RestDurationTicks
	if duration <= 0 {
		duration = 20
	}
	if action.ElapsedTicks >= duration || stats.Energy.Normalized() >= 0.95 {
		s.complete(e, action)
	}
}

func (s *ActionSystem) performHunt(e ecs.Entity, action *components.Action, def species.Definition, tick uint64) {
	if !action.HasEntity || !s.world.Alive(action.TargetEntity) {
		s.hunting.ClearForEntity(s.world, e)
		s.fail(e, action, tick, "prey-gone")
		return
	}
	if !s.hunting.hunterMap.Has(e) {
		s.hunting.Establish(e, action.TargetEntity, tick)
	}

	preyStats := s.statsMap.Get(action.TargetEntity)
	if preyStats == nil {
		s.hunting.Clear(e, action.TargetEntity)
		s.fail(e, action, tick, "prey-invalid")
		return
	}

	const bitePerTick = 0.15
	preyStats.Health.Adjust(-bitePerTick * preyStats.Health.Max)

	if preyStats.Health.Current <= preyStats.Health.Min {
		s.killPrey(e, action.TargetEntity, tick)
		myStats := s.statsMap.Get(e)
		myStats.Hunger.Adjust(-normalizedDelta(def.Needs.EatAmount, def.Needs.HungerMax))
		s.hunting.Clear(e, action.TargetEntity)
		s.complete(e, action)
	}
}

// killPrey despawns prey and spawns a Carcass at its last known tile, the
// Hunt action's on-site kill effect.
func (s *ActionSystem) killPrey(predator, prey ecs.Entity, tick uint64) {
	pos := s.tileMap.Get(prey)
	tile := components.TilePosition{}
	if pos != nil {
		tile = *pos
	}
	var origin components.SpeciesID
	if agent := s.agentMap.Get(prey); agent != nil {
		origin = agent.Species
	}
	var nutrition float32 = 100
	if stats := s.statsMap.Get(prey); stats != nil {
		nutrition = stats.Hunger.Max
	}

	s.carcassMapper.NewEntity(
		&components.Carcass{NutritionRemaining: nutrition, SpawnedTick: tick, SpeciesOrigin: origin},
		&tile,
	)

	s.world.RemoveEntity(prey)
}

func (s *ActionSystem) performScavenge(e ecs.Entity, action *components.Action, def species.Definition, tick uint64) {
	if !action.HasEntity || !s.world.Alive(action.TargetEntity) || !s.carcassMap.Has(action.TargetEntity) {
		s.fail(e, action, tick, "carcass-gone")
		return
	}
	carcass := s.carcassMap.Get(action.TargetEntity)
	mealSize := def.Needs.EatAmount * def.Behavior.MealSizeFraction
	if mealSize <= 0 {
		mealSize = def.Needs.EatAmount
	}
	bite := mealSize
	if bite > carcass.NutritionRemaining {
		bite = carcass.NutritionRemaining
	}
	carcass.NutritionRemaining -= bite

	stats := s.statsMap.Get(e)
	stats.Hunger.Adjust(-normalizedDelta(bite, def.Needs.HungerMax))

	if carcass.NutritionRemaining <= 0 {
		s.world.RemoveEntity(action.TargetEntity)
	}
	s.complete(e, action)
}

func (s *ActionSystem) performMate(e ecs.Entity, action *components.Action, def species.Definition, tick uint64) {
	duration := def.Behavior.MateDurationTicks
	if duration <= 0 {
		duration = 10
	}
	if action.ElapsedTicks < duration {
		return
	}

	partner := action.TargetEntity
	if !action.HasEntity || !s.world.Alive(partner) {
		s.clearMating(e)
		s.fail(e, action, tick, "partner-gone")
		return
	}

	female, male := e, partner
	if sex := s.sexMap.Get(e); sex != nil && *sex == components.SexMale {
		female, male = partner, e
	}

	litter := def.Reproduction.LitterSizeMin
	if def.Reproduction.LitterSizeMax > litter {
		span := def.Reproduction.LitterSizeMax - def.Reproduction.LitterSizeMin
		litter += uint8(int(tick) % (int(span) + 1))
	}

	s.pregnancyMap.Add(female, &components.Pregnancy{
		RemainingTicks: def.Reproduction.GestationTicks,
		LitterSize:     litter,
		Father:         male,
	})
	s.cooldownMap.Add(male, &components.ReproductionCooldown{RemainingTicks: def.Reproduction.MatingCooldownTicks})
	s.cooldownMap.Add(female, &components.ReproductionCooldown{RemainingTicks: def.Reproduction.PostpartumCooldownTicks})

	s.clearMating(e)
	s.clearMating(partner)
	s.complete(e, action)
}

func (s *ActionSystem) clearMating(e ecs.Entity) {
	if partner := s.activeMateMap.Get(e); partner != nil {
		p := partner.Partner
		s.activeMateMap.Remove(e)
		if s.matingTargetMap.Has(p) {
			s.matingTargetMap.Remove(p)
		}
		return
	}
	if rel := s.matingTargetMap.Get(e); rel != nil {
		p := rel.Partner
		s.matingTargetMap.Remove(e)
		if s.activeMateMap.Has(p) {
			s.activeMateMap.Remove(p)
		}
	}
}

// complete clears a successfully finished action and notifies the trigger
// emitters so the entity gets a fresh replan.
func (s *ActionSystem) complete(e ecs.Entity, action *components.Action) {
	s.pathQ.Cancel(e)
	s.movement.Stop(e)
	s.actionMap.Remove(e)
	EmitActionCompletion(s.replan, e)
}

// fail records the failure in the entity's failure memory (for the
// planner's cooldown penalty) and clears the action.
func (s *ActionSystem) fail(e ecs.Entity, action *components.Action, tick uint64, reason string) {
	mem := s.failureMap.Get(e)
	if mem == nil {
		s.failureMap.Add(e, &components.ActionFailureMemory{Failures: map[string]uint64{}})
		mem = s.failureMap.Get(e)
	}
	if mem.Failures == nil {
		mem.Failures = map[string]uint64{}
	}
	mem.Failures[action.Key()] = tick

	if action.Kind == components.ActionHunt {
		s.hunting.ClearForEntity(s.world, e)
	}
	s.pathQ.Cancel(e)
	s.movement.Stop(e)
	s.actionMap.Remove(e)
	EmitActionCompletion(s.replan, e)
}
