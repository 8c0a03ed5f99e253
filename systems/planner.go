package systems

import (
	"math/rand"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
	"github.com/jeanfbrito/ecosim-core/config"
	"github.com/jeanfbrito/ecosim-core/species"
)

// Planner is the per-species utility action planner. It runs only for
// the entries the ReplanQueue drained this tick —
// budget control comes from the replan queue, not from the planner
// itself. Grounded on the teacher's BehaviorSystem
// (systems/behavior.go) for the "gather candidates, score, pick one"
// shape, generalized from a fixed neural-network action space to the
// spec's utility-scored candidate list with emergency overrides and
// failure cooldowns, which the teacher has no equivalent of.
type Planner struct {
	registry *species.Registry
	view     WorldView
	veg      *VegetationGrid
	world    *ecs.World

	agentMap      *ecs.Map1[components.Agent]
	statsMap      *ecs.Map1[components.StatsBundle]
	fearMap       *ecs.Map1[components.FearState]
	actionMap     *ecs.Map1[components.Action]
	failureMap    *ecs.Map1[components.ActionFailureMemory]
	needsReplan   *ecs.Map1[components.NeedsReplan]
	ageMap        *ecs.Map1[components.Age]
	sexMap        *ecs.Map1[components.Sex]
	parentMap     *ecs.Map1[components.ParentRef]
	activeMateMap *ecs.Map1[components.ActiveMate]
	pregnancyMap  *ecs.Map1[components.Pregnancy]
	idleMap       *ecs.Map1[components.IdleTimer]
	tileMap       *ecs.Map1[components.TilePosition]

	cfg config.PlannerConfig
	rng *rand.Rand
}

// NewPlanner builds a planner bound to registry and the world's component
// maps.
func NewPlanner(world *ecs.World, registry *species.Registry, view WorldView, veg *VegetationGrid, cfg config.PlannerConfig, rng *rand.Rand) *Planner {
	return &Planner{
		registry:      registry,
		view:          view,
		veg:           veg,
		world:         world,
		agentMap:      ecs.NewMap1[components.Agent](world),
		statsMap:      ecs.NewMap1[components.StatsBundle](world),
		fearMap:       ecs.NewMap1[components.FearState](world),
		actionMap:     ecs.NewMap1[components.Action](world),
		failureMap:    ecs.NewMap1[components.ActionFailureMemory](world),
		needsReplan:   ecs.NewMap1[components.NeedsReplan](world),
		ageMap:        ecs.NewMap1[components.Age](world),
		sexMap:        ecs.NewMap1[components.Sex](world),
		parentMap:     ecs.NewMap1[components.ParentRef](world),
		activeMateMap: ecs.NewMap1[components.ActiveMate](world),
		pregnancyMap:  ecs.NewMap1[components.Pregnancy](world),
		idleMap:       ecs.NewMap1[components.IdleTimer](world),
		tileMap:       ecs.NewMap1[components.TilePosition](world),
		cfg:           cfg,
		rng:           rng,
	}
}

// scored pairs a Candidate with its position in evaluation order, used to
// break selection ties by insertion order.
type scored struct {
	species.Candidate
	order int
}

// Run evaluates and dispatches an action for every entity in entries
// (drained from the replan queue this tick).
func (p *Planner) Run(tick uint64, entries []replanEntry) {
	for _, entry := range entries {
		p.planOne(tick, entry.Entity)
	}
}

func (p *Planner) planOne(tick uint64, e ecs.Entity) {
	if p.needsReplan.Has(e) {
		p.needsReplan.Remove(e)
	}
	if !p.world.Alive(e) {
		return
	}

	agent := p.agentMap.Get(e)
	stats := p.statsMap.Get(e)
	tile := p.tileMap.Get(e)
	if agent == nil || stats == nil || tile == nil {
		return
	}
	def, ok := p.registry.Get(agent.Species)
	if !ok {
		return
	}

	var fear components.FearState
	if f := p.fearMap.Get(e); f != nil {
		fear = *f
	}

	ctx := species.EvalContext{
		Self:       e,
		Position:   *tile,
		Stats:      *stats,
		Fear:       fear,
		Behavior:   def.Behavior,
		Needs:      def.Needs,
		Tick:       tick,
		RNG:        p.rng,
		Vegetation: p.veg,
		World:      p.view,
	}

	if age := p.ageMap.Get(e); age != nil {
		ctx.IsJuvenile = !age.IsAdult()
	}
	if parent := p.parentMap.Get(e); parent != nil && ctx.IsJuvenile {
		if sex := p.sexMap.Get(parent.Parent); sex != nil && *sex == components.SexFemale && p.world.Alive(parent.Parent) {
			ctx.HasMother = true
			ctx.MotherEntity = parent.Parent
		}
	}

	candidates := def.Evaluate(ctx)
	candidates = p.appendMateCandidate(e, candidates)

	scoredCands := make([]scored, len(candidates))
	for i, c := range candidates {
		scoredCands[i] = scored{Candidate: c, order: i}
	}

	p.applyEmergencyOverride(stats, scoredCands)
	p.applyFailureCooldown(e, tick, scoredCands)

	filtered := scoredCands[:0]
	for _, c := range scoredCands {
		if c.Utility >= float32(p.cfg.UtilityThreshold) {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return
	}

	best := selectBest(filtered)
	p.dispatch(e, best.Candidate)
}

// appendMateCandidate appends a Mate candidate when the entity has a
// pending mating intent installed by the reproduction system's matching
// pass.
func (p *Planner) appendMateCandidate(e ecs.Entity, candidates []species.Candidate) []species.Candidate {
	mate := p.activeMateMap.Get(e)
	if mate == nil {
		return candidates
	}
	if p.pregnancyMap.Has(e) {
		return candidates
	}
	return append(candidates, species.Candidate{
		Kind:         components.ActionMate,
		TargetEntity: mate.Partner,
		HasEntity:    true,
		TargetTile:   mate.MeetingTile,
		Utility:      0.8,
		Priority:     50,
	})
}

// applyEmergencyOverride applies survival-critical stat overrides in
// place: a stat past its emergency threshold boosts and reprioritizes the
// corresponding candidate, and any emergency suppresses Mate.
func (p *Planner) applyEmergencyOverride(stats *components.StatsBundle, cands []scored) {
	hunger := stats.Hunger.Normalized()
	thirst := stats.Thirst.Normalized()
	energy := stats.Energy.Normalized()

	emergency := false
	priority := p.cfg.EmergencySurvivalPriority

	if hunger >= float32(p.cfg.EmergencyHungerThreshold) {
		emergency = true
		boost(cands, components.ActionGraze, 2.0, priority)
	}
	if thirst >= float32(p.cfg.EmergencyThirstThreshold) {
		emergency = true
		boost(cands, components.ActionDrinkWater, 2.0, priority)
	}
	if energy <= float32(p.cfg.EmergencyEnergyThreshold) {
		emergency = true
		boost(cands, components.ActionRest, 1.5, priority)
	}
	if emergency {
		for i := range cands {
			if cands[i].Kind == components.ActionMate {
				cands[i].Utility *= 0.1
				cands[i].Priority = 0
			}
		}
	}
}

func boost(cands []scored, kind components.ActionKind, multiplier float32, priority int) {
	for i := range cands {
		if cands[i].Kind == kind {
			cands[i].Utility *= multiplier
			if cands[i].Utility > 1 {
				cands[i].Utility = 1
			}
			cands[i].Priority = priority
		}
	}
}

// applyFailureCooldown penalizes candidates whose key is within the
// failure-cooldown window in the entity's failure memory.
func (p *Planner) applyFailureCooldown(e ecs.Entity, tick uint64, cands []scored) {
	mem := p.failureMap.Get(e)
	if mem == nil || mem.Failures == nil {
		return
	}
	window := p.cfg.FailureCooldownTicks
	mult := float32(p.cfg.FailureCooldownMultiplier)
	for i := range cands {
		key := candidateKey(cands[i].Candidate)
		lastFail, failed := mem.Failures[key]
		if failed && tick-lastFail < window {
			cands[i].Utility *= mult
		}
	}
}

// candidateKey mirrors components.Action.Key()'s format for a not-yet-
// dispatched candidate.
func candidateKey(c species.Candidate) string {
	a := components.Action{Kind: c.Kind, TargetTile: c.TargetTile, TargetEntity: c.TargetEntity, HasEntity: c.HasEntity}
	return a.Key()
}

// selectBest picks the candidate with the largest (priority, utility)
// lexicographic key, ties broken by insertion order.
func selectBest(cands []scored) scored {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Priority != cands[j].Priority {
			return cands[i].Priority > cands[j].Priority
		}
		if cands[i].Utility != cands[j].Utility {
			return cands[i].Utility > cands[j].Utility
		}
		return cands[i].order < cands[j].order
	})
	return cands[0]
}

// dispatch installs the selected candidate as a fresh Queued Action,
// resetting the idle timer.
func (p *Planner) dispatch(e ecs.Entity, c species.Candidate) {
	if p.idleMap.Has(e) {
		p.idleMap.Get(e).Ticks = 0
	}
	action := components.Action{
		Kind:         c.Kind,
		State:        components.ActionQueued,
		TargetTile:   c.TargetTile,
		TargetEntity: c.TargetEntity,
		HasEntity:    c.HasEntity,
	}
	if p.actionMap.Has(e) {
		*p.actionMap.Get(e) = action
	} else {
		p.actionMap.Add(e, &action)
	}
}
