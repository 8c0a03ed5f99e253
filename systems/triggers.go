package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
)

// TriggerEmitters runs the event-driven replan triggers each tick, pushing
// into a ReplanQueue. Each emitter uses change detection (a per-entity
// remembered flag, or the queue's own dedupe) and is O(N) worst case.
// Grounded on the teacher's BehaviorSystem threshold checks
// (systems/behavior.go evaluates stats every tick for every organism);
// this version only emits on a transition rather than re-evaluating every
// tick, since replanning here is opt-in via the queue rather than
// unconditional.
type TriggerEmitters struct {
	statMap     *ecs.Map1[components.StatsBundle]
	flagMap     *ecs.Map1[components.ThresholdFlags]
	fearMap     *ecs.Map1[components.FearState]
	idleMap     *ecs.Map1[components.IdleTimer]
	actionMap   *ecs.Map1[components.Action]
	statFilter  *ecs.Filter2[components.StatsBundle, components.ThresholdFlags]
	idleFilter  *ecs.Filter1[components.IdleTimer]
	fearFilter  *ecs.Filter1[components.FearState]

	hungerThreshold float32
	thirstThreshold float32
	fearHighThreshold float32
}

// NewTriggerEmitters builds the emitter set bound to world.
func NewTriggerEmitters(world *ecs.World, hungerThreshold, thirstThreshold, fearHighThreshold float32) *TriggerEmitters {
	return &TriggerEmitters{
		statMap:           ecs.NewMap1[components.StatsBundle](world),
		flagMap:           ecs.NewMap1[components.ThresholdFlags](world),
		fearMap:           ecs.NewMap1[components.FearState](world),
		idleMap:           ecs.NewMap1[components.IdleTimer](world),
		actionMap:         ecs.NewMap1[components.Action](world),
		statFilter:        ecs.NewFilter2[components.StatsBundle, components.ThresholdFlags](world),
		idleFilter:        ecs.NewFilter1[components.IdleTimer](world),
		fearFilter:        ecs.NewFilter1[components.FearState](world),
		hungerThreshold:   hungerThreshold,
		thirstThreshold:   thirstThreshold,
		fearHighThreshold: fearHighThreshold,
	}
}

// RunStatThresholds emits Normal on an upward crossing of hunger/thirst
// past the configured threshold and resets the one-shot flag on a
// downward crossing.
func (t *TriggerEmitters) RunStatThresholds(queue *ReplanQueue) {
	query := t.statFilter.Query()
	for query.Next() {
		e := query.Entity()
		stats, flags := query.Get()

		hungerOver := stats.Hunger.Normalized() >= t.hungerThreshold
		if hungerOver && !flags.HungerOver {
			queue.Push(e, ReplanNormal, "hunger_threshold")
		}
		flags.HungerOver = hungerOver

		thirstOver := stats.Thirst.Normalized() >= t.thirstThreshold
		if thirstOver && !flags.ThirstOver {
			queue.Push(e, ReplanNormal, "thirst_threshold")
		}
		flags.ThirstOver = thirstOver
	}
}

// RunFear emits High whenever a prey agent has nearby predators and a fear
// level above the configured high threshold.
func (t *TriggerEmitters) RunFear(queue *ReplanQueue) {
	query := t.fearFilter.Query()
	for query.Next() {
		e := query.Entity()
		fear := query.Get()
		if fear.NearbyPredators > 0 && fear.Level > t.fearHighThreshold {
			queue.Push(e, ReplanHigh, "fear")
		}
	}
}

// RunLongIdle emits Normal and resets the counter once an idle agent's
// idle duration reaches its threshold (10*wander_radius ticks).
func (t *TriggerEmitters) RunLongIdle(queue *ReplanQueue) {
	query := t.idleFilter.Query()
	for query.Next() {
		e := query.Entity()
		idle := query.Get()
		if t.actionMap.Has(e) {
			idle.Ticks = 0
			continue
		}
		idle.Ticks++
		if idle.Threshold > 0 && idle.Ticks >= idle.Threshold {
			queue.Push(e, ReplanNormal, "long_idle")
			idle.Ticks = 0
		}
	}
}

// EmitActionCompletion is called directly by the action lifecycle system
// when an action resolves (Success or Failed), rather than being polled —
// it is a point-in-time event, not a state to scan for.
func EmitActionCompletion(queue *ReplanQueue, e ecs.Entity) {
	queue.Push(e, ReplanNormal, "action_completed")
}

// Prune discards any queued entity that no longer exists in the world, so
// stale entries never accumulate.
func (t *TriggerEmitters) Prune(queue *ReplanQueue, world *ecs.World) {
	for e := range queue.inLane {
		if !world.Alive(e) {
			queue.Discard(e)
		}
	}
}
