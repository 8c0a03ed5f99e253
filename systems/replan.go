package systems

import "github.com/mlange-42/ark/ecs"

// ReplanPriority is the two-lane priority used by the replan queue.
type ReplanPriority uint8

const (
	ReplanHigh ReplanPriority = iota
	ReplanNormal
)

// replanEntry is one queued replan request.
type replanEntry struct {
	Entity ecs.Entity
	Reason string
}

// ReplanQueue is the event-driven replanning queue: two priority lanes,
// deduplicated per entity, drained by a fixed per-tick budget into the
// list of entries the species planner runs on. Grounded on the teacher's
// lack of an equivalent (the teacher's BehaviorSystem re-evaluates every
// organism every tick); this queue bounds planner work to only entities
// with a reason to replan.
type ReplanQueue struct {
	high   []replanEntry
	normal []replanEntry
	inLane map[ecs.Entity]ReplanPriority // dedupe set: entity -> lane it's queued in
}

// NewReplanQueue creates an empty queue.
func NewReplanQueue() *ReplanQueue {
	return &ReplanQueue{inLane: make(map[ecs.Entity]ReplanPriority)}
}

// Push enqueues e at priority with reason. Deduplication: if e is already
// queued in either lane, this call is a no-op and the entity's existing
// lane is kept. Returns true if inserted.
func (q *ReplanQueue) Push(e ecs.Entity, priority ReplanPriority, reason string) bool {
	if _, queued := q.inLane[e]; queued {
		return false
	}
	q.inLane[e] = priority
	entry := replanEntry{Entity: e, Reason: reason}
	if priority == ReplanHigh {
		q.high = append(q.high, entry)
	} else {
		q.normal = append(q.normal, entry)
	}
	return true
}

// Len returns the total number of entities currently queued across both
// lanes.
func (q *ReplanQueue) Len() int {
	return len(q.inLane)
}

// Drain removes up to budget entries in priority order (every High entry
// before every Normal entry) and returns them, clearing each drained
// entity's dedupe-set membership so a future Push for it succeeds again.
func (q *ReplanQueue) Drain(budget int) []replanEntry {
	var out []replanEntry
	for budget > 0 && len(q.high) > 0 {
		out = append(out, q.high[0])
		delete(q.inLane, q.high[0].Entity)
		q.high = q.high[1:]
		budget--
	}
	for budget > 0 && len(q.normal) > 0 {
		out = append(out, q.normal[0])
		delete(q.inLane, q.normal[0].Entity)
		q.normal = q.normal[1:]
		budget--
	}
	return out
}

// Discard removes e from the queue and dedupe set without it ever being
// drained — used for lazy cleanup when an entity is found to no longer
// exist, so stale entries never accumulate.
func (q *ReplanQueue) Discard(e ecs.Entity) {
	priority, queued := q.inLane[e]
	if !queued {
		return
	}
	delete(q.inLane, e)
	if priority == ReplanHigh {
		q.high = removeEntity(q.high, e)
	} else {
		q.normal = removeEntity(q.normal, e)
	}
}

func removeEntity(lane []replanEntry, e ecs.Entity) []replanEntry {
	for i, entry := range lane {
		if entry.Entity == e {
			return append(lane[:i], lane[i+1:]...)
		}
	}
	return lane
}
