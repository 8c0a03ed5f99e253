package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
)

// pathQueueEntry is the bookkeeping record behind a queued request. The
// RequestID lets the worker detect a request that was superseded or
// canceled after being queued but before being serviced.
type pathQueueEntry struct {
	RequestID int
	Entity    ecs.Entity
	Start     components.TilePosition
	Goal      components.TilePosition
}

// PathQueue is the async pathfinding request queue and worker. A
// planner or action handler calls RequestPath; the worker services up to a
// fixed per-tick budget in priority order (Urgent, Normal, Lazy), writing a
// terminal PathReady or PathFailed component. Grounded on the teacher's
// AStarPlanner (systems/astar.go) for the search itself; the queueing and
// reactive-component protocol is this spec's own, since the teacher
// computes paths synchronously inline rather than through a request queue.
type PathQueue struct {
	grid    *PathGrid
	regions *RegionMap
	search  *AStar

	reqMap    *ecs.Map1[components.PathRequested]
	readyMap  *ecs.Map1[components.PathReady]
	failedMap *ecs.Map1[components.PathFailed]

	urgent []pathQueueEntry
	normal []pathQueueEntry
	lazy   []pathQueueEntry

	nextRequestID int
	maxIterations int
}

// NewPathQueue builds a queue bound to grid/regions and the three terminal
// component maps it writes to.
func NewPathQueue(grid *PathGrid, regions *RegionMap, world *ecs.World, maxIterations int) *PathQueue {
	return &PathQueue{
		grid:          grid,
		regions:       regions,
		search:        NewAStar(grid),
		reqMap:        ecs.NewMap1[components.PathRequested](world),
		readyMap:      ecs.NewMap1[components.PathReady](world),
		failedMap:     ecs.NewMap1[components.PathFailed](world),
		maxIterations: maxIterations,
	}
}

// RequestPath atomically (a) removes any existing PathRequested/PathReady/
// PathFailed on e, (b) pushes a fresh request into the priority queue, and
// (c) attaches a PathRequested component. A second call within the
// same tick supersedes the first: its RequestID makes the old queue entry
// a no-op when the worker reaches it.
func (q *PathQueue) RequestPath(e ecs.Entity, start, goal components.TilePosition, priority components.PathPriority, tick uint64) {
	q.clearResult(e)

	q.nextRequestID++
	id := q.nextRequestID

	entry := pathQueueEntry{RequestID: id, Entity: e, Start: start, Goal: goal}
	switch priority {
	case components.PathPriorityUrgent:
		q.urgent = append(q.urgent, entry)
	case components.PathPriorityNormal:
		q.normal = append(q.normal, entry)
	default:
		q.lazy = append(q.lazy, entry)
	}

	q.reqMap.Add(e, &components.PathRequested{
		RequestID:     uint64(id),
		Goal:          goal,
		Priority:      priority,
		RequestedTick: tick,
	})
}

// Cancel removes e's in-flight request and any unread result. The queue
// entry itself is left in place and skipped
// by the worker once it notices the component is gone or stale — cheaper
// than scanning three slices to splice it out.
func (q *PathQueue) Cancel(e ecs.Entity) {
	q.clearResult(e)
	if q.reqMap.Has(e) {
		q.reqMap.Remove(e)
	}
}

func (q *PathQueue) clearResult(e ecs.Entity) {
	if q.reqMap.Has(e) {
		q.reqMap.Remove(e)
	}
	if q.readyMap.Has(e) {
		q.readyMap.Remove(e)
	}
	if q.failedMap.Has(e) {
		q.failedMap.Remove(e)
	}
}

// ServiceTick pops up to budget requests in priority order (Urgent first,
// then Normal, then Lazy) and resolves each: a region-map precheck rejects
// unreachable goals without running A*, otherwise the octile A*
// search runs and writes PathReady or PathFailed.
func (q *PathQueue) ServiceTick(tick uint64, budget int) {
	serviced := 0
	serviced = q.drainLane(&q.urgent, tick, budget, serviced)
	serviced = q.drainLane(&q.normal, tick, budget, serviced)
	q.drainLane(&q.lazy, tick, budget, serviced)
}

func (q *PathQueue) drainLane(lane *[]pathQueueEntry, tick uint64, budget, serviced int) int {
	l := *lane
	i := 0
	for i < len(l) && serviced < budget {
		entry := l[i]
		i++
		if !q.stillLive(entry) {
			continue
		}
		q.resolve(entry, tick)
		serviced++
	}
	*lane = l[i:]
	return serviced
}

// stillLive reports whether entry is still the entity's current request —
// false if it was canceled or superseded since being queued.
func (q *PathQueue) stillLive(entry pathQueueEntry) bool {
	req := q.reqMap.Get(entry.Entity)
	return req != nil && req.RequestID == uint64(entry.RequestID)
}

func (q *PathQueue) resolve(entry pathQueueEntry, tick uint64) {
	if !q.regions.AreConnected(entry.Start, entry.Goal) {
		q.failedMap.Add(entry.Entity, &components.PathFailed{Reason: components.PathFailureUnreachable})
		q.reqMap.Remove(entry.Entity)
		return
	}

	path, cost, ok := q.search.FindPath(entry.Start, entry.Goal, q.maxIterations)
	if !ok {
		q.failedMap.Add(entry.Entity, &components.PathFailed{Reason: components.PathFailureNoPath})
		q.reqMap.Remove(entry.Entity)
		return
	}

	q.readyMap.Add(entry.Entity, &components.PathReady{
		Path:         path,
		ComputedTick: tick,
		Cost:         float32(cost),
	})
	q.reqMap.Remove(entry.Entity)
}

// Ready reports e's PathReady result, if any. Consumers must call
// ConsumeReady once they've read it.
func (q *PathQueue) Ready(e ecs.Entity) (*components.PathReady, bool) {
	r := q.readyMap.Get(e)
	return r, r != nil
}

// ConsumeReady removes e's PathReady component.
func (q *PathQueue) ConsumeReady(e ecs.Entity) {
	if q.readyMap.Has(e) {
		q.readyMap.Remove(e)
	}
}

// Failed reports e's PathFailed result, if any.
func (q *PathQueue) Failed(e ecs.Entity) (*components.PathFailed, bool) {
	f := q.failedMap.Get(e)
	return f, f != nil
}

// ConsumeFailed removes e's PathFailed component.
func (q *PathQueue) ConsumeFailed(e ecs.Entity) {
	if q.failedMap.Has(e) {
		q.failedMap.Remove(e)
	}
}

// HasRequest reports whether e currently has an in-flight PathRequested.
func (q *PathQueue) HasRequest(e ecs.Entity) bool {
	return q.reqMap.Has(e)
}

// Pending reports the total number of entries still queued across all
// lanes (including stale ones not yet pruned), used by tests and the
// performance observation surface.
func (q *PathQueue) Pending() int {
	return len(q.urgent) + len(q.normal) + len(q.lazy)
}
