package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
)

func newTestPathQueue(t *testing.T) (*PathQueue, *ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	grid := NewPathGrid()
	regions := NewRegionMap()
	tiles := make([]components.TilePosition, 0, 100)
	for y := int32(0); y < 10; y++ {
		for x := int32(0); x < 10; x++ {
			tiles = append(tiles, components.TilePosition{X: x, Y: y})
		}
	}
	regions.BuildFromTiles(grid, tiles)

	q := NewPathQueue(grid, regions, &w, 0)
	mapper := ecs.NewMap1[components.Agent](&w)
	e := mapper.NewEntity(&components.Agent{ID: 1})
	return q, &w, e
}

func TestPathQueueReadyAfterServiceTick(t *testing.T) {
	q, _, e := newTestPathQueue(t)
	start := components.TilePosition{X: 0, Y: 0}
	goal := components.TilePosition{X: 5, Y: 0}

	q.RequestPath(e, start, goal, components.PathPriorityNormal, 1)
	if !q.HasRequest(e) {
		t.Fatal("HasRequest() = false immediately after RequestPath, want true")
	}

	q.ServiceTick(1, 10)

	ready, ok := q.Ready(e)
	if !ok {
		t.Fatal("Ready() = false after ServiceTick, want a resolved path")
	}
	if ready.Path[0] != start || ready.Path[len(ready.Path)-1] != goal {
		t.Errorf("Path = %v, want endpoints %v..%v", ready.Path, start, goal)
	}
	if q.HasRequest(e) {
		t.Error("HasRequest() = true after resolution, want the request cleared")
	}
}

func TestPathQueueUnreachableRejectsWithoutSearch(t *testing.T) {
	q, _, e := newTestPathQueue(t)
	start := components.TilePosition{X: 0, Y: 0}
	// Never added to the region map, so start and goal share no region.
	goal := components.TilePosition{X: 500, Y: 500}

	q.RequestPath(e, start, goal, components.PathPriorityUrgent, 1)
	q.ServiceTick(1, 10)

	failed, ok := q.Failed(e)
	if !ok {
		t.Fatal("Failed() = false for an unreachable goal, want true")
	}
	if failed.Reason != components.PathFailureUnreachable {
		t.Errorf("Reason = %v, want PathFailureUnreachable", failed.Reason)
	}
}

func TestPathQueueServicesUrgentBeforeNormalBeforeLazy(t *testing.T) {
	w := ecs.NewWorld()
	grid := NewPathGrid()
	regions := NewRegionMap()
	var tiles []components.TilePosition
	for y := int32(0); y < 5; y++ {
		for x := int32(0); x < 5; x++ {
			tiles = append(tiles, components.TilePosition{X: x, Y: y})
		}
	}
	regions.BuildFromTiles(grid, tiles)
	q := NewPathQueue(grid, regions, &w, 0)
	mapper := ecs.NewMap1[components.Agent](&w)

	lazy := mapper.NewEntity(&components.Agent{ID: 1})
	normal := mapper.NewEntity(&components.Agent{ID: 2})
	urgent := mapper.NewEntity(&components.Agent{ID: 3})

	goal := components.TilePosition{X: 4, Y: 0}
	start := components.TilePosition{X: 0, Y: 0}
	q.RequestPath(lazy, start, goal, components.PathPriorityLazy, 1)
	q.RequestPath(normal, start, goal, components.PathPriorityNormal, 1)
	q.RequestPath(urgent, start, goal, components.PathPriorityUrgent, 1)

	q.ServiceTick(1, 1) // exactly one budget slot this tick

	if _, ok := q.Ready(urgent); !ok {
		t.Error("urgent request not resolved first")
	}
	if _, ok := q.Ready(normal); ok {
		t.Error("normal request resolved before its turn")
	}
	if _, ok := q.Ready(lazy); ok {
		t.Error("lazy request resolved before its turn")
	}

	q.ServiceTick(1, 1)
	if _, ok := q.Ready(normal); !ok {
		t.Error("normal request not resolved on its turn")
	}

	q.ServiceTick(1, 1)
	if _, ok := q.Ready(lazy); !ok {
		t.Error("lazy request not resolved on its turn")
	}
}

func TestPathQueueCancelClearsInFlightRequest(t *testing.T) {
	q, _, e := newTestPathQueue(t)
	q.RequestPath(e, components.TilePosition{X: 0, Y: 0}, components.TilePosition{X: 3, Y: 0}, components.PathPriorityNormal, 1)
	q.Cancel(e)

	if q.HasRequest(e) {
		t.Error("HasRequest() = true after Cancel, want false")
	}

	q.ServiceTick(1, 10)
	if _, ok := q.Ready(e); ok {
		t.Error("canceled request produced a Ready result, want none")
	}
	if _, ok := q.Failed(e); ok {
		t.Error("canceled request produced a Failed result, want none")
	}
}

func TestPathQueueSupersededRequestIsSkipped(t *testing.T) {
	q, _, e := newTestPathQueue(t)
	start := components.TilePosition{X: 0, Y: 0}
	q.RequestPath(e, start, components.TilePosition{X: 9, Y: 9}, components.PathPriorityLazy, 1)
	// Supersede before the lazy request is serviced.
	q.RequestPath(e, start, components.TilePosition{X: 2, Y: 0}, components.PathPriorityNormal, 2)

	q.ServiceTick(2, 10)

	ready, ok := q.Ready(e)
	if !ok {
		t.Fatal("Ready() = false after servicing the superseding request, want true")
	}
	if ready.Path[len(ready.Path)-1] != (components.TilePosition{X: 2, Y: 0}) {
		t.Errorf("resolved goal = %v, want the superseding request's goal", ready.Path[len(ready.Path)-1])
	}
}

func TestPathQueueConsumeReadyAndConsumeFailed(t *testing.T) {
	q, _, e := newTestPathQueue(t)
	q.RequestPath(e, components.TilePosition{X: 0, Y: 0}, components.TilePosition{X: 1, Y: 0}, components.PathPriorityNormal, 1)
	q.ServiceTick(1, 10)
	if _, ok := q.Ready(e); !ok {
		t.Fatal("expected a ready result to consume")
	}
	q.ConsumeReady(e)
	if _, ok := q.Ready(e); ok {
		t.Error("Ready() still reports a result after ConsumeReady")
	}
}
