package systems

import (
	"container/heap"

	"github.com/jeanfbrito/ecosim-core/components"
)

// AStar runs a best-first search over a PathGrid using the octile
// heuristic, reusing its internal buffers across calls the way the
// teacher's AStarPlanner does (systems/astar.go), adapted from world-space
// float coordinates to integer tiles and from Euclidean to octile
// distance since diagonal moves here are not isotropic with cardinals:
// a diagonal step costs roughly 1.414x a cardinal one.
type AStar struct {
	grid *PathGrid

	open     *astarHeap
	gScore   map[components.TilePosition]float64
	cameFrom map[components.TilePosition]components.TilePosition
	closed   map[components.TilePosition]struct{}
}

// NewAStar creates a search bound to grid.
func NewAStar(grid *PathGrid) *AStar {
	return &AStar{
		grid:     grid,
		open:     &astarHeap{},
		gScore:   make(map[components.TilePosition]float64, 256),
		cameFrom: make(map[components.TilePosition]components.TilePosition, 256),
		closed:   make(map[components.TilePosition]struct{}, 256),
	}
}

type astarNode struct {
	tile  components.TilePosition
	f     float64
	index int
}

type astarHeap []*astarNode

func (h astarHeap) Len() int            { return len(h) }
func (h astarHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h astarHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *astarHeap) Push(x any)         { n := x.(*astarNode); n.index = len(*h); *h = append(*h, n) }
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[:n-1]
	return node
}

const octileDiagonal = 1.41421356237

// octileHeuristic is admissible for an 8-connected grid where diagonal
// moves cost sqrt(2) and cardinal moves cost 1.
func octileHeuristic(a, b components.TilePosition) float64 {
	dx := float64(absInt(int(a.X - b.X)))
	dy := float64(absInt(int(a.Y - b.Y)))
	if dx > dy {
		return (dx-dy) + octileDiagonal*dy
	}
	return (dy-dx) + octileDiagonal*dx
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// FindPath runs A* from start to goal, returning the tile sequence
// (inclusive of both ends) and its total cost, or ok=false if exhausted
// within maxIterations without reaching goal (the caller reports this as
// PathFailureNoPath). Trivial self-paths ([]{start}, cost 0) are returned
// immediately without entering the search loop.
func (a *AStar) FindPath(start, goal components.TilePosition, maxIterations int) (path []components.TilePosition, cost float64, ok bool) {
	if start == goal {
		return []components.TilePosition{start}, 0, true
	}

	*a.open = (*a.open)[:0]
	for k := range a.gScore {
		delete(a.gScore, k)
	}
	for k := range a.cameFrom {
		delete(a.cameFrom, k)
	}
	for k := range a.closed {
		delete(a.closed, k)
	}

	a.gScore[start] = 0
	heap.Push(a.open, &astarNode{tile: start, f: octileHeuristic(start, goal)})

	var neighborBuf [8]components.TilePosition
	iterations := 0
	if maxIterations <= 0 {
		maxIterations = 20000
	}

	for a.open.Len() > 0 && iterations < maxIterations {
		iterations++
		current := heap.Pop(a.open).(*astarNode)
		if current.tile == goal {
			return a.reconstruct(start, goal), a.gScore[goal], true
		}
		if _, done := a.closed[current.tile]; done {
			continue
		}
		a.closed[current.tile] = struct{}{}

		neighbors := a.grid.walkableNeighbors(current.tile, neighborBuf[:0])
		for _, n := range neighbors {
			if _, done := a.closed[n]; done {
				continue
			}
			stepCost := 1.0
			if n.X != current.tile.X && n.Y != current.tile.Y {
				stepCost = octileDiagonal
			}
			stepCost *= float64(a.grid.Cost(n))

			tentativeG := a.gScore[current.tile] + stepCost
			existingG, seen := a.gScore[n]
			if seen && tentativeG >= existingG {
				continue
			}

			a.cameFrom[n] = current.tile
			a.gScore[n] = tentativeG
			heap.Push(a.open, &astarNode{tile: n, f: tentativeG + octileHeuristic(n, goal)})
		}
	}

	return nil, 0, false
}

func (a *AStar) reconstruct(start, goal components.TilePosition) []components.TilePosition {
	path := []components.TilePosition{goal}
	cur := goal
	for cur != start {
		prev, ok := a.cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
