package systems

import (
	"math"

	"github.com/jeanfbrito/ecosim-core/components"
)

// Impassable marks a tile as unwalkable in PathGrid.Cost.
const Impassable uint32 = math.MaxUint32

// PathGrid stores a per-tile movement cost. Sparse: unset tiles default to
// a walkable cost of 1, matching an open, mostly-walkable world where only
// specific tiles (water, cliffs) are marked impassable or expensive.
// Grounded on the teacher's NavGrid (systems/navgrid.go), generalized from
// a dense fixed-size array to a sparse map since this grid is unbounded.
type PathGrid struct {
	costs map[components.TilePosition]uint32
}

// NewPathGrid creates an all-walkable grid; callers mark tiles via
// SetCost as the world loader reports terrain.
func NewPathGrid() *PathGrid {
	return &PathGrid{costs: make(map[components.TilePosition]uint32)}
}

// SetCost sets the additive traversal cost of tile. Impassable marks it
// unwalkable.
func (g *PathGrid) SetCost(tile components.TilePosition, cost uint32) {
	g.costs[tile] = cost
}

// Cost returns tile's movement cost, defaulting to 1 (walkable) if unset.
func (g *PathGrid) Cost(tile components.TilePosition) uint32 {
	if c, ok := g.costs[tile]; ok {
		return c
	}
	return 1
}

// IsWalkable reports whether tile's cost is less than Impassable.
func (g *PathGrid) IsWalkable(tile components.TilePosition) bool {
	return g.Cost(tile) != Impassable
}

// eightNeighbors lists the 8-connected offsets in a fixed order, cardinals
// first, matching the teacher's astar.go neighbor ordering.
var eightNeighbors = [8][2]int32{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1}, // cardinals
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1}, // diagonals
}

// walkableNeighbors appends tile's walkable 8-connected neighbors to dst,
// applying corner-cutting prevention: a diagonal step is only taken when
// both shared orthogonal neighbors are walkable.
func (g *PathGrid) walkableNeighbors(tile components.TilePosition, dst []components.TilePosition) []components.TilePosition {
	for i, off := range eightNeighbors {
		n := tile.Add(off[0], off[1])
		if !g.IsWalkable(n) {
			continue
		}
		if i >= 4 { // diagonal
			if !g.IsWalkable(tile.Add(off[0], 0)) || !g.IsWalkable(tile.Add(0, off[1])) {
				continue
			}
		}
		dst = append(dst, n)
	}
	return dst
}

// RegionMap labels every walkable tile reachable from a seed with a
// connected-component ID, computed once at startup by BFS flood fill using
// the same 8-connected, corner-cutting-prevented neighborhood as
// pathfinding. AreConnected is then an O(1) integer comparison.
type RegionMap struct {
	regionOf map[components.TilePosition]int32
	nextID   int32
}

// NewRegionMap builds an empty region map; call BuildFromTiles with the set
// of tiles known to the world loader to populate it.
func NewRegionMap() *RegionMap {
	return &RegionMap{regionOf: make(map[components.TilePosition]int32)}
}

// BuildFromTiles runs a flood fill over every walkable tile in tiles that
// has not yet been assigned a region, assigning a fresh region ID to each
// new connected component. Called once at startup from the grid; callers
// rebuild (by constructing a fresh RegionMap and calling this again) only
// if terrain changes at runtime.
func (r *RegionMap) BuildFromTiles(grid *PathGrid, tiles []components.TilePosition) {
	var neighborBuf [8]components.TilePosition
	queue := make([]components.TilePosition, 0, len(tiles))

	for _, start := range tiles {
		if !grid.IsWalkable(start) {
			continue
		}
		if _, done := r.regionOf[start]; done {
			continue
		}
		id := r.nextID
		r.nextID++

		queue = queue[:0]
		queue = append(queue, start)
		r.regionOf[start] = id

		for len(queue) > 0 {
			cur := queue[len(queue)-1]
			queue = queue[:len(queue)-1]

			neighbors := grid.walkableNeighbors(cur, neighborBuf[:0])
			for _, n := range neighbors {
				if _, seen := r.regionOf[n]; seen {
					continue
				}
				r.regionOf[n] = id
				queue = append(queue, n)
			}
		}
	}
}

// AreConnected reports whether a and b share a region ID. Reflexive,
// symmetric and transitive over walkable tiles by construction of the
// flood fill. Two tiles neither of which was ever seen by BuildFromTiles
// are reported unconnected.
func (r *RegionMap) AreConnected(a, b components.TilePosition) bool {
	ra, aok := r.regionOf[a]
	rb, bok := r.regionOf[b]
	if !aok || !bok {
		return false
	}
	return ra == rb
}

// RegionOf returns a's region ID, or (-1, false) if a is unlabeled
// (unwalkable or never visited by BuildFromTiles).
func (r *RegionMap) RegionOf(a components.TilePosition) (int32, bool) {
	id, ok := r.regionOf[a]
	if !ok {
		return -1, false
	}
	return id, true
}
