package systems

import (
	"testing"

	"github.com/jeanfbrito/ecosim-core/components"
)

func TestPathGridDefaultsToWalkable(t *testing.T) {
	g := NewPathGrid()
	tile := components.TilePosition{X: 3, Y: 4}
	if !g.IsWalkable(tile) {
		t.Error("IsWalkable() = false for unset tile, want true")
	}
	if g.Cost(tile) != 1 {
		t.Errorf("Cost() = %d, want 1 for unset tile", g.Cost(tile))
	}
}

func TestPathGridSetCostImpassable(t *testing.T) {
	g := NewPathGrid()
	tile := components.TilePosition{X: 0, Y: 0}
	g.SetCost(tile, Impassable)
	if g.IsWalkable(tile) {
		t.Error("IsWalkable() = true for Impassable tile, want false")
	}
}

func TestPathGridCornerCuttingPrevention(t *testing.T) {
	g := NewPathGrid()
	// Block the two orthogonal neighbors shared by a diagonal step from
	// (0,0) to (1,1), leaving the diagonal neighbor itself walkable.
	g.SetCost(components.TilePosition{X: 1, Y: 0}, Impassable)
	g.SetCost(components.TilePosition{X: 0, Y: 1}, Impassable)

	var buf [8]components.TilePosition
	neighbors := g.walkableNeighbors(components.TilePosition{X: 0, Y: 0}, buf[:0])
	for _, n := range neighbors {
		if n == (components.TilePosition{X: 1, Y: 1}) {
			t.Error("walkableNeighbors() allowed a corner-cut diagonal step")
		}
	}
}

func TestPathGridAllowsDiagonalWhenBothOrthogonalsWalkable(t *testing.T) {
	g := NewPathGrid()
	var buf [8]components.TilePosition
	neighbors := g.walkableNeighbors(components.TilePosition{X: 0, Y: 0}, buf[:0])
	found := false
	for _, n := range neighbors {
		if n == (components.TilePosition{X: 1, Y: 1}) {
			found = true
		}
	}
	if !found {
		t.Error("walkableNeighbors() missing an unblocked diagonal neighbor")
	}
}

func TestRegionMapConnectivityIsReflexiveSymmetricTransitive(t *testing.T) {
	g := NewPathGrid()
	tiles := []components.TilePosition{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
	}
	r := NewRegionMap()
	r.BuildFromTiles(g, tiles)

	a, b, c := tiles[0], tiles[1], tiles[2]
	if !r.AreConnected(a, a) {
		t.Error("AreConnected(a, a) = false, want true (reflexive)")
	}
	if r.AreConnected(a, b) != r.AreConnected(b, a) {
		t.Error("AreConnected is not symmetric")
	}
	if !(r.AreConnected(a, b) && r.AreConnected(b, c)) {
		t.Fatal("expected a, b, c to all be in the same connected region")
	}
	if !r.AreConnected(a, c) {
		t.Error("AreConnected(a, c) = false, want true (transitive through b)")
	}
}

func TestRegionMapSeparatesDisconnectedIslands(t *testing.T) {
	g := NewPathGrid()
	g.SetCost(components.TilePosition{X: 1, Y: 0}, Impassable)
	tiles := []components.TilePosition{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
	}
	r := NewRegionMap()
	r.BuildFromTiles(g, tiles)

	if r.AreConnected(components.TilePosition{X: 0, Y: 0}, components.TilePosition{X: 2, Y: 0}) {
		t.Error("AreConnected() = true across a blocked tile, want false")
	}
}

func TestRegionMapUnvisitedTileIsUnlabeled(t *testing.T) {
	r := NewRegionMap()
	_, ok := r.RegionOf(components.TilePosition{X: 99, Y: 99})
	if ok {
		t.Error("RegionOf() reported a tile never seen by BuildFromTiles as labeled")
	}
}
