package systems

import (
	"testing"

	"github.com/jeanfbrito/ecosim-core/components"
)

// TestAStarTrivialSelfPath verifies a start==goal request short-circuits to
// a single-tile path at zero cost without entering the search loop.
func TestAStarTrivialSelfPath(t *testing.T) {
	grid := NewPathGrid()
	a := NewAStar(grid)

	start := components.TilePosition{X: 4, Y: 4}
	path, cost, ok := a.FindPath(start, start, 0)
	if !ok {
		t.Fatal("FindPath(start, start) = ok=false, want true")
	}
	if cost != 0 {
		t.Errorf("cost = %v, want 0", cost)
	}
	if len(path) != 1 || path[0] != start {
		t.Errorf("path = %v, want [%v]", path, start)
	}
}

// TestAStarStraightLine verifies A* finds a direct path over open terrain.
func TestAStarStraightLine(t *testing.T) {
	grid := NewPathGrid()
	a := NewAStar(grid)

	start := components.TilePosition{X: 0, Y: 0}
	goal := components.TilePosition{X: 5, Y: 0}
	path, _, ok := a.FindPath(start, goal, 0)
	if !ok {
		t.Fatal("FindPath() = ok=false over open terrain, want true")
	}
	if path[0] != start {
		t.Errorf("path[0] = %v, want start %v", path[0], start)
	}
	if path[len(path)-1] != goal {
		t.Errorf("path[last] = %v, want goal %v", path[len(path)-1], goal)
	}
}

// TestAStarAroundObstacle verifies A* routes around a blocked column rather
// than failing or cutting through it.
func TestAStarAroundObstacle(t *testing.T) {
	grid := NewPathGrid()
	for y := int32(-5); y <= 5; y++ {
		grid.SetCost(components.TilePosition{X: 3, Y: y}, Impassable)
	}
	a := NewAStar(grid)

	start := components.TilePosition{X: 0, Y: 0}
	goal := components.TilePosition{X: 6, Y: 0}
	path, _, ok := a.FindPath(start, goal, 0)
	if !ok {
		t.Fatal("FindPath() = ok=false around a finite obstacle, want true")
	}
	for _, tile := range path {
		if tile.X == 3 {
			t.Errorf("path passes through blocked column at %v", tile)
		}
	}
}

// TestAStarNoPathReturnsFalse verifies a fully enclosed goal is reported
// unreachable rather than returning a partial or empty-but-ok path.
func TestAStarNoPathReturnsFalse(t *testing.T) {
	grid := NewPathGrid()
	goal := components.TilePosition{X: 10, Y: 10}
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			grid.SetCost(goal.Add(dx, dy), Impassable)
		}
	}
	a := NewAStar(grid)

	_, _, ok := a.FindPath(components.TilePosition{X: 0, Y: 0}, goal, 0)
	if ok {
		t.Error("FindPath() = ok=true for a fully enclosed goal, want false")
	}
}

// TestAStarDiagonalCheaperThanTwoCardinals verifies the octile heuristic
// prices a diagonal step below two cardinal steps of equivalent displacement.
func TestAStarDiagonalCheaperThanTwoCardinals(t *testing.T) {
	grid := NewPathGrid()
	a := NewAStar(grid)

	start := components.TilePosition{X: 0, Y: 0}
	goal := components.TilePosition{X: 1, Y: 1}
	_, cost, ok := a.FindPath(start, goal, 0)
	if !ok {
		t.Fatal("FindPath() = ok=false, want true")
	}
	if cost >= 2.0 {
		t.Errorf("cost = %v, want < 2.0 (a single diagonal step)", cost)
	}
	if cost < octileDiagonal-1e-6 {
		t.Errorf("cost = %v, want >= octile diagonal cost %v", cost, octileDiagonal)
	}
}

// TestAStarReusesInternalBuffersAcrossCalls verifies a single *AStar value
// can be reused for consecutive independent searches.
func TestAStarReusesInternalBuffersAcrossCalls(t *testing.T) {
	grid := NewPathGrid()
	a := NewAStar(grid)

	_, _, ok := a.FindPath(components.TilePosition{X: 0, Y: 0}, components.TilePosition{X: 3, Y: 0}, 0)
	if !ok {
		t.Fatal("first FindPath() = ok=false, want true")
	}
	path, _, ok := a.FindPath(components.TilePosition{X: 10, Y: 10}, components.TilePosition{X: 13, Y: 10}, 0)
	if !ok {
		t.Fatal("second FindPath() = ok=false, want true")
	}
	if path[0] != (components.TilePosition{X: 10, Y: 10}) {
		t.Errorf("second path start = %v, want (10,10)", path[0])
	}
}
