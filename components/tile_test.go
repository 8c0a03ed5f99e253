package components

import "testing"

func TestTilePositionAdd(t *testing.T) {
	base := TilePosition{X: 3, Y: -2}
	got := base.Add(2, 5)
	want := TilePosition{X: 5, Y: 3}
	if got != want {
		t.Errorf("Add() = %+v, want %+v", got, want)
	}
}

func TestChunkOfFloorsTowardNegativeInfinity(t *testing.T) {
	cases := []struct {
		tile TilePosition
		want ChunkCoord
	}{
		{TilePosition{X: 0, Y: 0}, ChunkCoord{CX: 0, CY: 0}},
		{TilePosition{X: 15, Y: 15}, ChunkCoord{CX: 0, CY: 0}},
		{TilePosition{X: 16, Y: 0}, ChunkCoord{CX: 1, CY: 0}},
		{TilePosition{X: -1, Y: -1}, ChunkCoord{CX: -1, CY: -1}},
		{TilePosition{X: -16, Y: -17}, ChunkCoord{CX: -1, CY: -2}},
	}
	for _, c := range cases {
		got := ChunkOf(c.tile, 16)
		if got != c.want {
			t.Errorf("ChunkOf(%+v, 16) = %+v, want %+v", c.tile, got, c.want)
		}
	}
}

func TestChebyshevDistance(t *testing.T) {
	a := TilePosition{X: 0, Y: 0}
	b := TilePosition{X: 3, Y: -5}
	if got := ChebyshevDistance(a, b); got != 5 {
		t.Errorf("ChebyshevDistance = %d, want 5", got)
	}
	if got := ChebyshevDistance(a, a); got != 0 {
		t.Errorf("ChebyshevDistance(a, a) = %d, want 0", got)
	}
}

func TestManhattanDistance(t *testing.T) {
	a := TilePosition{X: 0, Y: 0}
	b := TilePosition{X: 3, Y: -5}
	if got := ManhattanDistance(a, b); got != 8 {
		t.Errorf("ManhattanDistance = %d, want 8", got)
	}
}
