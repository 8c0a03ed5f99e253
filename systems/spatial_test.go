package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
)

func spawnTestEntities(t *testing.T, n int) []ecs.Entity {
	t.Helper()
	w := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Agent](&w)
	entities := make([]ecs.Entity, n)
	for i := 0; i < n; i++ {
		agent := components.Agent{ID: uint32(i)}
		entities[i] = mapper.NewEntity(&agent)
	}
	return entities
}

func TestSpatialIndexInsertAndPositionOf(t *testing.T) {
	s := NewSpatialIndex(16, 128)
	entities := spawnTestEntities(t, 1)
	e := entities[0]
	tile := components.TilePosition{X: 5, Y: 5}
	s.Insert(e, tile, components.ClassHerbivore)

	got, ok := s.PositionOf(e)
	if !ok || got != tile {
		t.Fatalf("PositionOf() = %+v, %v, want %+v, true", got, ok, tile)
	}
	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1", s.Count())
	}
}

func TestSpatialIndexRemove(t *testing.T) {
	s := NewSpatialIndex(16, 128)
	entities := spawnTestEntities(t, 1)
	e := entities[0]
	tile := components.TilePosition{X: 1, Y: 1}
	s.Insert(e, tile, components.ClassHerbivore)
	s.Remove(e, tile)

	if _, ok := s.PositionOf(e); ok {
		t.Error("PositionOf() found entity after Remove, want not found")
	}
	if s.Count() != 0 {
		t.Errorf("Count() = %d, want 0 after Remove", s.Count())
	}
}

func TestSpatialIndexUpdateAcrossChunks(t *testing.T) {
	s := NewSpatialIndex(16, 128)
	entities := spawnTestEntities(t, 1)
	e := entities[0]
	old := components.TilePosition{X: 1, Y: 1}
	next := components.TilePosition{X: 50, Y: 50}
	s.Insert(e, old, components.ClassHerbivore)
	s.Update(e, old, next, components.ClassHerbivore)

	got, ok := s.PositionOf(e)
	if !ok || got != next {
		t.Fatalf("PositionOf() after Update = %+v, %v, want %+v, true", got, ok, next)
	}

	results := s.EntitiesInRadius(next, 2, NoClassFilter)
	if len(results) != 1 || results[0] != e {
		t.Errorf("EntitiesInRadius(next) = %v, want [%v]", results, e)
	}

	results = s.EntitiesInRadius(old, 2, NoClassFilter)
	if len(results) != 0 {
		t.Errorf("EntitiesInRadius(old) after move = %v, want empty", results)
	}
}

func TestSpatialIndexEntitiesInRadiusFiltersByClassAndRadius(t *testing.T) {
	s := NewSpatialIndex(16, 128)
	entities := spawnTestEntities(t, 3)
	herbivore, predator, far := entities[0], entities[1], entities[2]

	center := components.TilePosition{X: 0, Y: 0}
	s.Insert(herbivore, components.TilePosition{X: 1, Y: 0}, components.ClassHerbivore)
	s.Insert(predator, components.TilePosition{X: 1, Y: 1}, components.ClassPredator)
	s.Insert(far, components.TilePosition{X: 100, Y: 100}, components.ClassHerbivore)

	results := s.EntitiesInRadius(center, 5, components.ClassPredator)
	if len(results) != 1 || results[0] != predator {
		t.Errorf("EntitiesInRadius(predator filter) = %v, want [%v]", results, predator)
	}

	results = s.EntitiesInRadius(center, 5, NoClassFilter)
	if len(results) != 2 {
		t.Errorf("EntitiesInRadius(no filter, radius 5) = %v, want 2 results", results)
	}
}

func TestSpatialIndexEntitiesInRadiusCapsAtMaxResults(t *testing.T) {
	s := NewSpatialIndex(16, 2)
	entities := spawnTestEntities(t, 5)
	center := components.TilePosition{X: 0, Y: 0}
	for i, e := range entities {
		s.Insert(e, components.TilePosition{X: int32(i), Y: 0}, components.ClassHerbivore)
	}
	results := s.EntitiesInRadius(center, 10, NoClassFilter)
	if len(results) != 2 {
		t.Errorf("EntitiesInRadius() = %d results, want capped at maxResults=2", len(results))
	}
}
