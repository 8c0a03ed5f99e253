package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/jeanfbrito/ecosim-core/components"
)

// SpatialIndex is a chunked entity grid: entities are bucketed by
// floor(x/S), floor(y/S) for a fixed chunk size S so proximity queries only
// scan a small ring of chunks instead of every entity. Grounded on the
// teacher's systems/spatial.go SpatialGrid, generalized from a fixed-size
// toroidal float grid to an unbounded integer-tile chunk map, since this
// world is unbounded rather than wrapped.
type SpatialIndex struct {
	chunkSize int32
	chunks    map[components.ChunkCoord][]spatialEntry
	// positions records each tracked entity's last known tile and class so
	// Remove/Update don't need the caller to remember them.
	positions map[ecs.Entity]spatialEntry
	maxResults int
}

type spatialEntry struct {
	Entity ecs.Entity
	Tile   components.TilePosition
	Class  components.EntityClass
}

// NewSpatialIndex creates an index with the given chunk size (default 16)
// and a cap on entities returned per query, to bound per-query work.
func NewSpatialIndex(chunkSize int32, maxResults int) *SpatialIndex {
	if chunkSize <= 0 {
		chunkSize = 16
	}
	if maxResults <= 0 {
		maxResults = 128
	}
	return &SpatialIndex{
		chunkSize:  chunkSize,
		chunks:     make(map[components.ChunkCoord][]spatialEntry),
		positions:  make(map[ecs.Entity]spatialEntry),
		maxResults: maxResults,
	}
}

// Insert adds an entity at tile with the given class. O(1) amortized.
func (s *SpatialIndex) Insert(e ecs.Entity, tile components.TilePosition, class components.EntityClass) {
	entry := spatialEntry{Entity: e, Tile: tile, Class: class}
	chunk := components.ChunkOf(tile, s.chunkSize)
	s.chunks[chunk] = append(s.chunks[chunk], entry)
	s.positions[e] = entry
}

// Remove removes an entity previously inserted at tile. O(chunk size).
func (s *SpatialIndex) Remove(e ecs.Entity, tile components.TilePosition) {
	chunk := components.ChunkOf(tile, s.chunkSize)
	bucket := s.chunks[chunk]
	for i, entry := range bucket {
		if entry.Entity == e {
			bucket[i] = bucket[len(bucket)-1]
			s.chunks[chunk] = bucket[:len(bucket)-1]
			break
		}
	}
	delete(s.positions, e)
}

// Update moves an entity from oldTile to newTile, re-bucketing only if the
// chunk changed — driven by change detection on TilePosition.
func (s *SpatialIndex) Update(e ecs.Entity, oldTile, newTile components.TilePosition, class components.EntityClass) {
	oldChunk := components.ChunkOf(oldTile, s.chunkSize)
	newChunk := components.ChunkOf(newTile, s.chunkSize)
	if oldChunk == newChunk {
		entry := spatialEntry{Entity: e, Tile: newTile, Class: class}
		bucket := s.chunks[oldChunk]
		for i := range bucket {
			if bucket[i].Entity == e {
				bucket[i] = entry
				break
			}
		}
		s.positions[e] = entry
		return
	}
	s.Remove(e, oldTile)
	s.Insert(e, newTile, class)
}

// PositionOf returns the last tile recorded for e.
func (s *SpatialIndex) PositionOf(e ecs.Entity) (components.TilePosition, bool) {
	entry, ok := s.positions[e]
	return entry.Tile, ok
}

// NoClassFilter is a sentinel meaning "no class filter" for EntitiesInRadius.
const NoClassFilter = components.EntityClass(255)

// EntitiesInRadius scans the ceil(radius/chunkSize) chunk ring around
// center and returns every entity whose real (Euclidean) distance is within
// radius, optionally filtered by class. Results are capped at maxResults
// to bound per-query work.
func (s *SpatialIndex) EntitiesInRadius(center components.TilePosition, radius float32, class components.EntityClass) []ecs.Entity {
	if radius < 0 {
		return nil
	}
	chunkRadius := int32(math.Ceil(float64(radius) / float64(s.chunkSize)))
	centerChunk := components.ChunkOf(center, s.chunkSize)
	radiusSq := radius * radius

	var out []ecs.Entity
	for dcy := -chunkRadius; dcy <= chunkRadius; dcy++ {
		for dcx := -chunkRadius; dcx <= chunkRadius; dcx++ {
			chunk := components.ChunkCoord{CX: centerChunk.CX + dcx, CY: centerChunk.CY + dcy}
			for _, entry := range s.chunks[chunk] {
				if class != NoClassFilter && entry.Class != class {
					continue
				}
				dx := float32(entry.Tile.X - center.X)
				dy := float32(entry.Tile.Y - center.Y)
				if dx*dx+dy*dy > radiusSq {
					continue
				}
				out = append(out, entry.Entity)
				if len(out) >= s.maxResults {
					return out
				}
			}
		}
	}
	return out
}

// Count returns the number of currently tracked entities, used by tests and
// the observation API's performance surface.
func (s *SpatialIndex) Count() int {
	return len(s.positions)
}
