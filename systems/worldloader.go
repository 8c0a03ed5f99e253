package systems

import "github.com/jeanfbrito/ecosim-core/components"

// WorldLoader is the external collaborator terrain generation lives
// behind: the core consumes a per-tile terrain class (and optional
// resource tag) to derive walkability, movement cost, and vegetation
// initial biomass.
type WorldLoader interface {
	// TerrainAt returns tile's terrain class and optional resource tag.
	// ok is false for tiles the loader has no data for (treated as
	// default open ground by callers).
	TerrainAt(tile components.TilePosition) (class string, resourceTag string, ok bool)
}

// StaticWorldLoader is an in-memory WorldLoader backed by a plain map,
// grounded on the teacher's systems/terrain.go terrain-class lookup
// pattern. Used by tests and by small scripted scenarios; a real
// deployment's world loader reads from the (out of scope) terrain
// generator / serialized map.
type StaticWorldLoader struct {
	tiles map[components.TilePosition]staticTerrain
	// Default is returned for any tile not explicitly set.
	Default string
}

type staticTerrain struct {
	class       string
	resourceTag string
}

// NewStaticWorldLoader creates a loader where every unset tile reports
// defaultClass.
func NewStaticWorldLoader(defaultClass string) *StaticWorldLoader {
	return &StaticWorldLoader{
		tiles:   make(map[components.TilePosition]staticTerrain),
		Default: defaultClass,
	}
}

// Set records tile's terrain class and resource tag.
func (l *StaticWorldLoader) Set(tile components.TilePosition, class, resourceTag string) {
	l.tiles[tile] = staticTerrain{class: class, resourceTag: resourceTag}
}

// TerrainAt implements WorldLoader.
func (l *StaticWorldLoader) TerrainAt(tile components.TilePosition) (string, string, bool) {
	if t, ok := l.tiles[tile]; ok {
		return t.class, t.resourceTag, true
	}
	return l.Default, "", false
}
